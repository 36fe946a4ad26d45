// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"fmt"
	"time"

	"github.com/tomtom215/bovtag/internal/models"
)

const hoursPerDay = 24

// monthLabels are the short month names used on the monthly chart axis.
var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DaysInMonth returns the number of days in ym (28, 29, 30 or 31).
func DaysInMonth(ym models.YearMonth) int {
	return ym.DaysIn()
}

// AggregateByHour counts events per local hour over 00..23.
func AggregateByHour(events []models.NormalizedEvent) models.BucketSeries {
	counts := make(map[int]int, hoursPerDay)
	for _, e := range events {
		counts[e.LocalHour]++
	}
	return fillSeries(models.DimensionHour, 0, hoursPerDay-1, counts, func(h int) string {
		return fmt.Sprintf("%02d", h)
	})
}

// AggregateByDay counts events per local day of month over 1..daysInMonth.
// Events on days past daysInMonth are outside the domain and not counted.
func AggregateByDay(events []models.NormalizedEvent, daysInMonth int) models.BucketSeries {
	counts := make(map[int]int, daysInMonth)
	for _, e := range events {
		counts[e.LocalDate.Day]++
	}
	return fillSeries(models.DimensionDay, 1, daysInMonth, counts, func(d int) string {
		return fmt.Sprintf("%d", d)
	})
}

// AggregateByMonth counts events per calendar month over Jan..Dec.
// Months of different years share a bucket.
func AggregateByMonth(events []models.NormalizedEvent) models.BucketSeries {
	counts := make(map[int]int, len(monthLabels))
	for _, e := range events {
		counts[int(e.LocalMonth.Month)]++
	}
	return fillSeries(models.DimensionMonth, int(time.January), int(time.December), counts, func(m int) string {
		return monthLabels[m-1]
	})
}

// fillSeries left-joins the domain [first, last] against counts so every key
// appears once, in order, with zero for keys that have no events.
func fillSeries(dimension string, first, last int, counts map[int]int, label func(int) string) models.BucketSeries {
	points := make([]models.BucketPoint, 0, max(last-first+1, 0))
	for key := first; key <= last; key++ {
		points = append(points, models.BucketPoint{
			Key:   key,
			Label: label(key),
			Count: counts[key],
		})
	}
	return models.BucketSeries{Dimension: dimension, Points: points}
}
