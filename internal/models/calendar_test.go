// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package models

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestYearMonth_DaysIn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ym   YearMonth
		want int
	}{
		{YearMonth{2024, time.February}, 29},
		{YearMonth{2023, time.February}, 28},
		{YearMonth{1900, time.February}, 28},
		{YearMonth{2000, time.February}, 29},
		{YearMonth{2024, time.April}, 30},
		{YearMonth{2024, time.September}, 30},
		{YearMonth{2024, time.January}, 31},
		{YearMonth{2024, time.December}, 31},
	}

	for _, tt := range tests {
		t.Run(tt.ym.String(), func(t *testing.T) {
			t.Parallel()
			if got := tt.ym.DaysIn(); got != tt.want {
				t.Errorf("DaysIn() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2024-03-09")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d != (Date{2024, time.March, 9}) {
		t.Errorf("ParseDate() = %+v", d)
	}
	if d.String() != "2024-03-09" {
		t.Errorf("String() = %q", d.String())
	}
	if d.YearMonth() != (YearMonth{2024, time.March}) {
		t.Errorf("YearMonth() = %+v", d.YearMonth())
	}

	for _, bad := range []string{"", "2024-13-01", "2024-02-30", "09/03/2024", "2024-03"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) expected error", bad)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	t.Parallel()

	ym, err := ParseYearMonth("2023-11")
	if err != nil {
		t.Fatalf("ParseYearMonth() error = %v", err)
	}
	if ym != (YearMonth{2023, time.November}) || ym.String() != "2023-11" {
		t.Errorf("ParseYearMonth() = %+v", ym)
	}

	for _, bad := range []string{"", "2023-00", "2023-1", "2023-11-01"} {
		if _, err := ParseYearMonth(bad); err == nil {
			t.Errorf("ParseYearMonth(%q) expected error", bad)
		}
	}
}

func TestCalendarOrdering(t *testing.T) {
	t.Parallel()

	a := Date{2024, time.January, 31}
	b := Date{2024, time.February, 1}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("Date.Before ordering is wrong")
	}
	if !a.YearMonth().Before(b.YearMonth()) {
		t.Error("YearMonth.Before ordering is wrong")
	}
	if !(YearMonth{2023, time.December}).Before(YearMonth{2024, time.January}) {
		t.Error("YearMonth.Before across years is wrong")
	}
}

func TestCalendarJSON(t *testing.T) {
	t.Parallel()

	d := Date{2024, time.February, 29}
	ym := YearMonth{2024, time.February}
	sel := Selection{Date: &d, Month: &ym, SubjectID: AllSubjects}

	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"date":"2024-02-29"`) || !strings.Contains(got, `"month":"2024-02"`) {
		t.Errorf("unexpected JSON: %s", got)
	}

	var decoded Selection
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Date == nil || *decoded.Date != d || decoded.Month == nil || *decoded.Month != ym {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestBucketSeries_Total(t *testing.T) {
	t.Parallel()

	s := BucketSeries{Dimension: DimensionHour, Points: []BucketPoint{{Key: 0, Count: 3}, {Key: 1}, {Key: 2, Count: 9}}}
	if s.Total() != 12 {
		t.Errorf("Total() = %d, want 12", s.Total())
	}
}
