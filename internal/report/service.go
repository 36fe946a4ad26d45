// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package report

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/bovtag/internal/config"
	"github.com/tomtom215/bovtag/internal/logging"
	"github.com/tomtom215/bovtag/internal/metrics"
	"github.com/tomtom215/bovtag/internal/models"
	"github.com/tomtom215/bovtag/internal/store"
)

// Build outcomes recorded in metrics.
const (
	outcomeOK               = "ok"
	outcomeEmpty            = "empty"
	outcomeStoreUnavailable = "store_unavailable"
	outcomeMalformed        = "malformed"
)

// Service builds dashboards from a store Gateway.
type Service struct {
	gateway  store.Gateway
	location *time.Location
	strict   bool
	now      func() time.Time
}

// NewService creates a Service for the reporting settings in cfg.
func NewService(gateway store.Gateway, cfg *config.ReportingConfig) (*Service, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("reporting timezone: %w", err)
	}
	return &Service{
		gateway:  gateway,
		location: loc,
		strict:   cfg.TimestampPolicy == config.TimestampPolicyStrict,
		now:      time.Now,
	}, nil
}

// Location returns the reporting timezone.
func (s *Service) Location() *time.Location {
	return s.location
}

// Build runs the full pipeline for sel. A store failure is returned as an
// error matching store.ErrStoreUnavailable and no later stage runs.
func (s *Service) Build(ctx context.Context, sel models.Selection) (*models.Dashboard, error) {
	start := time.Now()
	logger := logging.Ctx(ctx)

	events, err := s.gateway.FetchEvents(ctx)
	if err != nil {
		metrics.RecordReportBuild(outcomeStoreUnavailable, time.Since(start))
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	summary, err := s.gateway.FetchTenantSummary(ctx)
	if err != nil {
		metrics.RecordReportBuild(outcomeStoreUnavailable, time.Since(start))
		return nil, fmt.Errorf("fetch tenant summary: %w", err)
	}

	normalized, err := s.normalize(events)
	if err != nil {
		metrics.RecordReportBuild(outcomeMalformed, time.Since(start))
		return nil, err
	}
	dropped := len(events) - len(normalized)
	metrics.RecordNormalization(len(normalized), dropped)

	filtered := NewFilter(sel).Apply(normalized)
	sortChronological(filtered)
	domainMonth := s.daysDomainMonth(sel, normalized)

	dashboard := &models.Dashboard{
		Selection:   sel,
		State:       models.DashboardStateOK,
		KPI:         Summarize(filtered, summary),
		Hourly:      AggregateByHour(filtered),
		Daily:       AggregateByDay(inMonth(filtered, domainMonth), DaysInMonth(domainMonth)),
		DailyMonth:  domainMonth,
		Monthly:     AggregateByMonth(filtered),
		Events:      filtered,
		Dropped:     dropped,
		GeneratedAt: s.now().In(s.location),
	}

	outcome := outcomeOK
	if len(filtered) == 0 {
		dashboard.State = models.DashboardStateEmpty
		outcome = outcomeEmpty
	}
	metrics.RecordReportBuild(outcome, time.Since(start))

	logger.Debug().
		Int("events", len(events)).
		Int("dropped", dropped).
		Int("matched", len(filtered)).
		Str("days_month", domainMonth.String()).
		Dur("duration", time.Since(start)).
		Msg("Dashboard built")
	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("Events without a usable timestamp were skipped")
	}
	return dashboard, nil
}

// Options lists the values available to the filter pickers.
func (s *Service) Options(ctx context.Context) (*models.FilterOptions, error) {
	events, err := s.gateway.FetchEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	normalized, err := s.normalize(events)
	if err != nil {
		return nil, err
	}

	months := make(map[models.YearMonth]struct{})
	for _, e := range normalized {
		months[e.LocalMonth] = struct{}{}
	}
	subjects := make(map[string]struct{})
	for _, e := range events {
		if e.SubjectID != "" {
			subjects[e.SubjectID] = struct{}{}
		}
	}

	opts := &models.FilterOptions{
		Months:   make([]models.YearMonth, 0, len(months)),
		Subjects: make([]string, 0, len(subjects)),
	}
	for m := range months {
		opts.Months = append(opts.Months, m)
	}
	sort.Slice(opts.Months, func(i, j int) bool { return opts.Months[i].Before(opts.Months[j]) })
	for id := range subjects {
		opts.Subjects = append(opts.Subjects, id)
	}
	sort.Strings(opts.Subjects)

	if latest, ok := Latest(normalized); ok {
		d := latest.LocalDate
		opts.LatestDate = &d
	}
	return opts, nil
}

// DefaultSelection is the selection shown before the user picks anything:
// the most recent local date, its month and every subject.
func (s *Service) DefaultSelection(ctx context.Context) (models.Selection, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return models.Selection{}, err
	}
	return DefaultSelectionFrom(opts), nil
}

// DefaultSelectionFrom derives the default selection from already fetched options.
func DefaultSelectionFrom(opts *models.FilterOptions) models.Selection {
	sel := models.Selection{SubjectID: models.AllSubjects}
	if opts != nil && opts.LatestDate != nil {
		d := *opts.LatestDate
		ym := d.YearMonth()
		sel.Date = &d
		sel.Month = &ym
	}
	return sel
}

// IsStoreUnavailable reports whether err came from a failed store read.
func IsStoreUnavailable(err error) bool {
	return errors.Is(err, store.ErrStoreUnavailable)
}

func (s *Service) normalize(events []models.Event) ([]models.NormalizedEvent, error) {
	if s.strict {
		return NormalizeStrict(events, s.location)
	}
	return Normalize(events, s.location), nil
}

// daysDomainMonth picks the month whose length sizes the daily series.
func (s *Service) daysDomainMonth(sel models.Selection, normalized []models.NormalizedEvent) models.YearMonth {
	switch {
	case sel.Month != nil:
		return *sel.Month
	case sel.Date != nil:
		return sel.Date.YearMonth()
	}
	if latest, ok := Latest(normalized); ok {
		return latest.LocalMonth
	}
	return models.YearMonthOf(s.now().In(s.location))
}

// inMonth keeps the events whose local month is ym, so the daily series never
// folds days from other months onto the same day-of-month bucket.
func inMonth(events []models.NormalizedEvent, ym models.YearMonth) []models.NormalizedEvent {
	out := make([]models.NormalizedEvent, 0, len(events))
	for _, e := range events {
		if e.LocalMonth == ym {
			out = append(out, e)
		}
	}
	return out
}

// sortChronological orders events by creation instant, then ID.
func sortChronological(events []models.NormalizedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return laterThan(events[j], events[i])
	})
}
