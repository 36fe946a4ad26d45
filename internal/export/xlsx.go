// BovTag - Livestock Tag Detection Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bovtag

package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tomtom215/bovtag/internal/metrics"
	"github.com/tomtom215/bovtag/internal/models"
)

// Sheet names.
const (
	EventsSheet  = "Events"
	SummarySheet = "Summary"
)

// ContentType is the media type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// localLayout is the timestamp layout written to the Created column.
const localLayout = "2006-01-02 15:04:05"

// EventsHeader is the header row of the Events sheet.
var EventsHeader = []string{"ID", "Farm", "Animal", "Created (local)", "Date", "Hour", "Month"}

var eventsColumnWidths = []float64{28, 18, 14, 22, 12, 8, 10}

// WriteEvents renders a workbook holding only the Events sheet.
func WriteEvents(events []models.NormalizedEvent, loc *time.Location) ([]byte, error) {
	return write(func(f *excelize.File, bold int) error {
		return writeEventsSheet(f, bold, events, loc)
	})
}

// WriteDashboard renders the Events sheet for d.Events and a Summary sheet
// with the KPI block and the three series.
func WriteDashboard(d *models.Dashboard, loc *time.Location) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("export: nil dashboard")
	}
	return write(func(f *excelize.File, bold int) error {
		if err := writeEventsSheet(f, bold, d.Events, loc); err != nil {
			return err
		}
		return writeSummarySheet(f, bold, d, loc)
	})
}

// write owns the workbook lifecycle: the file stays open until it has been
// written to the buffer.
func write(fill func(f *excelize.File, bold int) error) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if _, err := f.NewSheet(EventsSheet); err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", EventsSheet, err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}
	if err := fill(f, bold); err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(EventsSheet)
	if err != nil {
		return nil, fmt.Errorf("locate sheet %s: %w", EventsSheet, err)
	}
	f.SetActiveSheet(idx)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeEventsSheet(f *excelize.File, bold int, events []models.NormalizedEvent, loc *time.Location) error {
	if err := setRow(f, EventsSheet, 1, toRow(EventsHeader)); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(EventsHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(EventsSheet, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, width := range eventsColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(EventsSheet, col, col, width); err != nil {
			return fmt.Errorf("set width of %s: %w", col, err)
		}
	}

	for i, e := range events {
		local := e.LocalTime
		if loc != nil {
			local = local.In(loc)
		}
		row := []interface{}{
			e.ID,
			e.GroupLabel,
			e.SubjectID,
			local.Format(localLayout),
			e.LocalDate.String(),
			e.LocalHour,
			e.LocalMonth.String(),
		}
		if err := setRow(f, EventsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(EventsSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	metrics.RecordExport(len(events))
	return nil
}

func writeSummarySheet(f *excelize.File, bold int, d *models.Dashboard, loc *time.Location) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", SummarySheet, err)
	}

	generated := d.GeneratedAt
	if loc != nil {
		generated = generated.In(loc)
	}
	kpi := d.KPI
	rows := [][]interface{}{
		{"Indicator", "Value"},
		{"Farm", kpi.GroupLabel},
		{"Detections", kpi.SubsetCount},
		{"Farm total", kpi.TenantTotal},
		{"Distinct animals", kpi.DistinctSubjects},
		{"Latest animal", kpi.LatestSubjectID},
		{"Share of farm total", kpi.TenantShare},
		{"Date", dateCell(d.Selection.Date)},
		{"Month", monthCell(d.Selection.Month)},
		{"Animal", d.Selection.SubjectID},
		{"Generated", generated.Format(localLayout)},
	}
	next := 1
	if err := writeBlock(f, bold, next, rows); err != nil {
		return err
	}
	next += len(rows) + 1

	for _, series := range []models.BucketSeries{d.Hourly, d.Daily, d.Monthly} {
		block := make([][]interface{}, 0, len(series.Points)+1)
		block = append(block, []interface{}{seriesTitle(series.Dimension), "Count"})
		for _, p := range series.Points {
			block = append(block, []interface{}{p.Label, p.Count})
		}
		if err := writeBlock(f, bold, next, block); err != nil {
			return err
		}
		next += len(block) + 1
	}
	return f.SetColWidth(SummarySheet, "A", "A", 22)
}

// writeBlock writes rows starting at startRow and styles the first one.
func writeBlock(f *excelize.File, bold, startRow int, rows [][]interface{}) error {
	for i, row := range rows {
		if err := setRow(f, SummarySheet, startRow+i, row); err != nil {
			return err
		}
	}
	first := fmt.Sprintf("A%d", startRow)
	last := fmt.Sprintf("B%d", startRow)
	if err := f.SetCellStyle(SummarySheet, first, last, bold); err != nil {
		return fmt.Errorf("style block header: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}

func dateCell(d *models.Date) string {
	if d == nil {
		return models.AllSubjects
	}
	return d.String()
}

func monthCell(m *models.YearMonth) string {
	if m == nil {
		return models.AllSubjects
	}
	return m.String()
}

func seriesTitle(dimension string) string {
	switch dimension {
	case models.DimensionHour:
		return "Hour"
	case models.DimensionDay:
		return "Day"
	case models.DimensionMonth:
		return "Month"
	default:
		return dimension
	}
}
