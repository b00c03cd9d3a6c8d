package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

const (
	summarySheet    = "Summary"
	activitiesSheet = "Activities"
	maxSheetName    = 31
)

var activityExportHeader = []string{
	"Date", "Start", "End", "Hours", "Title", "Staff", "Customer", "Location Type",
	"Location", "Category", "Status", "Customer Rep", "Task Description", "Remarks",
}

var reportSheetHeader = []string{
	"#", "Date", "Start", "End", "Hours", "Title", "Customer", "Location", "Customer Rep",
	"Task Description", "Remarks",
}

// exportService writes activity data into xlsx workbooks.
type exportService struct{}

// NewExportService creates the spreadsheet exporter.
func NewExportService() portssvc.ExportService {
	return &exportService{}
}

var _ portssvc.ExportService = (*exportService)(nil)

func (e *exportService) ActivitiesWorkbook(activities []domain.FieldActivity) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", activitiesSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeHeader(f, activitiesSheet, activityExportHeader); err != nil {
		return nil, err
	}
	for i, a := range activities {
		row := []any{
			a.ActivityDate.Format(domain.DateLayout),
			shortTime(a.StartTime),
			shortTime(a.EndTime),
			a.DurationHours(),
			a.Title,
			a.StaffName(),
			a.CustomerName,
			string(a.LocationType),
			a.Location,
			a.CategoryTitle(),
			string(a.Status),
			domain.StringValue(a.CustomerRep),
			plainText(a.TaskDescription),
			plainText(a.Remarks),
		}
		if err := writeRow(f, activitiesSheet, i+2, row); err != nil {
			return nil, err
		}
	}
	return toBytes(f)
}

func (e *exportService) ReportWorkbook(report domain.ActivityReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	summary := [][]any{
		{"Period", fmt.Sprintf("%s to %s", report.Range.FromString(), report.Range.ToString())},
		{"Total Activities", report.Summary.TotalActivities},
		{"Total Hours", report.Summary.TotalHours},
		{"Unique Customers", report.Summary.UniqueCustomers},
		{"Staff", report.Summary.UniqueStaff},
		{},
	}
	for i, row := range summary {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return nil, err
		}
	}
	staffHeaderRow := len(summary) + 1
	if err := writeRowStyled(f, summarySheet, staffHeaderRow, []any{"Staff", "Activities", "Hours"}); err != nil {
		return nil, err
	}

	used := map[string]bool{strings.ToLower(summarySheet): true}
	for i, bucket := range report.Staff {
		if err := writeRow(f, summarySheet, staffHeaderRow+1+i,
			[]any{bucket.StaffName, len(bucket.Activities), bucket.TotalHours}); err != nil {
			return nil, err
		}

		name := uniqueSheetName(bucket.StaffName, used)
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %q: %w", name, err)
		}
		if err := writeHeader(f, name, reportSheetHeader); err != nil {
			return nil, err
		}
		for j, a := range bucket.Activities {
			row := []any{
				j + 1,
				a.ActivityDate.Format(domain.DateLayout),
				shortTime(a.StartTime),
				shortTime(a.EndTime),
				a.DurationHours,
				a.Title,
				a.CustomerName,
				a.Location,
				domain.StringValue(a.CustomerRep),
				plainText(a.TaskDescription),
				plainText(a.Remarks),
			}
			if err := writeRow(f, name, j+2, row); err != nil {
				return nil, err
			}
		}
	}
	return toBytes(f)
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return writeRowStyled(f, sheet, 1, row)
}

func writeRowStyled(f *excelize.File, sheet string, rowNum int, row []any) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := writeRow(f, sheet, rowNum, row); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, rowNum)
	last, _ := excelize.CoordinatesToCellName(max(len(row), 1), rowNum)
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, row []any) error {
	if len(row) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

func toBytes(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func shortTime(t *domain.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.Short()
}

func plainText(s *string) string {
	if s == nil {
		return ""
	}
	return utils.StripTags(*s)
}

// uniqueSheetName makes a valid, unused worksheet name from a staff name. Sheet names are
// compared case-insensitively, so used holds lowercased names.
func uniqueSheetName(name string, used map[string]bool) string {
	clean := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	clean = strings.Trim(clean, "'")
	if clean == "" {
		clean = "Staff"
	}
	base := truncateRunes(clean, maxSheetName)
	candidate := base
	for n := 2; used[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate = truncateRunes(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
