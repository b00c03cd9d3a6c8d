package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

const reportDisplayLayout = "Jan 2, 2006"

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"rich":     richText,
	"hours":    func(h float64) string { return fmt.Sprintf("%.2f", h) },
	"date":     func(r domain.ReportActivity) string { return r.ActivityDate.Format("Mon, Jan 2, 2006") },
	"timespan": timespan,
	"optional": func(s *string) string { return domain.StringValue(s) },
}).Parse(reportHTML))

type reportView struct {
	RangeLabel string
	Summary    domain.ReportSummary
	Staff      []domain.StaffBucket
	ReportURL  string
}

// reportComposer renders activity reports into email-ready HTML documents.
type reportComposer struct {
	frontendURL string
}

// NewReportComposer creates a composer whose links point at frontendURL.
func NewReportComposer(frontendURL string) portssvc.ReportComposer {
	return &reportComposer{frontendURL: strings.TrimRight(frontendURL, "/")}
}

var _ portssvc.ReportComposer = (*reportComposer)(nil)

func (c *reportComposer) Compose(report domain.ActivityReport) (string, error) {
	view := reportView{
		RangeLabel: fmt.Sprintf("%s - %s",
			report.Range.From.Format(reportDisplayLayout), report.Range.To.Format(reportDisplayLayout)),
		Summary:   report.Summary,
		Staff:     report.Staff,
		ReportURL: c.frontendURL + "/field-operations",
	}
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

// richText re-applies the rich text allow-list before the value is trusted by the template.
func richText(s *string) template.HTML {
	if s == nil {
		return ""
	}
	return template.HTML(utils.SanitizeHTML(*s))
}

func timespan(a domain.ReportActivity) string {
	if a.StartTime == nil || a.EndTime == nil {
		return "Time not recorded"
	}
	return fmt.Sprintf("%s - %s (%.2f hrs)", a.StartTime.Short(), a.EndTime.Short(), a.DurationHours)
}

const reportHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Weekly Activity Report</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; background: #f4f6f8; margin: 0;">
<div style="max-width: 720px; margin: 0 auto; padding: 20px;">
  <div style="background: #2563eb; color: #fff; padding: 24px; border-radius: 8px 8px 0 0;">
    <h1 style="margin: 0; font-size: 22px;">Field Activity Report</h1>
    <p style="margin: 4px 0 0;">{{.RangeLabel}}</p>
  </div>
  <table style="width: 100%; background: #fff; border-collapse: collapse; text-align: center;">
    <tr>
      <td style="padding: 16px;"><div style="font-size: 24px; font-weight: bold;">{{.Summary.TotalActivities}}</div><div style="color: #666;">Activities</div></td>
      <td style="padding: 16px;"><div style="font-size: 24px; font-weight: bold;">{{hours .Summary.TotalHours}}</div><div style="color: #666;">Total Hours</div></td>
      <td style="padding: 16px;"><div style="font-size: 24px; font-weight: bold;">{{.Summary.UniqueStaff}}</div><div style="color: #666;">Staff</div></td>
    </tr>
  </table>
  {{range .Staff}}
  <div style="background: #fff; margin-top: 16px; padding: 16px; border-radius: 8px;">
    <h2 style="margin: 0 0 4px; color: #1e3a8a; font-size: 18px;">{{.StaffName}}</h2>
    <p style="margin: 0 0 12px; color: #666;">{{len .Activities}} activities &middot; {{hours .TotalHours}} hours</p>
    {{range $i, $a := .Activities}}
    <div style="border: 1px solid #e5e7eb; border-radius: 6px; padding: 12px; margin-bottom: 12px;">
      <h3 style="margin: 0 0 6px; font-size: 16px;">#{{inc $i}} {{$a.Title}}</h3>
      <p style="margin: 0 0 8px; color: #555;">{{date $a}} &middot; {{timespan $a}}</p>
      <table style="width: 100%; font-size: 14px;">
        <tr><td style="color: #666; width: 120px;">Customer</td><td>{{$a.CustomerName}}</td></tr>
        <tr><td style="color: #666;">Location</td><td>{{$a.Location}}</td></tr>
        {{with optional $a.CustomerRep}}<tr><td style="color: #666;">Customer Rep</td><td>{{.}}</td></tr>{{end}}
      </table>
      {{with $a.TaskDescription}}<div style="margin-top: 8px;"><strong>Task Description</strong><div>{{rich .}}</div></div>{{end}}
      {{with $a.Remarks}}<div style="margin-top: 8px; background: #fef9c3; padding: 8px; border-radius: 4px;"><strong>Remarks</strong><div>{{rich .}}</div></div>{{end}}
    </div>
    {{end}}
  </div>
  {{end}}
  <div style="text-align: center; margin: 24px 0;">
    <a href="{{.ReportURL}}" style="background: #2563eb; color: #fff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">View full report online</a>
  </div>
  <p style="color: #999; font-size: 12px; text-align: center;">This report was generated automatically by Flowhive.</p>
</div>
</body>
</html>`
