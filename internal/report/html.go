package report

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var digestTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<style type="text/css">
		body { margin: 0; padding: 0; font-family: 'Segoe UI', Arial, sans-serif; background-color: #f4f4f4; }
		.container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 8px; overflow: hidden; }
		.card { display: inline-block; width: 32%; min-width: 150px; vertical-align: top; box-sizing: border-box; padding: 5px; }
		@media only screen and (max-width: 480px) {
			.container { width: 100% !important; }
			.card { width: 100% !important; display: block !important; margin-bottom: 15px !important; }
		}
	</style>
</head>
<body>
<div class="container">
	<div style="background: linear-gradient(135deg, #2c3e50 0%, #3498db 100%); padding: 25px; text-align: center; color: white;">
		<h1 style="margin: 0; font-size: 24px;">📊 Scraper Daily Report</h1>
		<p style="margin: 5px 0 0 0; opacity: 0.9; font-size: 14px;">{{.Date}}</p>
	</div>
	<div style="padding: 15px;">
		{{if .Issues}}
		<div style="background-color: #fff3e0; border-left: 4px solid #ff9800; padding: 15px; margin-bottom: 20px; border-radius: 4px;">
			<h4 style="margin: 0 0 10px 0; color: #ef6c00;">⚠️ Attention Required</h4>
			<ul style="margin: 0; padding-left: 20px; color: #5d4037; font-size: 13px;">
				{{range .Issues}}<li style="margin-bottom: 5px;"><b>{{.Name}}:</b> {{.Text}}</li>{{end}}
			</ul>
		</div>
		{{end}}
		<div style="text-align: center; font-size: 0; padding: 10px 0;">
			<div class="card">
				<div style="background-color: #f8f9fa; padding: 15px; border-radius: 8px; border: 1px solid #eee; border-bottom: 3px solid #3498db;">
					<div style="font-size: 11px; text-transform: uppercase; color: #7f8c8d; letter-spacing: 1px;">Previous Total</div>
					<div style="font-size: 20px; font-weight: 800; color: #2c3e50; margin-top: 5px;">{{.Existing}}</div>
				</div>
			</div>
			<div class="card">
				<div style="background-color: #f1f8e9; padding: 15px; border-radius: 8px; border: 1px solid #c8e6c9; border-bottom: 3px solid #2ecc71;">
					<div style="font-size: 11px; text-transform: uppercase; color: #2e7d32; letter-spacing: 1px;">Added Today</div>
					<div style="font-size: 20px; font-weight: 800; color: #2e7d32; margin-top: 5px;">+{{.Added}}</div>
				</div>
			</div>
			<div class="card">
				<div style="background-color: #f8f9fa; padding: 15px; border-radius: 8px; border: 1px solid #eee; border-bottom: 3px solid #9b59b6;">
					<div style="font-size: 11px; text-transform: uppercase; color: #7f8c8d; letter-spacing: 1px;">New Grand Total</div>
					<div style="font-size: 20px; font-weight: 800; color: #2c3e50; margin-top: 5px;">{{.Total}}</div>
				</div>
			</div>
		</div>
		<div style="padding: 10px;">
			<h3 style="color: #333; font-size: 16px; margin-bottom: 10px;">📋 Source Breakdown</h3>
			<table style="width: 100%; border-collapse: collapse; font-size: 14px;">
				<thead>
					<tr style="background-color: #f8f9fa; text-align: left;">
						<th style="padding: 10px; border-bottom: 2px solid #ddd; color: #777;">Source</th>
						<th style="padding: 10px; border-bottom: 2px solid #ddd; color: #777; text-align: right;">Added</th>
						<th style="padding: 10px; border-bottom: 2px solid #ddd; color: #777; text-align: right;">Total</th>
					</tr>
				</thead>
				<tbody>
					{{range .Rows}}
					<tr>
						<td style="padding: 12px 8px; border-bottom: 1px solid #eee;">
							<div style="font-weight: bold; color: #333;">{{.Source}}</div>
							<div style="font-size: 11px; margin-top: 4px;">
								<span style="padding: 2px 6px; border-radius: 4px; font-size: 10px; {{.BadgeStyle}}">{{.Status}}</span>
							</div>
						</td>
						<td style="padding: 12px 8px; border-bottom: 1px solid #eee; text-align: right; {{.AddedStyle}}">{{.Added}}</td>
						<td style="padding: 12px 8px; border-bottom: 1px solid #eee; text-align: right; color: #555;">{{.Total}}</td>
					</tr>
					{{end}}
				</tbody>
			</table>
		</div>
		<div style="text-align: center; padding: 20px; color: #999; font-size: 12px; border-top: 1px solid #eee; margin-top: 20px;">
			Automated by jobsweep<br>
			Run ID: {{.RunID}}
		</div>
	</div>
</div>
</body>
</html>
`))

const (
	badgeFailed  = "background-color: #ffebee; color: #c62828; border: 1px solid #ffcdd2;"
	badgeAdded   = "background-color: #e8f5e9; color: #2e7d32; border: 1px solid #c8e6c9;"
	badgeNeutral = "background-color: #f5f5f5; color: #616161; border: 1px solid #e0e0e0;"
)

type htmlIssue struct {
	Name string
	Text string
}

type htmlRow struct {
	Source     string
	Status     string
	BadgeStyle template.CSS
	Added      string
	AddedStyle template.CSS
	Total      string
}

type htmlData struct {
	Date     string
	Issues   []htmlIssue
	Existing string
	Added    string
	Total    string
	Rows     []htmlRow
	RunID    string
}

// RenderHTML produces the email body. Numbers get thousands separators, row
// badges get colored by outcome, matching how the digest always looked.
func RenderHTML(report *Report, now time.Time) (string, error) {
	printer := message.NewPrinter(language.English)

	data := htmlData{
		Date:     now.Format("Monday, 02 January 2006"),
		Existing: printer.Sprintf("%d", report.GrandExisting),
		Added:    printer.Sprintf("%d", report.GrandAdded),
		Total:    printer.Sprintf("%d", report.GrandTotal),
		RunID:    now.Format("20060102-1504"),
	}

	for _, issue := range report.Issues {
		name, text, found := strings.Cut(issue, ": ")
		if !found {
			name, text = "", issue
		}
		data.Issues = append(data.Issues, htmlIssue{Name: name, Text: text})
	}

	for _, row := range report.Rows {
		h := htmlRow{
			Source:     row.Source,
			Status:     row.Status,
			BadgeStyle: badgeNeutral,
			Added:      "-",
			AddedStyle: "color: #ccc;",
			Total:      printer.Sprintf("%d", row.TotalJobs),
		}
		if row.Failed() {
			h.BadgeStyle = badgeFailed
		} else if row.NewlyAdded > 0 {
			h.BadgeStyle = badgeAdded
		}
		if row.NewlyAdded > 0 {
			h.Added = printer.Sprintf("+%d", row.NewlyAdded)
			h.AddedStyle = "color: #2e7d32; font-weight: bold;"
		}
		data.Rows = append(data.Rows, h)
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
