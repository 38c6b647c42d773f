package invoice

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
)

var pageTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"upper": strings.ToUpper,
	"orNA": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "N/A"
		}
		return s
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.Number}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2cm; color: #222; }
h1 { font-size: 24px; margin-bottom: 4px; }
h2 { font-size: 15px; margin: 24px 0 6px; border-bottom: 1px solid #ccc; }
table { border-collapse: collapse; }
td { padding: 2px 12px 2px 0; vertical-align: top; }
td.k { color: #666; }
.amount { font-size: 18px; font-weight: bold; }
footer { margin-top: 48px; font-size: 11px; color: #777; }
</style>
</head>
<body>
<h1>JOBNI - Invoice</h1>
<table>
<tr><td class="k">Invoice No.</td><td>{{.Number}}</td></tr>
<tr><td class="k">Invoice Date</td><td>{{date .IssuedAt}}</td></tr>
<tr><td class="k">Application ID</td><td>{{.ApplicationID}}</td></tr>
</table>

<h2>Job Details</h2>
<table>
<tr><td class="k">Title</td><td>{{.JobTitle}}</td></tr>
<tr><td class="k">Company</td><td>{{.CompanyName}}</td></tr>
<tr><td class="k">Duration</td><td>{{orNA .DurationValue}}</td></tr>
<tr><td class="k">Location</td><td>{{.Location}}</td></tr>
<tr><td class="k">Applied</td><td>{{date .AppliedDate}}</td></tr>
</table>

<h2>Worker Details</h2>
<table>
<tr><td class="k">Name</td><td>{{.Worker.Name}}</td></tr>
<tr><td class="k">Email</td><td>{{.Worker.Email}}</td></tr>
<tr><td class="k">Phone</td><td>{{orNA .Worker.Phone}}</td></tr>
</table>

<h2>Employer Details</h2>
<table>
<tr><td class="k">Name</td><td>{{.Employer.Name}}</td></tr>
<tr><td class="k">Company</td><td>{{orNA .Employer.Company}}</td></tr>
<tr><td class="k">Email</td><td>{{.Employer.Email}}</td></tr>
</table>

<h2>Payment Details</h2>
<table>
<tr><td class="k">Amount</td><td class="amount">{{money .Amount}} {{.Currency}}</td></tr>
<tr><td class="k">Status</td><td>{{upper .Status}}</td></tr>
</table>

<footer>
<p>Jobni - Part-Time Jobs Platform</p>
<p>Thank you for using our service!</p>
</footer>
</body>
</html>
`))

type HTMLRenderer struct{}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{} }

func (HTMLRenderer) Render(_ context.Context, doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render invoice html: %w", err)
	}
	return buf.Bytes(), nil
}

func (HTMLRenderer) ContentType() string { return "text/html; charset=utf-8" }
func (HTMLRenderer) Extension() string   { return "html" }
