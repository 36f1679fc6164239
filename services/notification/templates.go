package notification

import (
	"bytes"
	"html/template"
	"strings"
)

var (
	guestTmpl = template.Must(template.New("guest").Parse(`
<h1>Booking {{.StatusTitle}}</h1>
<p>Dear {{.CustomerName}},</p>
<p>Your booking with {{.WineryName}} has been {{.Status}}.</p>
<p>Booking Details:</p>
<ul>
  {{if .TastingTitle}}<li>Tasting: {{.TastingTitle}}</li>{{end}}
  <li>Date: {{.Date}}</li>
  <li>Time: {{.Time}}</li>
</ul>
<p>Thank you for using our platform!</p>
`))

	wineryTmpl = template.Must(template.New("winery").Parse(`
<h1>New Booking Update</h1>
<p>Dear {{.WineryName}} Team,</p>
<p>A booking has been {{.Status}}.</p>
<p>Booking Details:</p>
<ul>
  <li>Customer: {{.CustomerName}}</li>
  {{if .TastingTitle}}<li>Tasting: {{.TastingTitle}}</li>{{end}}
  <li>Date: {{.Date}}</li>
  <li>Time: {{.Time}}</li>
</ul>
`))

	adminTmpl = template.Must(template.New("admin").Parse(`
<h1>Booking Status Update Notification</h1>
<p>Booking ID: {{.BookingID}}</p>
<p>A booking has been {{.Status}}.</p>
<p>Details:</p>
<ul>
  <li>Winery: {{.WineryName}}</li>
  <li>Customer: {{.CustomerName}}</li>
  <li>Payment: {{.PaymentMethod}}</li>
  <li>Date: {{.Date}}</li>
  <li>Time: {{.Time}}</li>
</ul>
`))

	reminderTmpl = template.Must(template.New("reminder").Parse(`
<h1>Your tasting is coming up</h1>
<p>Dear {{.CustomerName}},</p>
<p>This is a reminder of your visit to {{.WineryName}}.</p>
<ul>
  {{if .TastingTitle}}<li>Tasting: {{.TastingTitle}}</li>{{end}}
  <li>Date: {{.Date}}</li>
  <li>Time: {{.Time}}</li>
</ul>
<p>Cheers!</p>
`))
)

// emailData feeds every template.
type emailData struct {
	BookingID     string
	Status        string
	StatusTitle   string
	CustomerName  string
	WineryName    string
	TastingTitle  string
	PaymentMethod string
	Date          string
	Time          string
}

func render(t *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
