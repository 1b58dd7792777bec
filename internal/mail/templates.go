package mail

import (
	"bytes"
	"html/template"
)

// BookingDetails carries the rendered fields shared by the customer and
// owner notifications.
type BookingDetails struct {
	BusinessName string
	Service      string
	Name         string
	Phone        string
	Email        string
	Address      string
	Date         string
	Time         string
	Duration     string
	Vehicle      string
	Dropoff      bool
}

var customerTemplate = template.Must(template.New("customer").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2>Booking Received</h2>
  <p>Hi {{.Name}},</p>
  <p>Thanks for booking with {{.BusinessName}}. Here is what we have on file:</p>
  <table cellpadding="4">
    <tr><td><b>Service</b></td><td>{{.Service}}</td></tr>
    <tr><td><b>Date</b></td><td>{{.Date}}</td></tr>
    <tr><td><b>Time</b></td><td>{{.Time}}</td></tr>
    <tr><td><b>Estimated duration</b></td><td>{{.Duration}}</td></tr>
    {{if .Vehicle}}<tr><td><b>Vehicle</b></td><td>{{.Vehicle}}</td></tr>{{end}}
    <tr><td><b>Location</b></td><td>{{if .Dropoff}}Drop-off at our shop{{else}}{{.Address}}{{end}}</td></tr>
  </table>
  <p>We will reach out at {{.Phone}} if anything needs to change.</p>
  <p>{{.BusinessName}}</p>
</div>
`))

var ownerTemplate = template.Must(template.New("owner").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px;">
  <h2>New Booking</h2>
  <table cellpadding="4">
    <tr><td><b>Service</b></td><td>{{.Service}}</td></tr>
    <tr><td><b>Customer</b></td><td>{{.Name}}</td></tr>
    <tr><td><b>Phone</b></td><td>{{.Phone}}</td></tr>
    <tr><td><b>Email</b></td><td>{{.Email}}</td></tr>
    <tr><td><b>Date</b></td><td>{{.Date}}</td></tr>
    <tr><td><b>Time</b></td><td>{{.Time}}</td></tr>
    <tr><td><b>Estimated duration</b></td><td>{{.Duration}}</td></tr>
    {{if .Vehicle}}<tr><td><b>Vehicle</b></td><td>{{.Vehicle}}</td></tr>{{end}}
    <tr><td><b>Location</b></td><td>{{if .Dropoff}}Drop-off{{else}}{{.Address}}{{end}}</td></tr>
  </table>
</div>
`))

func CustomerBody(details BookingDetails) (string, error) {
	return render(customerTemplate, details)
}

func OwnerBody(details BookingDetails) (string, error) {
	return render(ownerTemplate, details)
}

func render(t *template.Template, details BookingDetails) (string, error) {
	var buffer bytes.Buffer
	if err := t.Execute(&buffer, details); err != nil {
		return "", err
	}

	return buffer.String(), nil
}
