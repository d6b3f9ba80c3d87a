// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"
)

const ConfirmationSubject = "Appointment Request Confirmed - We'll Contact You Soon!"

// ConfirmationData is everything shown in the booking confirmation email.
// Date is YYYY-MM-DD and Time is HH:MM, both in the studio's timezone.
type ConfirmationData struct {
	AppointmentID     string
	ClientName        string
	ClientEmail       string
	ClientPhone       string
	StyleName         string
	Date              string
	Time              string
	SpecialRequests   string
	EstimatedDuration int
	StudioPhone       string
	StudioEmail       string
}

type confirmationView struct {
	ConfirmationData
	FormattedDate string
	FormattedTime string
}

// FormatDate renders a day as "Monday, March 3rd, 2025"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %s %s, %d", t.Weekday(), t.Month(), humanize.Ordinal(t.Day()), t.Year())
}

// FormatTime renders a clock time as "2:30 PM EST"
func FormatTime(t time.Time) string {
	return t.Format("3:04 PM MST")
}

// RenderConfirmation builds the confirmation email subject and HTML body
func RenderConfirmation(data ConfirmationData, loc *time.Location) (subject, body string, err error) {
	when, err := time.ParseInLocation("2006-01-02 15:04", data.Date+" "+data.Time, loc)
	if err != nil {
		return "", "", fmt.Errorf("invalid appointment date/time: %w", err)
	}

	var buf bytes.Buffer
	err = confirmationTemplate.Execute(&buf, confirmationView{
		ConfirmationData: data,
		FormattedDate:    FormatDate(when),
		FormattedTime:    FormatTime(when),
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render confirmation email: %w", err)
	}

	return ConfirmationSubject, buf.String(), nil
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #333; margin-bottom: 10px;">Appointment Request Received!</h1>
    <p style="color: #666; font-size: 16px;">Thank you for choosing our braiding studio</p>
  </div>

  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h2 style="color: #333; margin-top: 0;">Appointment Details</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 8px 0; font-weight: bold;">Appointment ID:</td><td style="padding: 8px 0;">{{.AppointmentID}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Client Name:</td><td style="padding: 8px 0;">{{.ClientName}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Phone:</td><td style="padding: 8px 0;">{{.ClientPhone}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Email:</td><td style="padding: 8px 0;">{{.ClientEmail}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Style:</td><td style="padding: 8px 0;">{{.StyleName}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Requested Date:</td><td style="padding: 8px 0;">{{.FormattedDate}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Requested Time:</td><td style="padding: 8px 0;">{{.FormattedTime}}</td></tr>
      <tr><td style="padding: 8px 0; font-weight: bold;">Estimated Duration:</td><td style="padding: 8px 0;">{{.EstimatedDuration}} hours</td></tr>
      {{- if .SpecialRequests}}
      <tr><td style="padding: 8px 0; font-weight: bold; vertical-align: top;">Special Requests:</td><td style="padding: 8px 0;">{{.SpecialRequests}}</td></tr>
      {{- end}}
    </table>
  </div>

  <div style="background-color: #e3f2fd; padding: 20px; border-radius: 8px; margin-bottom: 20px;">
    <h3 style="color: #1976d2; margin-top: 0;">What Happens Next?</h3>
    <ol style="color: #333; line-height: 1.6;">
      <li><strong>Quote &amp; Confirmation Call:</strong> We'll call you within 24 hours to provide a personalized price quote based on your hair type and desired style.</li>
      <li><strong>Time Confirmation:</strong> During our call, we'll confirm the exact appointment time that works best for both of us.</li>
      <li><strong>Final Confirmation:</strong> Once everything is confirmed, you'll receive another email with the final appointment details and any preparation instructions.</li>
    </ol>
  </div>

  <div style="background-color: #fff3e0; padding: 15px; border-radius: 8px; margin-bottom: 20px;">
    <p style="margin: 0; color: #e65100;"><strong>Please Note:</strong> Your appointment is currently <strong>pending confirmation</strong>. The final price and exact time will be confirmed during our phone call.</p>
  </div>

  <div style="text-align: center; margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
    <p style="color: #666; margin-bottom: 5px;">Questions? Contact us:</p>
    <p style="color: #333; font-weight: bold;">Phone: {{.StudioPhone}}</p>
    <p style="color: #333; font-weight: bold;">Email: {{.StudioEmail}}</p>
  </div>

  <div style="text-align: center; margin-top: 20px; color: #999; font-size: 12px;">
    <p>Thank you for choosing our professional braiding services!</p>
  </div>
</div>
`))
