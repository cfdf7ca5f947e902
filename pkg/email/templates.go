package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	WelcomeTmpl *template.Template
	ReceiptTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	welcomeTmpl, err := template.New("welcome").Parse(welcomeTemplate)
	if err != nil {
		return nil, fmt.Errorf("email: parse welcome template: %w", err)
	}

	receiptTmpl, err := template.New("receipt").Parse(receiptTemplate)
	if err != nil {
		return nil, fmt.Errorf("email: parse receipt template: %w", err)
	}

	return &TemplateManager{
		WelcomeTmpl: welcomeTmpl,
		ReceiptTmpl: receiptTmpl,
	}, nil
}

type WelcomeData struct {
	Name string
}

// ReceiptData fills the ride receipt sent when a ride is completed.
type ReceiptData struct {
	Name        string
	Origin      string
	Destination string
	VehicleType string
	DriverName  string
	Fare        float64
	CompletedAt string
}

func (tm *TemplateManager) GenerateWelcomeEmailHTML(data WelcomeData) (string, error) {
	var body bytes.Buffer
	if err := tm.WelcomeTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

func (tm *TemplateManager) GenerateReceiptEmailHTML(data ReceiptData) (string, error) {
	var body bytes.Buffer
	if err := tm.ReceiptTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

// --- HTML Template Definitions ---

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Welcome aboard</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Welcome, {{.Name}}!</h2>
	<p>Your rider account is ready. Open the app, pick a destination and choose a ride.</p>
	<p>If you did not sign up for this account, please ignore this email.</p>
</body>
</html>
`

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Your ride receipt</title>
</head>
<body style="font-family: Arial, sans-serif;">
	<h2>Thanks for riding, {{.Name}}</h2>
	<table>
		<tr><td>From</td><td>{{.Origin}}</td></tr>
		<tr><td>To</td><td>{{.Destination}}</td></tr>
		<tr><td>Vehicle</td><td>{{.VehicleType}}{{if .DriverName}} with {{.DriverName}}{{end}}</td></tr>
		<tr><td>Completed</td><td>{{.CompletedAt}}</td></tr>
		<tr><td><strong>Fare</strong></td><td><strong>&#8377;{{printf "%.2f" .Fare}}</strong></td></tr>
	</table>
</body>
</html>
`
