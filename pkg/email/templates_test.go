package email

import (
	"strings"
	"testing"
)

func TestTemplates(t *testing.T) {
	tm, err := NewTemplateManager()
	if err != nil {
		t.Fatalf("NewTemplateManager: %v", err)
	}

	welcome, err := tm.GenerateWelcomeEmailHTML(WelcomeData{Name: "Asha <script>"})
	if err != nil {
		t.Fatalf("welcome: %v", err)
	}
	if !strings.Contains(welcome, "Asha &lt;script&gt;") {
		t.Errorf("welcome email did not escape the name:\n%s", welcome)
	}

	receipt, err := tm.GenerateReceiptEmailHTML(ReceiptData{
		Name:        "Asha",
		Origin:      "MG Road",
		Destination: "Airport",
		VehicleType: "Auto",
		DriverName:  "Mohammed Ismail",
		Fare:        120,
		CompletedAt: "02 Jan 2024 15:04",
	})
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	for _, want := range []string{"MG Road", "Airport", "Auto with Mohammed Ismail", "120.00"} {
		if !strings.Contains(receipt, want) {
			t.Errorf("receipt missing %q", want)
		}
	}
}
