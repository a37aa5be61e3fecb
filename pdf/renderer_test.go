package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/promemo/models"
)

func testMemo() models.CashMemo {
	return models.CashMemo{
		ID: "INV-482913",
		Customer: models.Customer{
			Name:    "Jane  Doe",
			Address: "42 Elm Street",
		},
		Date: "2023-11-14T22:21:22Z",
		Items: []models.LineItem{
			{ID: "1", Description: "Widget", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
			{ID: "2", Description: "Gadget", Quantity: 1, UnitPrice: 25.50, Total: 25.50},
		},
		Subtotal:      35.50,
		TaxRate:       0.10,
		TaxAmount:     3.55,
		GrandTotal:    39.05,
		PaymentMethod: "Cash",
		Signature:     "Acme Inc.",
		Timestamp:     1700000482913,
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		customer string
		expected string
	}{
		{"Spaces become underscores", "Jane Doe", "INV-482913_Jane_Doe.pdf"},
		{"Whitespace runs collapse", "Jane \t Doe", "INV-482913_Jane_Doe.pdf"},
		{"Single word", "Acme", "INV-482913_Acme.pdf"},
		{"Quotes are stripped", `Jane "JD" Doe`, "INV-482913_Jane_JD_Doe.pdf"},
		{"Path separators are stripped", `Jane/Doe\Co`, "INV-482913_JaneDoeCo.pdf"},
		{"Control characters are stripped", "Jane\x07Doe", "INV-482913_JaneDoe.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMemo()
			m.Customer.Name = tt.customer
			assert.Equal(t, tt.expected, Filename(m))
		})
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer()
	company := models.CompanyProfile{
		Name:         "Acme Inc.",
		MemoTitle:    "Cash Memo",
		MemoSubTitle: "Official Receipt",
		Description:  "General trading",
		Phone:        "555-0100",
		Email:        "billing@acme.example",
		Address:      "1 Factory Road",
		PrimaryColor: "#4f46e5",
	}

	t.Run("Produces a PDF document", func(t *testing.T) {
		data, err := r.Render(testMemo(), company)
		assert.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("Malformed accent color falls back", func(t *testing.T) {
		company := company
		company.PrimaryColor = "not-a-color"
		data, err := r.Render(testMemo(), company)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("Unparseable logo is skipped", func(t *testing.T) {
		company := company
		company.Logo = "data:image/png;base64,%%%"
		data, err := r.Render(testMemo(), company)
		assert.NoError(t, err)
		assert.NotEmpty(t, data)
	})
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		r, g, b int
	}{
		{"Six digit", "#4f46e5", 79, 70, 229},
		{"Three digit", "#fff", 255, 255, 255},
		{"No hash", "000000", 0, 0, 0},
		{"Malformed falls back to indigo", "zzz", 79, 70, 229},
		{"Empty falls back to indigo", "", 79, 70, 229},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := parseHexColor(tt.hex)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}
