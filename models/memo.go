package models

// Customer is a point-in-time snapshot embedded in a memo. It has no
// identity beyond the memo that carries it.
type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// LineItem is a single billed row. Total is always derived from quantity and
// unit price, never set independently.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// CashMemo is the finalized business record. Once persisted it is never
// mutated, only replaced by id or hard-deleted.
type CashMemo struct {
	ID            string     `json:"id"`
	Customer      Customer   `json:"customer"`
	Date          string     `json:"date"` // RFC 3339 issue instant
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	TaxRate       float64    `json:"taxRate"`
	TaxAmount     float64    `json:"taxAmount"`
	GrandTotal    float64    `json:"grandTotal"`
	PaymentMethod string     `json:"paymentMethod"`
	Signature     string     `json:"signature"`
	Timestamp     int64      `json:"timestamp"` // epoch millis, shown as the authentication number
}
