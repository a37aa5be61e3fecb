package memo

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/yourusername/promemo/models"
)

// TaxRate is the flat rate applied to every memo.
const TaxRate = 0.10

var (
	// ErrEmptyMemo is returned when no line item survives validation.
	ErrEmptyMemo = errors.New("memo has no valid line items")
	// ErrNoCustomer is returned when the customer name is blank.
	ErrNoCustomer = errors.New("customer name is required")
)

// Draft is the mutable input collected by the caller before a memo is
// finalized.
type Draft struct {
	Customer      models.Customer
	Items         []models.LineItem
	PaymentMethod string
	Signature     string
}

// Totals holds the computed money fields of a memo.
type Totals struct {
	Subtotal   float64
	TaxAmount  float64
	GrandTotal float64
}

// Builder turns drafts into finalized memos. It never touches storage: the
// clock and the id collision probe are injected so construction stays pure
// and testable.
type Builder struct {
	Now    func() time.Time
	Exists func(id string) bool
}

func NewBuilder() *Builder {
	return &Builder{Now: time.Now}
}

// ComputeItemTotal derives a line total from quantity and unit price.
// Quantity is clamped to at least 1 and unit price to at least 0, matching
// the form defaults for blank or invalid input.
func ComputeItemTotal(quantity int, unitPrice float64) float64 {
	if quantity < 1 {
		quantity = 1
	}
	if unitPrice < 0 {
		unitPrice = 0
	}
	return round2(float64(quantity) * unitPrice)
}

// ComputeTotals sums the item totals and applies the flat tax rate. The sum
// is commutative, so the result does not depend on item order.
func ComputeTotals(items []models.LineItem) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Total
	}
	subtotal = round2(subtotal)
	taxAmount := round2(subtotal * TaxRate)
	return Totals{
		Subtotal:   subtotal,
		TaxAmount:  taxAmount,
		GrandTotal: round2(subtotal + taxAmount),
	}
}

// Build validates the draft and returns a fully populated memo. Line totals
// are recomputed from quantity and unit price; items with a blank
// description or a non-positive total are dropped, and if none survive the
// draft is rejected with ErrEmptyMemo. A blank signature falls back to the
// company name.
func (b *Builder) Build(draft Draft, company models.CompanyProfile) (*models.CashMemo, error) {
	if strings.TrimSpace(draft.Customer.Name) == "" {
		return nil, ErrNoCustomer
	}

	valid := make([]models.LineItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		item.Total = ComputeItemTotal(item.Quantity, item.UnitPrice)
		if strings.TrimSpace(item.Description) != "" && item.Total > 0 {
			valid = append(valid, item)
		}
	}
	if len(valid) == 0 {
		return nil, ErrEmptyMemo
	}

	signature := draft.Signature
	if strings.TrimSpace(signature) == "" {
		signature = company.Name
	}

	now := b.Now()
	totals := ComputeTotals(valid)

	return &models.CashMemo{
		ID:            b.generateID(now),
		Customer:      draft.Customer,
		Date:          now.UTC().Format(time.RFC3339),
		Items:         valid,
		Subtotal:      totals.Subtotal,
		TaxRate:       TaxRate,
		TaxAmount:     totals.TaxAmount,
		GrandTotal:    totals.GrandTotal,
		PaymentMethod: draft.PaymentMethod,
		Signature:     signature,
		Timestamp:     now.UnixMilli(),
	}, nil
}

// generateID derives a human-readable id from the clock: "INV-" plus the
// last six digits of the millisecond timestamp. When a collision probe is
// configured, taken ids are skipped by walking the timestamp forward one
// millisecond at a time.
func (b *Builder) generateID(now time.Time) string {
	millis := now.UnixMilli()
	id := formatID(millis)
	if b.Exists == nil {
		return id
	}
	for b.Exists(id) {
		millis++
		id = formatID(millis)
	}
	return id
}

func formatID(millis int64) string {
	return fmt.Sprintf("INV-%06d", millis%1000000)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
