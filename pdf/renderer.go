package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/yourusername/promemo/models"
)

const pageWidth = 210.0 // A4 portrait, mm

var (
	whitespace     = regexp.MustCompile(`\s+`)
	unsafeFilename = regexp.MustCompile(`[\x00-\x1f"/\\]`)
)

// Filename returns the download name for a memo export: the memo id and the
// customer name with whitespace runs replaced by underscores. Quotes, path
// separators, and control characters are stripped so the name is safe inside
// a quoted Content-Disposition value and on disk.
func Filename(memo models.CashMemo) string {
	name := whitespace.ReplaceAllString(strings.TrimSpace(memo.Customer.Name), "_")
	name = unsafeFilename.ReplaceAllString(name, "")
	return fmt.Sprintf("%s_%s.pdf", memo.ID, name)
}

// Renderer lays memos out as print-ready A4 documents.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces the PDF bytes for a memo using the company's branding.
func (r *Renderer) Render(memo models.CashMemo, company models.CompanyProfile) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(memo.ID, false)
	pdf.SetMargins(16, 14, 16)
	pdf.AddPage()

	ar, ag, ab := parseHexColor(company.PrimaryColor)

	// Brand accent bar across the top of the page.
	pdf.SetFillColor(ar, ag, ab)
	pdf.Rect(0, 0, pageWidth, 3, "F")

	y := 14.0
	if company.Logo != "" {
		if h, err := drawLogo(pdf, company.Logo, 16, y); err == nil {
			y += h + 4
		}
	}

	pdf.SetXY(16, y)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(110, 9, company.Name, "", 0, "L", false, 0, "")

	title := company.MemoTitle
	if title == "" {
		title = "INVOICE"
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(ar, ag, ab)
	pdf.CellFormat(0, 9, strings.ToUpper(title), "", 1, "R", false, 0, "")

	pdf.SetX(16)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(110, 5, strings.ToUpper(company.Description), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, strings.ToUpper(company.MemoSubTitle), "", 1, "R", false, 0, "")

	pdf.SetX(16)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(110, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, "#"+memo.ID, "", 1, "R", false, 0, "")
	pdf.SetX(16)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(110, 5, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, formatDate(memo.Date), "", 1, "R", false, 0, "")
	pdf.Ln(8)

	// Issued by / billed to, two columns.
	colW := (pageWidth - 32 - 10) / 2
	top := pdf.GetY()
	drawParty(pdf, 16, top, colW, "ISSUED BY", company.Name, company.Address, company.Phone, company.Email)
	drawParty(pdf, 16+colW+10, top, colW, "BILLED TO", memo.Customer.Name,
		orDefault(memo.Customer.Address, "No address provided"),
		orDefault(memo.Customer.Phone, "No phone"),
		orDefault(memo.Customer.Email, "No email"))
	pdf.Ln(10)

	drawItemsTable(pdf, memo.Items)
	pdf.Ln(6)

	// Totals block, right aligned.
	labelW, valueW := 50.0, 28.0
	x := pageWidth - 16 - labelW - valueW
	drawTotalRow(pdf, x, labelW, valueW, "Net Total", memo.Subtotal, false)
	drawTotalRow(pdf, x, labelW, valueW, fmt.Sprintf("Taxes (%.0f%%)", memo.TaxRate*100), memo.TaxAmount, false)
	pdf.SetFillColor(15, 23, 42)
	drawTotalRow(pdf, x, labelW, valueW, "Payable Amount", memo.GrandTotal, true)
	pdf.Ln(8)

	pdf.SetX(16)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(40, 6, "Payment Method:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 6, memo.PaymentMethod, "", 1, "L", false, 0, "")
	pdf.Ln(14)

	// Signature line and authentication number.
	sigW := 60.0
	sigX := pageWidth - 16 - sigW
	pdf.SetXY(sigX, pdf.GetY())
	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(sigW, 8, memo.Signature, "B", 1, "C", false, 0, "")
	pdf.SetX(sigX)
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(sigW, 5, "AUTHORIZED SIGNATORY", "", 1, "C", false, 0, "")

	pdf.SetY(-24)
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(0, 4, fmt.Sprintf("PROMEMO SYSTEM - DIGITAL AUTHENTICATION NO: %d", memo.Timestamp), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 4, fmt.Sprintf("Thank you for choosing %s", company.Name), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawParty(pdf *gofpdf.Fpdf, x, y, w float64, heading, name, address, phone, email string) {
	pdf.SetXY(x, y)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(148, 163, 184)
	pdf.CellFormat(w, 5, heading, "B", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(w, 6, name, "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.MultiCell(w, 4.5, address, "", "L", false)
	pdf.SetX(x)
	pdf.CellFormat(w, 4.5, phone, "", 2, "L", false, 0, "")
	pdf.SetX(x)
	pdf.CellFormat(w, 4.5, email, "", 2, "L", false, 0, "")
}

func drawItemsTable(pdf *gofpdf.Fpdf, items []models.LineItem) {
	descW, qtyW, rateW, amtW := 88.0, 20.0, 32.0, 38.0

	pdf.SetX(16)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(15, 23, 42)
	pdf.SetFillColor(248, 250, 252)
	pdf.CellFormat(descW, 8, "DESCRIPTION", "", 0, "L", true, 0, "")
	pdf.CellFormat(qtyW, 8, "QTY", "", 0, "C", true, 0, "")
	pdf.CellFormat(rateW, 8, "RATE", "", 0, "R", true, 0, "")
	pdf.CellFormat(amtW, 8, "AMOUNT", "", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		pdf.SetX(16)
		pdf.SetTextColor(51, 65, 85)
		pdf.CellFormat(descW, 8, item.Description, "B", 0, "L", false, 0, "")
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(qtyW, 8, strconv.Itoa(item.Quantity), "B", 0, "C", false, 0, "")
		pdf.CellFormat(rateW, 8, money(item.UnitPrice), "B", 0, "R", false, 0, "")
		pdf.SetTextColor(15, 23, 42)
		pdf.CellFormat(amtW, 8, money(item.Total), "B", 1, "R", false, 0, "")
	}
}

func drawTotalRow(pdf *gofpdf.Fpdf, x, labelW, valueW float64, label string, amount float64, fill bool) {
	pdf.SetX(x)
	if fill {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetTextColor(255, 255, 255)
	} else {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 116, 139)
	}
	pdf.CellFormat(labelW, 8, label, "", 0, "L", fill, 0, "")
	if !fill {
		pdf.SetTextColor(15, 23, 42)
		pdf.SetFont("Helvetica", "B", 9)
	}
	pdf.CellFormat(valueW, 8, money(amount), "", 1, "R", fill, 0, "")
}

// drawLogo decodes a base64 data URI and places the image at (x, y),
// returning the rendered height. Unsupported or malformed logos are skipped.
func drawLogo(pdf *gofpdf.Fpdf, dataURI string, x, y float64) (float64, error) {
	imageType, data, err := decodeDataURI(dataURI)
	if err != nil {
		return 0, err
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader("company-logo", opts, bytes.NewReader(data))
	if pdf.Err() {
		return 0, fmt.Errorf("register logo: %s", pdf.Error())
	}

	const logoWidth = 28.0
	height := logoWidth * info.Height() / info.Width()
	pdf.ImageOptions("company-logo", x, y, logoWidth, 0, false, opts, 0, "")
	return height, nil
}

func decodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:image/")
	if !ok {
		return "", nil, fmt.Errorf("logo is not an image data URI")
	}
	mediaType, encoded, ok := strings.Cut(rest, ";base64,")
	if !ok {
		return "", nil, fmt.Errorf("logo data URI is not base64 encoded")
	}

	var imageType string
	switch mediaType {
	case "png":
		imageType = "PNG"
	case "jpeg", "jpg":
		imageType = "JPG"
	case "gif":
		imageType = "GIF"
	default:
		return "", nil, fmt.Errorf("unsupported logo type %q", mediaType)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("decode logo: %w", err)
	}
	return imageType, data, nil
}

// parseHexColor converts a #rrggbb (or #rgb) accent color to RGB. Malformed
// values fall back to the default indigo accent.
func parseHexColor(hex string) (int, int, int) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 79, 70, 229
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 79, 70, 229
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
}

func formatDate(date string) string {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.Format("January 2, 2006")
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
