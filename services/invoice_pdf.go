package services

import (
	"bytes"
	"strconv"
	"strings"
	"unicode"

	"carwash-backend/config"
	"carwash-backend/models"
	"carwash-backend/pricing"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// The core PDF fonts are cp1252, so Vietnamese text is printed without marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func ascii(s string) string {
	s = strings.NewReplacer("đ", "d", "Đ", "D").Replace(s)
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}
	return out
}

func vnd(v float64) string {
	return ascii(strings.TrimSuffix(pricing.FormatVND(pricing.Coalesce(v)), " ₫")) + " VND"
}

// RenderInvoicePDF lays out one invoice on an A4 page.
func RenderInvoicePDF(inv *models.Invoice, customer *models.Customer, shop config.Shop) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Shop header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, ascii(shop.Name))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	if shop.Address != "" {
		pdf.Cell(100, 7, ascii(shop.Address))
		pdf.Ln(6)
	}
	if shop.Phone != "" {
		pdf.Cell(100, 7, "Dien thoai: "+shop.Phone)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "HOA DON DICH VU")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(90, 7, "So: "+inv.InvoiceNumber)
	pdf.Cell(90, 7, "Ngay: "+inv.InvoiceDate)
	pdf.Ln(7)
	if inv.VehiclePlate != "" {
		pdf.Cell(90, 7, "Bien so: "+ascii(inv.VehiclePlate))
	}
	pdf.Cell(90, 7, "Thanh toan: "+ascii(inv.PaymentMethod))
	pdf.Ln(9)

	if customer != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(100, 7, "Khach hang:")
		pdf.Ln(6)
		pdf.SetFont("Arial", "", 11)
		pdf.Cell(100, 7, ascii(customer.Name))
		pdf.Ln(6)
		pdf.Cell(100, 7, "SDT: "+customer.Phone)
		pdf.Ln(9)
	}

	// Lines
	widths := []float64{80, 20, 40, 40}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(220, 230, 250)
	for i, h := range []string{"Dich vu / San pham", "SL", "Don gia", "Thanh tien"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	row := func(name string, qty int, unit, total float64) {
		pdf.CellFormat(widths[0], 8, ascii(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, strconv.Itoa(qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[2], 8, vnd(unit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, vnd(total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	for _, s := range inv.Services {
		row(s.ServiceName, s.Quantity, s.UnitPrice, s.TotalPrice)
	}
	for _, p := range inv.Products {
		row(p.ProductName, p.Quantity, p.UnitPrice, p.TotalPrice)
	}

	// Totals
	pdf.Ln(4)
	total := func(label string, v float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Arial", style, 11)
		pdf.CellFormat(140, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, vnd(v), "", 1, "R", false, 0, "")
	}
	total("Tam tinh:", inv.Subtotal, false)
	if inv.IncludeVAT {
		total("VAT (10%):", inv.VATAmount, false)
	}
	if inv.DiscountAmount > 0 {
		total("Giam gia:", -inv.DiscountAmount, false)
	}
	total("Tong cong:", inv.Total, true)

	if inv.Note != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "I", 10)
		pdf.MultiCell(0, 6, "Ghi chu: "+ascii(inv.Note), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
