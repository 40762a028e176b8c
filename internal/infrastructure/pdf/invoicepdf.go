// Package pdf renders downloadable invoice documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"ta7wila/internal/domain/invoice"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/shared/biztime"
)

type InvoiceRenderer struct{}

func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

// Render produces the invoice PDF and a suggested filename.
func (r *InvoiceRenderer) Render(inv *invoice.Invoice, s *store.Store) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.Ref(), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(12)

	periodLabel := biztime.FormatInBizTimezone(inv.PeriodStart(), "January 2006")

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Invoice No : %s", inv.Ref()),
		fmt.Sprintf("Store      : %s", s.Name()),
		fmt.Sprintf("Period     : %s", periodLabel),
		fmt.Sprintf("Issued     : %s", biztime.FormatInBizTimezone(inv.CreatedAt(), "2006-01-02")),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(6)

	currency := inv.GrossAmount().Currency()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Settlement Summary")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 12)
	rows := []string{
		fmt.Sprintf("Verified claims  : %d", inv.ClaimCount()),
		fmt.Sprintf("Gross volume     : %.2f %s", inv.GrossAmount().AmountInUnits(), currency),
		fmt.Sprintf("Platform fee     : %.2f %s", inv.FeeAmount().AmountInUnits(), currency),
	}
	for _, line := range rows {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Net payout       : %.2f %s", float64(inv.NetAmountInCents())/100.0, currency))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Net payout is transferred to the store's settlement account within five business days of issue.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render invoice pdf: %w", err)
	}

	filename := fmt.Sprintf("%s_%s.pdf", inv.Ref(), inv.PeriodStart().Format("2006-01"))
	return buf.Bytes(), filename, nil
}
