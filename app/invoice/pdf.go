package invoice

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// RenderPDF produces the downloadable fixed-layout tax invoice. It is a
// pure function of the invoice data; no renderer state survives the
// call.
func RenderPDF(data Data) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Header: company block left, invoice meta right.
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(120, 9, data.CompanyName, "", 0, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 9, "Tax Invoice", "", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(120, 5, data.CompanyAddress, "", 0, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, "Invoice #: "+data.InvoiceNumber, "", 1, "R", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(120, 5, "Phone: "+data.CompanyPhone, "", 0, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, "Date: "+data.InvoiceDate, "", 1, "R", false, 0, "")
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(120, 5, "Email: "+data.CompanyEmail, "", 0, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.CellFormat(0, 5, "Due Date: "+data.DueDate, "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(0, 5, "ABN: "+data.ABN, "", 1, "L", false, 0, "")

	pdf.Ln(6)
	pdf.SetDrawColor(37, 99, 235)
	pdf.SetLineWidth(0.8)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(6)

	// Bill To.
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 5, data.ClientName, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, data.ClientAddress, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, data.ClientEmail, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	// Line items table, input order preserved.
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(248, 250, 252)
	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.2)
	pdf.CellFormat(90, 8, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range data.Items {
		pdf.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, strconv.FormatInt(item.Quantity, 10), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 8, Money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, Money(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals.
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(110, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, Money(data.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(110, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "GST (incl.):", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, Money(data.GST), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(110, 9, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(35, 9, "Total (AUD):", "T", 0, "L", false, 0, "")
	pdf.CellFormat(35, 9, Money(data.Total), "T", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Terms and bank details.
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Payment Terms:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 5, data.PaymentTerms, "", "L", false)
	pdf.Ln(3)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "Bank Details:", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, "Account Name: "+data.Bank.AccountName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "BSB: "+data.Bank.BSB, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Account Number: "+data.Bank.AccountNumber, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
