// Package invoice renders a flat invoice data object to the three
// surfaces the conference uses: an operator preview page, an email body
// fragment, and a downloadable PDF. All renderers consume the same
// fields, format money the same way, and keep line items in input
// order.
package invoice

import "github.com/shopspring/decimal"

type Item struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Amount      decimal.Decimal `json:"amount"`
}

type BankDetails struct {
	AccountName   string `json:"accountName"`
	BSB           string `json:"bsb"`
	AccountNumber string `json:"accountNumber"`
}

type Data struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate"`

	ABN            string `json:"abn"`
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyEmail   string `json:"companyEmail"`

	ClientName    string `json:"clientName"`
	ClientAddress string `json:"clientAddress"`
	ClientEmail   string `json:"clientEmail"`

	Items []Item `json:"items"`

	Subtotal decimal.Decimal `json:"subtotal"`
	GST      decimal.Decimal `json:"gst"`
	Total    decimal.Decimal `json:"total"`

	PaymentTerms string      `json:"paymentTerms"`
	Bank         BankDetails `json:"bankDetails"`
}

// Money renders an amount with exactly two decimal places and a dollar
// sign, the shared format of every renderer.
func Money(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
