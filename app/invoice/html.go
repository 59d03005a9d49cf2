package invoice

import (
	"bytes"
	"html/template"
)

var templateFuncs = template.FuncMap{
	"money": Money,
}

// The email fragment mirrors the historical inline-styled tax invoice
// so mail clients render it without a stylesheet.
var emailTemplate = template.Must(template.New("invoice-email").Funcs(templateFuncs).Parse(`<div style="max-width:800px;margin:0 auto;padding:40px 20px;background-color:#ffffff;font-family:Arial,sans-serif;color:#333333;line-height:1.6;">
  <div style="display:flex;justify-content:space-between;align-items:flex-start;margin-bottom:40px;border-bottom:3px solid #2563eb;padding-bottom:20px;">
    <div style="flex:1;">
      <h1 style="font-size:28px;font-weight:bold;color:#2563eb;margin:0 0 15px 0;">{{.CompanyName}}</h1>
      <div style="font-size:14px;color:#666666;line-height:1.5;">
        <p style="margin:0 0 5px 0;">{{.CompanyAddress}}</p>
        <p style="margin:0 0 5px 0;">Phone: {{.CompanyPhone}}</p>
        <p style="margin:0 0 5px 0;">Email: {{.CompanyEmail}}</p>
        <p style="margin:10px 0 0 0;font-weight:bold;">ABN: {{.ABN}}</p>
      </div>
    </div>
    <div style="text-align:right;">
      <h2 style="font-size:24px;font-weight:bold;margin:0 0 20px 0;color:#333333;">Tax Invoice</h2>
      <div style="font-size:14px;line-height:1.5;">
        <p style="margin:0 0 5px 0;"><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
        <p style="margin:0 0 5px 0;"><strong>Date:</strong> {{.InvoiceDate}}</p>
        <p style="margin:0 0 5px 0;"><strong>Due Date:</strong> {{.DueDate}}</p>
      </div>
    </div>
  </div>
  <div style="margin-bottom:30px;">
    <h3 style="font-size:18px;font-weight:bold;margin:0 0 15px 0;color:#2563eb;">Bill To:</h3>
    <div style="font-size:14px;line-height:1.5;">
      <p style="margin:0 0 5px 0;font-weight:bold;">{{.ClientName}}</p>
      <p style="margin:0 0 5px 0;">{{.ClientAddress}}</p>
      <p style="margin:0 0 5px 0;">{{.ClientEmail}}</p>
    </div>
  </div>
  <table style="width:100%;border-collapse:collapse;margin-bottom:30px;border:1px solid #e5e7eb;">
    <thead>
      <tr style="background-color:#f8fafc;">
        <th style="text-align:left;padding:15px;font-weight:bold;font-size:14px;border-bottom:1px solid #e5e7eb;">Description</th>
        <th style="text-align:center;padding:15px;font-weight:bold;font-size:14px;border-bottom:1px solid #e5e7eb;width:80px;">Qty</th>
        <th style="text-align:right;padding:15px;font-weight:bold;font-size:14px;border-bottom:1px solid #e5e7eb;width:100px;">Unit Price</th>
        <th style="text-align:right;padding:15px;font-weight:bold;font-size:14px;border-bottom:1px solid #e5e7eb;width:100px;">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}<tr style="border-bottom:1px solid #f3f4f6;">
        <td style="padding:15px;font-size:14px;">{{.Description}}</td>
        <td style="padding:15px;font-size:14px;text-align:center;">{{.Quantity}}</td>
        <td style="padding:15px;font-size:14px;text-align:right;">{{money .UnitPrice}}</td>
        <td style="padding:15px;font-size:14px;text-align:right;">{{money .Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
  <div style="display:flex;justify-content:flex-end;margin-bottom:30px;">
    <div style="width:300px;">
      <div style="display:flex;justify-content:space-between;padding:10px 0;font-size:14px;">
        <span>Subtotal:</span>
        <span>{{money .Subtotal}}</span>
      </div>
      <div style="display:flex;justify-content:space-between;padding:10px 0;font-size:14px;">
        <span>GST (incl.):</span>
        <span>{{money .GST}}</span>
      </div>
      <div style="border-top:2px solid #e5e7eb;display:flex;justify-content:space-between;padding:15px 0 10px 0;font-size:18px;font-weight:bold;">
        <span>Total (AUD):</span>
        <span>{{money .Total}}</span>
      </div>
    </div>
  </div>
  <div style="margin-top:30px;font-size:14px;">
    <strong>Payment Terms:</strong> {{.PaymentTerms}}
  </div>
  <div style="margin-top:20px;font-size:14px;">
    <strong>Bank Details:</strong><br/>
    Account Name: {{.Bank.AccountName}}<br/>
    BSB: {{.Bank.BSB}}<br/>
    Account Number: {{.Bank.AccountNumber}}
  </div>
</div>`))

var screenTemplate = template.Must(template.New("invoice-screen").Funcs(templateFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Invoice {{.InvoiceNumber}}</title>
</head>
<body>
{{.Fragment}}
</body>
</html>
`))

// RenderEmailHTML produces the inline-styled fragment embedded in the
// outbound invoice email body.
func RenderEmailHTML(data Data) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderHTML produces the full operator preview document. It wraps the
// same fragment the email uses so the two surfaces cannot drift apart.
func RenderHTML(data Data) (string, error) {
	fragment, err := RenderEmailHTML(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = screenTemplate.Execute(&buf, struct {
		InvoiceNumber string
		Fragment      template.HTML
	}{
		InvoiceNumber: data.InvoiceNumber,
		Fragment:      template.HTML(fragment),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
