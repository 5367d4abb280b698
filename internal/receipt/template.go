package receipt

import "html/template"

// The logo is embedded as a data URI so the document stays renderable in a
// detached context (saved file, print surface, email attachment).
const logoDataURI = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSI0OCIgaGVpZ2h0PSI0OCIgdmlld0JveD0iMCAwIDQ4IDQ4Ij48Y2lyY2xlIGN4PSIyNCIgY3k9IjI0IiByPSIyMiIgZmlsbD0iIzFhNWZiNCIvPjx0ZXh0IHg9IjI0IiB5PSIzMSIgZm9udC1mYW1pbHk9Ikdlb3JnaWEsc2VyaWYiIGZvbnQtc2l6ZT0iMjIiIGZpbGw9IiNmZmYiIHRleHQtYW5jaG9yPSJtaWRkbGUiPkE8L3RleHQ+PC9zdmc+"

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Receipt {{.OrderID}}</title>
<style>
  body { font-family: Georgia, "Times New Roman", serif; color: #222; margin: 0; background: #fff; }
  .receipt { max-width: 640px; margin: 0 auto; padding: 32px; }
  .brand { display: flex; align-items: center; gap: 12px; border-bottom: 2px solid #1a5fb4; padding-bottom: 16px; }
  .brand h1 { font-size: 22px; margin: 0; }
  .meta { margin: 16px 0; font-size: 13px; color: #555; }
  .meta div { margin: 2px 0; }
  .badge { display: inline-block; padding: 3px 10px; border-radius: 10px; font-size: 12px; font-weight: bold; }
  .badge.warning { background: #fdf0d5; color: #8a6100; }
  .badge.success { background: #ddf2dd; color: #1b6e1b; }
  .badge.error   { background: #f8d7da; color: #93262f; }
  .badge.info    { background: #d7e9f7; color: #1a5fb4; }
  .badge.neutral { background: #e8e8e8; color: #444; }
  h2 { font-size: 14px; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #ddd; padding-bottom: 4px; margin: 24px 0 8px; }
  table.items { width: 100%; border-collapse: collapse; font-size: 14px; }
  table.items th { text-align: left; border-bottom: 1px solid #999; padding: 6px 4px; font-size: 12px; }
  table.items td { padding: 6px 4px; border-bottom: 1px dotted #ccc; }
  table.items td.num, table.items th.num { text-align: right; white-space: nowrap; }
  .totals { margin-top: 12px; font-size: 14px; }
  .totals div { display: flex; justify-content: space-between; padding: 3px 4px; }
  .totals .grand { border-top: 2px solid #222; margin-top: 6px; padding-top: 8px; font-size: 16px; font-weight: bold; }
  .banner { background: #ddf2dd; border: 1px solid #1b6e1b; color: #1b6e1b; padding: 8px 12px; border-radius: 4px; font-size: 13px; margin: 8px 0; }
  .kv { font-size: 13px; }
  .kv div { margin: 3px 0; }
  .kv span.k { color: #777; display: inline-block; min-width: 120px; }
  .note { font-size: 13px; background: #f6f6f6; padding: 8px 12px; border-left: 3px solid #999; }
  footer { margin-top: 32px; border-top: 1px solid #ddd; padding-top: 10px; font-size: 11px; color: #888; text-align: center; }
  @media print { .receipt { padding: 0; } }
</style>
</head>
<body>
<div class="receipt" data-doc-version="{{.DocVersion}}">
  <div class="brand">
    <img src="` + logoDataURI + `" width="48" height="48" alt="">
    <h1>{{.Brand}}</h1>
  </div>

  <div class="meta">
    <div>Order <strong>{{.OrderID}}</strong></div>
    <div>Order placed: {{.CreatedAt}}</div>
    <div>Receipt generated: {{.GeneratedAt}}</div>
    <div>Status: <span class="badge {{.StatusSeverity}}">{{.StatusLabel}}</span></div>
  </div>

  <h2>Customer</h2>
  <div class="kv">
    {{if .CustomerName}}<div><span class="k">Name</span>{{.CustomerName}}</div>{{end}}
    {{if .CustomerEmail}}<div><span class="k">Email</span>{{.CustomerEmail}}</div>{{end}}
  </div>

  <h2>Items</h2>
  <table class="items">
    <tr><th>Item</th><th class="num">Qty &times; Unit</th><th class="num">Total</th></tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}</td>
      <td class="num">{{.Quantity}} &times; {{.UnitPrice}}</td>
      <td class="num">{{.LineTotal}}</td>
    </tr>
    {{end}}
  </table>

  {{with .Delivery}}
  <h2>Delivery</h2>
  <div class="kv">
    <div><span class="k">Recipient</span>{{.Recipient}}</div>
    <div><span class="k">Contact</span>{{.Contact}}</div>
    <div><span class="k">Address</span>{{.Address}}</div>
    <div><span class="k">District</span>{{.District}}</div>
    <div><span class="k">Delivery status</span>{{.StatusLabel}}</div>
  </div>
  {{end}}

  <h2>Payment</h2>
  <div class="kv"><div><span class="k">Method</span>{{.PaymentMethod}}</div></div>
  {{if .PaidInPerson}}
  <div class="banner">Payment received in person &#10003;</div>
  {{with .AdminPayment}}
  <div class="kv">
    <div><span class="k">Received by</span>{{.Recipient}}</div>
    <div><span class="k">Contact</span>{{.Contact}}</div>
    {{if .Note}}<div><span class="k">Note</span>{{.Note}}</div>{{end}}
  </div>
  {{end}}
  {{else}}{{if .Receipts}}
  <div class="kv">
    {{range .Receipts}}<div><span class="k">Uploaded receipt</span>{{.Name}} ({{.UploadedAt}})</div>{{end}}
  </div>
  {{end}}{{end}}

  {{if .AdminNote}}
  <h2>Note</h2>
  <div class="note">{{.AdminNote}}</div>
  {{end}}

  <h2>Totals</h2>
  <div class="totals">
    <div><span>Subtotal</span><span>{{.Subtotal}}</span></div>
    <div><span>Discount</span><span>{{.Discount}}</span></div>
    <div><span>Delivery charge</span><span>{{.DeliveryCharge}}</span></div>
    <div class="grand"><span>Total</span><span>{{.GrandTotal}}</span></div>
  </div>

  <footer>Thank you for your purchase &middot; {{.Brand}} &middot; receipt v{{.DocVersion}}</footer>
</div>
</body>
</html>
`))
