package receipt

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/akura-order-service/internal/domain"
)

// DocVersion is embedded in every emitted document so archived receipts
// can be told apart when the layout changes.
const DocVersion = "1"

// InvalidOrderError rejects orders that cannot produce a meaningful
// receipt. Missing optional sections degrade; a missing identifier or an
// empty item list does not.
type InvalidOrderError struct {
	Reason string
}

func (e *InvalidOrderError) Error() string { return "invalid order: " + e.Reason }

// Labeler maps a status code to its display label. Injected so that the
// presentation language stays a caller concern.
type Labeler func(domain.OrderStatus) string

// Renderer produces a self-contained printable HTML receipt for one order.
// Render is pure: the same order, labeler and clock give byte-identical
// output. Zero value renders with the built-in label table and wall clock.
type Renderer struct {
	Brand  string
	Labels Labeler
	Now    func() time.Time
}

var _ domain.ReceiptRenderer = Renderer{}

// Render builds the receipt document. It never fails on missing optional
// fields and never lets a broken labeler block printing.
func (r Renderer) Render(o domain.Order) (string, error) {
	if o.OrderID == "" {
		return "", &InvalidOrderError{Reason: "missing orderId"}
	}
	if len(o.Items) == 0 {
		return "", &InvalidOrderError{Reason: "no items"}
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	labels := r.Labels
	if labels == nil {
		labels = domain.OrderStatus.Label
	}
	brand := r.Brand
	if brand == "" {
		brand = "Akura Institute"
	}

	v := view{
		Brand:          brand,
		DocVersion:     DocVersion,
		OrderID:        o.OrderID,
		CreatedAt:      o.CreatedAt.UTC().Format(timeLayout),
		GeneratedAt:    now().UTC().Format(timeLayout),
		StatusLabel:    safeLabel(labels, o.Status),
		StatusSeverity: string(o.Status.Severity()),
		CustomerName:   o.User.FullName,
		CustomerEmail:  o.UserEmail,
		PaymentMethod:  o.PaymentMethod.Label(),
		PaidInPerson:   o.PaidInPerson,
		AdminNote:      o.AdminNote,
		Subtotal:       money(o.Subtotal),
		Discount:       "- " + money(o.TotalDiscount),
		DeliveryCharge: money(o.DeliveryCharge),
		GrandTotal:     money(o.TotalAmount),
	}

	for _, it := range o.Items {
		v.Items = append(v.Items, itemView{
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			UnitPrice: money(it.PriceAtTime),
			LineTotal: money(it.LineTotal()),
		})
	}

	if o.DeliveryType == domain.DeliveryTypeDelivery && o.DeliveryInfo != nil {
		v.Delivery = &deliveryView{
			Recipient:   o.DeliveryInfo.RecipientName,
			Contact:     o.DeliveryInfo.ContactNumber,
			Address:     o.DeliveryInfo.Address,
			District:    o.DeliveryInfo.District,
			StatusLabel: o.DeliveryStatus.Label(),
		}
	}

	if o.PaidInPerson {
		if o.AdminPayment != nil {
			v.AdminPayment = &adminPaymentView{
				Recipient: o.AdminPayment.RecipientName,
				Contact:   o.AdminPayment.ContactNumber,
				Note:      o.AdminPayment.AdminNote,
			}
		}
	} else {
		for _, pr := range o.PaymentReceipts {
			v.Receipts = append(v.Receipts, uploadView{
				Name:       pr.Name,
				UploadedAt: pr.UploadedAt.UTC().Format(timeLayout),
			})
		}
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render receipt %s: %w", o.OrderID, err)
	}
	return buf.String(), nil
}

const timeLayout = "2 Jan 2006 15:04 UTC"

var printer = message.NewPrinter(language.English)

// money formats a rupee amount with thousands separators and no decimals.
// Whole-unit presentation is deliberate, not lost precision.
func money(v float64) string {
	return printer.Sprintf("Rs. %d", int64(math.Round(v)))
}

// safeLabel resolves a status label, falling back to the raw code when the
// labeler panics or returns nothing. A broken label must never block a
// receipt from printing.
func safeLabel(labels Labeler, s domain.OrderStatus) (label string) {
	defer func() {
		if recover() != nil || label == "" {
			label = string(s)
		}
	}()
	return labels(s)
}

type view struct {
	Brand          string
	DocVersion     string
	OrderID        string
	CreatedAt      string
	GeneratedAt    string
	StatusLabel    string
	StatusSeverity string
	CustomerName   string
	CustomerEmail  string
	Items          []itemView
	Delivery       *deliveryView
	PaymentMethod  string
	PaidInPerson   bool
	AdminPayment   *adminPaymentView
	Receipts       []uploadView
	AdminNote      string
	Subtotal       string
	Discount       string
	DeliveryCharge string
	GrandTotal     string
}

type itemView struct {
	Name      string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type deliveryView struct {
	Recipient   string
	Contact     string
	Address     string
	District    string
	StatusLabel string
}

type adminPaymentView struct {
	Recipient string
	Contact   string
	Note      string
}

type uploadView struct {
	Name       string
	UploadedAt string
}
