// Package presenter turns denormalised booking rows into a render plan for a
// given viewer. It performs no I/O.
package presenter

import (
	"fmt"
	"math"
	"time"

	"property-booking/internal/data/entity"
)

const (
	DateLayout  = "Jan 02, 2006"
	InvalidDate = "Invalid Date"

	PlaceholderContractor = "You haven't made any bookings yet."
	PlaceholderOwner      = "No bookings found for your properties."
)

// Column names in display order.
const (
	ColumnProperty   = "property"
	ColumnContractor = "contractor"
	ColumnDates      = "dates"
	ColumnAmount     = "amount"
	ColumnStatus     = "status"
	ColumnPayment    = "payment"
	ColumnCreated    = "created"
)

type BadgeCategory string

const (
	BadgeWarning BadgeCategory = "warning"
	BadgeInfo    BadgeCategory = "info"
	BadgeDanger  BadgeCategory = "danger"
	BadgeSuccess BadgeCategory = "success"
	BadgeNeutral BadgeCategory = "neutral"
)

type Badge struct {
	Category BadgeCategory `json:"category"`
	Label    string        `json:"label"`
}

type ActionKind string

const (
	ActionNone          ActionKind = "none"
	ActionPaymentDone   ActionKind = "payment_complete"
	ActionOpenCheckout  ActionKind = "open_checkout"
	ActionCreatePayment ActionKind = "create_payment"
)

// PaymentFunc asks an external collaborator to start payment for a booking.
// Its outcome is not observed by the table.
type PaymentFunc func(bookingID string)

type PaymentAction struct {
	Kind      ActionKind `json:"kind"`
	Label     string     `json:"label,omitempty"`
	URL       string     `json:"url,omitempty"`
	Target    string     `json:"target,omitempty"`
	BookingID string     `json:"booking_id,omitempty"`

	initiate PaymentFunc
}

// Invoke runs a create-payment action. It reports whether the callback was
// called; every other kind is a no-op on the server.
func (a PaymentAction) Invoke() bool {
	if a.Kind != ActionCreatePayment || a.initiate == nil {
		return false
	}
	a.initiate(a.BookingID)
	return true
}

type Row struct {
	BookingID      string        `json:"booking_id"`
	PropertyTitle  string        `json:"property_title"`
	Address        string        `json:"address"`
	Contractor     string        `json:"contractor,omitempty"`
	ShowContractor bool          `json:"show_contractor"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	Days           int           `json:"days"`
	Total          float64       `json:"total"`
	TotalDisplay   string        `json:"total_display"`
	Status         Badge         `json:"status"`
	Payment        PaymentAction `json:"payment"`
	CreatedDate    string        `json:"created_date"`
}

type Table struct {
	Role        string   `json:"role"`
	Loading     bool     `json:"loading"`
	Columns     []string `json:"columns,omitempty"`
	Rows        []Row    `json:"rows"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// Empty reports whether the table renders its placeholder instead of rows.
func (t Table) Empty() bool {
	return t.Placeholder != ""
}

// BuildTable derives one row per booking, keeping the input order. A nil
// initiate hides the create-payment and open-checkout actions.
func BuildTable(bookings []*entity.BookingDetail, viewer Viewer, initiate PaymentFunc) Table {
	table := Table{Role: viewer.Role.String(), Rows: []Row{}}

	if viewer.Loading {
		table.Loading = true
		return table
	}

	if len(bookings) == 0 {
		table.Placeholder = placeholderFor(viewer.Role)
		return table
	}

	withContractor := false
	for _, b := range bookings {
		row := BuildRow(b, viewer, initiate)
		if row.ShowContractor {
			withContractor = true
		}
		table.Rows = append(table.Rows, row)
	}

	table.Columns = columns(withContractor)
	return table
}

// BuildRow derives the display values of a single booking.
func BuildRow(b *entity.BookingDetail, viewer Viewer, initiate PaymentFunc) Row {
	days := DayCount(b.StartDate, b.EndDate)
	total := RoundCents(b.Property.Price * float64(days))

	row := Row{
		BookingID:     b.ID.String(),
		PropertyTitle: b.Property.Title,
		Address:       b.Property.Address,
		StartDate:     FormatDate(b.StartDate),
		EndDate:       FormatDate(b.EndDate),
		Days:          days,
		Total:         total,
		TotalDisplay:  fmt.Sprintf("%.2f", total),
		Status:        StatusBadge(string(b.Status)),
		Payment:       ResolvePayment(b, initiate),
		CreatedDate:   FormatDate(b.CreatedAt),
	}

	if viewer.Role == RoleLandlord && b.Contractor != nil {
		row.ShowContractor = true
		row.Contractor = b.Contractor.FullName
	}

	return row
}

// DayCount is ceil((end - start) / 24h). Equal dates give 0 and reversed
// dates give a negative count; unset dates give 0.
func DayCount(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	return int(math.Ceil(float64(end.Sub(start)) / float64(24*time.Hour)))
}

// RoundCents rounds an amount to two decimals, half away from zero.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return InvalidDate
	}
	return t.Format(DateLayout)
}

func StatusBadge(status string) Badge {
	switch entity.BookingStatus(status) {
	case entity.BookingStatusPending:
		return Badge{Category: BadgeWarning, Label: "Pending"}
	case entity.BookingStatusConfirmed:
		return Badge{Category: BadgeInfo, Label: "Confirmed"}
	case entity.BookingStatusCancelled:
		return Badge{Category: BadgeDanger, Label: "Cancelled"}
	case entity.BookingStatusPaid:
		return Badge{Category: BadgeSuccess, Label: "Paid"}
	default:
		return Badge{Category: BadgeNeutral, Label: status}
	}
}

// ResolvePayment picks the payment affordance of a booking. First match wins.
func ResolvePayment(b *entity.BookingDetail, initiate PaymentFunc) PaymentAction {
	if b.Status != entity.BookingStatusConfirmed {
		return PaymentAction{Kind: ActionNone}
	}

	inv := b.Invoice
	if inv != nil && inv.Status == entity.InvoiceStatusPaid {
		return PaymentAction{Kind: ActionPaymentDone, Label: "Payment complete"}
	}

	if inv != nil && inv.PaymentURL != nil && *inv.PaymentURL != "" && initiate != nil {
		return PaymentAction{
			Kind:   ActionOpenCheckout,
			Label:  "Pay now",
			URL:    *inv.PaymentURL,
			Target: "_blank",
		}
	}

	if initiate != nil {
		return PaymentAction{
			Kind:      ActionCreatePayment,
			Label:     "Pay now",
			BookingID: b.ID.String(),
			initiate:  initiate,
		}
	}

	return PaymentAction{Kind: ActionNone}
}

func placeholderFor(role Role) string {
	if role == RoleContractor {
		return PlaceholderContractor
	}
	return PlaceholderOwner
}

func columns(withContractor bool) []string {
	cols := []string{ColumnProperty}
	if withContractor {
		cols = append(cols, ColumnContractor)
	}
	return append(cols, ColumnDates, ColumnAmount, ColumnStatus, ColumnPayment, ColumnCreated)
}
