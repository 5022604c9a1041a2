package planning

import (
	"github.com/MEMOUE/PrrojetMgh/models"
)

// transitions is the reservation lifecycle. Completed, cancelled and
// no-show are terminal. NO_SHOW is reachable from pending and confirmed:
// the status exists in the data model but previously had no path into it,
// so a stay whose arrival date passed unclaimed could never be marked.
var transitions = map[string][]string{
	models.ReservationPending:    {models.ReservationConfirmed, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationConfirmed:  {models.ReservationInProgress, models.ReservationCancelled, models.ReservationNoShow},
	models.ReservationInProgress: {models.ReservationCompleted},
}

// CanTransition reports whether the lifecycle allows moving from one
// reservation status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a reservation status admits no further action.
func IsTerminal(status string) bool {
	return len(transitions[status]) == 0
}

// RemainingBalance is what the guest still owes, never negative even when
// the paid amount exceeds the total.
func RemainingBalance(r *models.Reservation) float64 {
	rem := r.TotalAmount - r.PaidAmount
	if rem < 0 {
		return 0
	}
	return rem
}

func CanCheckin(r *models.Reservation) bool {
	return r.Status == models.ReservationConfirmed
}

func CanCheckout(r *models.Reservation) bool {
	return r.Status == models.ReservationInProgress
}

func CanCancel(r *models.Reservation) bool {
	return r.Status == models.ReservationPending || r.Status == models.ReservationConfirmed
}

// CanEdit reports whether the reservation details (notes, special requests,
// guest counts) may still change. Cancelled and completed stays are frozen.
func CanEdit(r *models.Reservation) bool {
	return r.Status != models.ReservationCancelled && r.Status != models.ReservationCompleted
}

// CanAddPayment gates on the remaining balance, not the lifecycle status: a
// completed but unsettled stay can still receive a payment. Only cancelled
// reservations are excluded.
func CanAddPayment(r *models.Reservation) bool {
	return r.Status != models.ReservationCancelled && RemainingBalance(r) > 0
}

// StatusStyle drives the rendering of a stay bar on the planning board.
type StatusStyle struct {
	Label      string `json:"label"`
	Color      string `json:"color"`
	Background string `json:"bg"`
	Border     string `json:"border"`
}

var statusStyles = map[string]StatusStyle{
	models.ReservationPending:    {Label: "En attente", Color: "#92400e", Background: "#fef3c7", Border: "#f59e0b"},
	models.ReservationConfirmed:  {Label: "Confirmée", Color: "#1e40af", Background: "#dbeafe", Border: "#3b82f6"},
	models.ReservationInProgress: {Label: "En cours", Color: "#065f46", Background: "#d1fae5", Border: "#10b981"},
	models.ReservationCompleted:  {Label: "Terminée", Color: "#374151", Background: "#f3f4f6", Border: "#9ca3af"},
	models.ReservationCancelled:  {Label: "Annulée", Color: "#991b1b", Background: "#fee2e2", Border: "#ef4444"},
	models.ReservationNoShow:     {Label: "No-show", Color: "#7c2d12", Background: "#ffedd5", Border: "#f97316"},
}

// StyleFor returns the style for a status, with a neutral fallback for
// anything unknown.
func StyleFor(status string) StatusStyle {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return StatusStyle{Label: status, Color: "#374151", Background: "#f3f4f6", Border: "#9ca3af"}
}

// PaymentMethodOption is a typed dropdown entry; the value set is closed.
type PaymentMethodOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PaymentMethodOptions lists the accepted payment modes in display order.
func PaymentMethodOptions() []PaymentMethodOption {
	return []PaymentMethodOption{
		{Label: "Espèces", Value: models.PayCash},
		{Label: "Carte bancaire", Value: models.PayCard},
		{Label: "Virement bancaire", Value: models.PayWireTransfer},
		{Label: "Chèque", Value: models.PayCheque},
		{Label: "Mobile Money", Value: models.PayMobileMoney},
		{Label: "Orange Money", Value: models.PayOrangeMoney},
		{Label: "MTN Money", Value: models.PayMTNMoney},
		{Label: "Wave", Value: models.PayWave},
		{Label: "Moov Money", Value: models.PayMoovMoney},
	}
}

// ValidPaymentMethod reports whether m belongs to the closed set of modes.
func ValidPaymentMethod(m string) bool {
	for _, opt := range PaymentMethodOptions() {
		if opt.Value == m {
			return true
		}
	}
	return false
}
