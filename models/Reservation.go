package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses (StatutReservation on the wire)
const (
	ReservationPending    = "EN_ATTENTE"
	ReservationConfirmed  = "CONFIRMEE"
	ReservationCancelled  = "ANNULEE"
	ReservationInProgress = "EN_COURS"
	ReservationCompleted  = "TERMINEE"
	ReservationNoShow     = "NO_SHOW"
)

// Payment statuses (StatutPaiement on the wire)
const (
	PaymentUnpaid   = "NON_PAYE"
	PaymentDeposit  = "ACOMPTE"
	PaymentPaid     = "PAYE"
	PaymentRefunded = "REMBOURSE"
)

// Reservation books one room for the half-open interval
// [ArrivalDate, DepartureDate) at day granularity.
type Reservation struct {
	gorm.Model
	Number   string `json:"numeroReservation" gorm:"uniqueIndex;not null"`
	RoomID   uint   `json:"chambreId" gorm:"index;not null"`
	ClientID uint   `json:"clientId" gorm:"index"`

	ArrivalDate   time.Time `json:"dateArrivee" gorm:"index;not null"`
	DepartureDate time.Time `json:"dateDepart" gorm:"index;not null"`
	Nights        int       `json:"nombreNuits"`
	NumAdults     int       `json:"nombreAdultes"`
	NumChildren   int       `json:"nombreEnfants"`

	NightlyPrice    float64 `json:"prixParNuit"`
	TotalAmount     float64 `json:"montantTotal"`
	PaidAmount      float64 `json:"montantPaye"`
	RemainingAmount float64 `json:"montantRestant"`

	Status        string `json:"statut" gorm:"type:varchar(20);default:'EN_ATTENTE';index"`
	PaymentStatus string `json:"statutPaiement" gorm:"type:varchar(20);default:'NON_PAYE'"`
	PaymentMethod string `json:"modePaiement" gorm:"type:varchar(30)"`

	Notes             string `json:"notes" gorm:"type:text"`
	SpecialRequests   string `json:"demandesSpeciales" gorm:"type:text"`
	ExternalReference string `json:"referenceExterne"`

	CheckinAt    *time.Time `json:"dateCheckin"`
	CheckoutAt   *time.Time `json:"dateCheckout"`
	CreatedByID  *uint      `json:"createdById"`
	CheckinByID  *uint      `json:"checkinById"`
	CheckoutByID *uint      `json:"checkoutById"`

	Room     *Room     `json:"chambre,omitempty" gorm:"foreignKey:RoomID"`
	Client   *Client   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Payments []Payment `json:"paiements,omitempty" gorm:"foreignKey:ReservationID"`
}
