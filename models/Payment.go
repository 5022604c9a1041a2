package models

import (
	"gorm.io/gorm"
)

// Payment methods (ModePaiement on the wire)
const (
	PayCash         = "ESPECES"
	PayCard         = "CARTE_BANCAIRE"
	PayWireTransfer = "VIREMENT"
	PayCheque       = "CHEQUE"
	PayMobileMoney  = "MOBILE_MONEY"
	PayOrangeMoney  = "ORANGE_MONEY"
	PayMTNMoney     = "MTN_MONEY"
	PayWave         = "WAVE"
	PayMoovMoney    = "MOOV_MONEY"
)

// Payment records a single settlement against a reservation.
type Payment struct {
	gorm.Model
	ReservationID uint    `json:"reservationId" gorm:"index;not null"`
	Amount        float64 `json:"montant"`
	Method        string  `json:"modePaiement" gorm:"type:varchar(30)"`
	ReceivedByID  *uint   `json:"receivedById"`
}
