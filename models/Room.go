package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room statuses (StatutChambre on the wire)
const (
	RoomAvailable   = "DISPONIBLE"
	RoomOccupied    = "OCCUPEE"
	RoomReserved    = "RESERVEE"
	RoomCleaning    = "EN_NETTOYAGE"
	RoomMaintenance = "EN_MAINTENANCE"
	RoomOutOfOrder  = "HORS_SERVICE"
)

// Room types (TypeChambre on the wire)
const (
	RoomTypeSimple            = "SIMPLE"
	RoomTypeDouble            = "DOUBLE"
	RoomTypeTwin              = "TWIN"
	RoomTypeTriple            = "TRIPLE"
	RoomTypeSuite             = "SUITE"
	RoomTypeSuiteJunior       = "SUITE_JUNIOR"
	RoomTypeSuitePresidential = "SUITE_PRESIDENTIELLE"
	RoomTypeFamily            = "FAMILIALE"
	RoomTypeDeluxe            = "DELUXE"
)

// Room is a bookable unit. The wire format keeps the field names of the
// existing back-office API (chambres).
type Room struct {
	gorm.Model
	Number       string  `json:"numero" gorm:"uniqueIndex;not null"`
	Type         string  `json:"type" gorm:"type:varchar(30);default:'SIMPLE'"`
	NightlyPrice float64 `json:"prixParNuit"`
	Capacity     int     `json:"capacite"`
	Area         float64 `json:"superficie"`
	Description  string  `json:"description" gorm:"type:text"`
	Status       string  `json:"statut" gorm:"type:varchar(20);default:'DISPONIBLE';index"`
	Floor        int     `json:"etage"`

	Wifi            bool `json:"wifi"`
	AirConditioning bool `json:"climatisation"`
	Television      bool `json:"television"`
	Minibar         bool `json:"minibar"`
	Safe            bool `json:"coffre"`
	Balcony         bool `json:"balcon"`
	SeaView         bool `json:"vueMer"`

	Images datatypes.JSON `json:"images" gorm:"type:jsonb"`
}
