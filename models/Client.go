package models

import (
	"gorm.io/gorm"
)

// Client is a hotel guest on file.
type Client struct {
	gorm.Model
	FirstName   string `json:"prenom"`
	LastName    string `json:"nom"`
	Email       string `json:"email"`
	Phone       string `json:"telephone"`
	IDDocument  string `json:"pieceIdentite"`
	IDType      string `json:"typePiece"`
	Nationality string `json:"nationalite"`
	Address     string `json:"adresse"`
	City        string `json:"ville"`
	Country     string `json:"pays"`
	Notes       string `json:"notes" gorm:"type:text"`
}
