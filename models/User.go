package models

import (
	"gorm.io/gorm"
)

// User is a staff account for the back office.
type User struct {
	gorm.Model
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Password  string `json:"-"`
	Phone     string `json:"telephone"`
	Role      string `json:"role" gorm:"type:varchar(20);default:staff;index"` // staff, manager, admin
}
