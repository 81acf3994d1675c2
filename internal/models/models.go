package models

import (
	"gorm.io/gorm"
)

// User is a customer who can wait in at most one barber's queue.
type User struct {
	gorm.Model
	Name         string  `gorm:"not null"`
	Email        *string `gorm:"uniqueIndex"`
	PhoneNumber  *string `gorm:"uniqueIndex"`
	PasswordHash string

	// InQueue and QueuedBarberID mirror the user's QueueEntry row and are
	// only written in the same transaction that creates or deletes it.
	InQueue        bool  `gorm:"not null;default:false"`
	QueuedBarberID *uint `gorm:"index"`
}

// Barber is a service provider with a fixed location.
type Barber struct {
	gorm.Model
	Name         string  `gorm:"not null"`
	Username     string  `gorm:"uniqueIndex;not null"`
	PasswordHash string  `gorm:"not null"`
	Lat          float64 `gorm:"index:idx_barbers_location,priority:1;not null"`
	Long         float64 `gorm:"column:lon;index:idx_barbers_location,priority:2;not null"`

	QueueEntries []QueueEntry `gorm:"foreignKey:BarberID;constraint:OnDelete:RESTRICT"`
}
