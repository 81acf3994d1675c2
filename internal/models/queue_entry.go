package models

import (
	"time"
)

// QueueEntry is one user's place in one barber's queue. Rows are hard-deleted
// when the user leaves, so the unique index on UserID holds at all times.
type QueueEntry struct {
	// ID is auto-incrementing and breaks ties between equal EnteredAt values.
	ID        uint        `gorm:"primarykey"`
	BarberID  uint        `gorm:"not null;index:idx_queue_entries_barber_entered,priority:1"`
	Barber    Barber      `gorm:"foreignKey:BarberID"`
	UserID    uint        `gorm:"not null;uniqueIndex"`
	User      User        `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	EnteredAt time.Time   `gorm:"not null;index:idx_queue_entries_barber_entered,priority:2"`
	Service   ServiceType `gorm:"type:varchar(32)"`
}

// All lists the models for AutoMigrate in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Barber{}, &QueueEntry{}}
}
