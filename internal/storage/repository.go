package storage

import (
	"context"
	"time"

	"nextcut/internal/geo"
	"nextcut/internal/models"
)

// UsersRepository persists customers.
type UsersRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
}

// BarbersRepository persists providers and serves the nearby search.
type BarbersRepository interface {
	CreateBarber(ctx context.Context, barber *models.Barber) error
	GetBarberByID(ctx context.Context, id uint) (*models.Barber, error)
	GetBarberByUsername(ctx context.Context, username string) (*models.Barber, error)
	// FindBarbersInBox returns barbers whose coordinate lies inside box
	// (inclusive) with QueueEntries loaded in queue order.
	FindBarbersInBox(ctx context.Context, box geo.Box) ([]models.Barber, error)
}

// QueueRepository owns QueueEntry rows and the user flags mirroring them.
// Every mutating method runs in a single transaction.
type QueueRepository interface {
	Join(ctx context.Context, userID, barberID uint, service models.ServiceType) (*JoinResult, error)
	Leave(ctx context.Context, userID uint) (*LeaveResult, error)
	RemoveByBarber(ctx context.Context, barberID, userID uint) (*LeaveResult, error)
	ListQueue(ctx context.Context, barberID uint) ([]models.QueueEntry, error)
	// GetEntryByUser returns the user's entry with Barber loaded, or nil.
	GetEntryByUser(ctx context.Context, userID uint) (*models.QueueEntry, error)
	Position(ctx context.Context, entry *models.QueueEntry) (int, error)
	EntriesAhead(ctx context.Context, entry *models.QueueEntry) ([]models.QueueEntry, error)
	PruneOlderThan(ctx context.Context, cutoff time.Time) ([]models.QueueEntry, error)
}

// JoinResult is the outcome of a committed join.
type JoinResult struct {
	Entry *models.QueueEntry

	// PreviousBarberID is set when the join moved the user out of another
	// barber's queue.
	PreviousBarberID *uint

	// AlreadyQueued is true when the user was already in this barber's queue
	// and the existing entry was returned untouched.
	AlreadyQueued bool
}

// Reasons reported by unsuccessful leave/remove calls.
const (
	ReasonNotInAnyQueue     = "not in any queue"
	ReasonNotInBarbersQueue = "user not in this barber's queue"
)

// LeaveResult reports whether a leave or remove deleted anything. A miss is
// an expected outcome, not an error.
type LeaveResult struct {
	Success     bool
	Reason      string
	Entry       *models.QueueEntry
	RemovedFrom *models.Barber
	RemovedAt   time.Time
}
