// Package queue implements the walk-in queue operations and the nearby
// barber search on top of the storage repositories.
package queue

import (
	"context"
	"log"
	"math"
	"sort"
	"time"

	"nextcut/internal/apperr"
	"nextcut/internal/events"
	"nextcut/internal/geo"
	"nextcut/internal/models"
	"nextcut/internal/storage"
)

// Service coordinates queue mutations with event publication. Events go out
// only after the storage transaction has committed.
type Service struct {
	barbers storage.BarbersRepository
	queue   storage.QueueRepository
	events  events.Publisher
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used for pruning cutoffs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(barbers storage.BarbersRepository, queue storage.QueueRepository, pub events.Publisher, opts ...Option) *Service {
	if pub == nil {
		pub = events.Discard{}
	}
	s := &Service{barbers: barbers, queue: queue, events: pub, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary is the id and name of a user or barber.
type Summary struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Alex"`
}

// Entry is a queue entry as returned to clients.
type Entry struct {
	ID        uint               `json:"id" example:"12"`
	BarberID  uint               `json:"barberId" example:"3"`
	UserID    uint               `json:"userId" example:"7"`
	EnteredAt time.Time          `json:"enteredAt"`
	Service   models.ServiceType `json:"service,omitempty" example:"haircut"`
	User      Summary            `json:"user"`
	Barber    Summary            `json:"barber"`
}

func newEntry(e *models.QueueEntry) Entry {
	return Entry{
		ID:        e.ID,
		BarberID:  e.BarberID,
		UserID:    e.UserID,
		EnteredAt: e.EnteredAt,
		Service:   e.Service,
		User:      Summary{ID: e.User.ID, Name: e.User.Name},
		Barber:    Summary{ID: e.Barber.ID, Name: e.Barber.Name},
	}
}

// JoinOutcome describes a committed join.
type JoinOutcome struct {
	Entry         Entry `json:"entry"`
	Position      int   `json:"position" example:"2"`
	AlreadyQueued bool  `json:"alreadyQueued"`

	// PreviousBarberID is set when the join moved the user from another queue.
	PreviousBarberID *uint `json:"previousBarberId,omitempty"`
}

// Join puts userID in barberID's queue, leaving any other queue first.
func (s *Service) Join(ctx context.Context, userID, barberID uint, service models.ServiceType) (*JoinOutcome, error) {
	if barberID == 0 {
		return nil, apperr.Invalid("VALIDATION_ERROR", "barberId is required")
	}
	if !service.Valid() {
		return nil, apperr.Invalid("VALIDATION_ERROR", "service must be one of haircut, beard, haircut+beard")
	}

	res, err := s.queue.Join(ctx, userID, barberID, service)
	if err != nil {
		return nil, err
	}
	pos, err := s.queue.Position(ctx, res.Entry)
	if err != nil {
		return nil, err
	}

	out := &JoinOutcome{
		Entry:            newEntry(res.Entry),
		Position:         pos,
		AlreadyQueued:    res.AlreadyQueued,
		PreviousBarberID: res.PreviousBarberID,
	}
	if res.AlreadyQueued {
		return out, nil
	}
	if res.PreviousBarberID != nil {
		s.publish(ctx, events.UserLeft, *res.PreviousBarberID, map[string]interface{}{
			"user_id":     userID,
			"transferred": true,
		})
	}
	s.publish(ctx, events.UserJoined, barberID, map[string]interface{}{
		"user_id":  userID,
		"position": pos,
		"service":  res.Entry.Service,
	})
	return out, nil
}

// LeaveOutcome reports a leave or remove. Success is false with a Reason
// when there was nothing to remove.
type LeaveOutcome struct {
	Success     bool       `json:"success"`
	Reason      string     `json:"reason,omitempty"`
	RemovedFrom *Summary   `json:"removedFrom,omitempty"`
	RemovedAt   *time.Time `json:"removedAt,omitempty"`
	UserID      uint       `json:"userId,omitempty"`
}

func newLeaveOutcome(res *storage.LeaveResult) *LeaveOutcome {
	out := &LeaveOutcome{Success: res.Success, Reason: res.Reason}
	if res.Success {
		out.RemovedFrom = &Summary{ID: res.RemovedFrom.ID, Name: res.RemovedFrom.Name}
		removedAt := res.RemovedAt
		out.RemovedAt = &removedAt
		out.UserID = res.Entry.UserID
	}
	return out
}

func (s *Service) Leave(ctx context.Context, userID uint) (*LeaveOutcome, error) {
	res, err := s.queue.Leave(ctx, userID)
	if err != nil {
		return nil, err
	}
	if res.Success {
		s.publish(ctx, events.UserLeft, res.Entry.BarberID, map[string]interface{}{"user_id": userID})
	}
	return newLeaveOutcome(res), nil
}

// RemoveUser drops userID from barberID's queue on the barber's behalf.
func (s *Service) RemoveUser(ctx context.Context, barberID, userID uint) (*LeaveOutcome, error) {
	if userID == 0 {
		return nil, apperr.Invalid("VALIDATION_ERROR", "userId is required")
	}
	res, err := s.queue.RemoveByBarber(ctx, barberID, userID)
	if err != nil {
		return nil, err
	}
	if res.Success {
		s.publish(ctx, events.UserRemoved, barberID, map[string]interface{}{"user_id": userID})
	}
	return newLeaveOutcome(res), nil
}

// QueuedCustomer is one row of a barber's queue view.
type QueuedCustomer struct {
	Position  int                `json:"position" example:"1"`
	QueueID   uint               `json:"queueId" example:"12"`
	User      Summary            `json:"user"`
	EnteredAt time.Time          `json:"enteredAt"`
	Service   models.ServiceType `json:"service,omitempty" example:"beard"`
}

// ListQueue returns barberID's queue with positions 1..N.
func (s *Service) ListQueue(ctx context.Context, barberID uint) ([]QueuedCustomer, error) {
	entries, err := s.queue.ListQueue(ctx, barberID)
	if err != nil {
		return nil, err
	}
	out := make([]QueuedCustomer, 0, len(entries))
	for i, e := range entries {
		out = append(out, QueuedCustomer{
			Position:  i + 1,
			QueueID:   e.ID,
			User:      Summary{ID: e.User.ID, Name: e.User.Name},
			EnteredAt: e.EnteredAt,
			Service:   e.Service,
		})
	}
	return out, nil
}

// Status is a user's view of their own place. Pointer fields are null when
// the user is not queued.
type Status struct {
	InQueue           bool               `json:"inQueue"`
	QueuePosition     *int               `json:"queuePosition"`
	Barber            *Summary           `json:"barber"`
	EnteredAt         *time.Time         `json:"enteredAt"`
	Service           models.ServiceType `json:"service,omitempty"`
	EstimatedWaitTime *int               `json:"estimatedWaitTime"`
}

func (s *Service) Status(ctx context.Context, userID uint) (*Status, error) {
	entry, err := s.queue.GetEntryByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &Status{}, nil
	}

	pos, err := s.queue.Position(ctx, entry)
	if err != nil {
		return nil, err
	}
	ahead, err := s.queue.EntriesAhead(ctx, entry)
	if err != nil {
		return nil, err
	}
	wait := EstimateWait(ahead)
	enteredAt := entry.EnteredAt

	return &Status{
		InQueue:           true,
		QueuePosition:     &pos,
		Barber:            &Summary{ID: entry.Barber.ID, Name: entry.Barber.Name},
		EnteredAt:         &enteredAt,
		Service:           entry.Service,
		EstimatedWaitTime: &wait,
	}, nil
}

// NearbyBarber is a search hit annotated with its live queue.
type NearbyBarber struct {
	ID                uint    `json:"id" example:"3"`
	Name              string  `json:"name" example:"Sam's Cuts"`
	Lat               float64 `json:"lat" example:"52.52"`
	Long              float64 `json:"long" example:"13.405"`
	DistanceKm        float64 `json:"distanceKm" example:"1.12"`
	QueueLength       int     `json:"queueLength" example:"2"`
	EstimatedWaitTime int     `json:"estimatedWaitTime" example:"25"`
}

// FindNearby returns barbers within radiusKm of (lat, long), nearest first.
// Candidates come from a bounding-box query and are then filtered on exact
// great-circle distance.
func (s *Service) FindNearby(ctx context.Context, lat, long, radiusKm float64) ([]NearbyBarber, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return nil, apperr.Invalid("VALIDATION_ERROR", "lat must be between -90 and 90")
	}
	if math.IsNaN(long) || long < -180 || long > 180 {
		return nil, apperr.Invalid("VALIDATION_ERROR", "long must be between -180 and 180")
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm <= 0 {
		return nil, apperr.Invalid("VALIDATION_ERROR", "radius must be a positive number of kilometers")
	}

	candidates, err := s.barbers.FindBarbersInBox(ctx, geo.BoundingBox(lat, long, radiusKm))
	if err != nil {
		return nil, err
	}

	found := make([]NearbyBarber, 0, len(candidates))
	for _, b := range candidates {
		d := geo.HaversineKm(lat, long, b.Lat, b.Long)
		if d > radiusKm {
			continue
		}
		found = append(found, NearbyBarber{
			ID:                b.ID,
			Name:              b.Name,
			Lat:               b.Lat,
			Long:              b.Long,
			DistanceKm:        d,
			QueueLength:       len(b.QueueEntries),
			EstimatedWaitTime: EstimateWait(b.QueueEntries),
		})
	}
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].DistanceKm < found[j].DistanceKm
	})
	return found, nil
}

// PruneStale removes entries older than maxAge and reports how many went.
func (s *Service) PruneStale(ctx context.Context, maxAge time.Duration) (int, error) {
	pruned, err := s.queue.PruneOlderThan(ctx, s.now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	for _, e := range pruned {
		s.publish(ctx, events.EntryExpired, e.BarberID, map[string]interface{}{
			"user_id":    e.UserID,
			"entered_at": e.EnteredAt,
		})
	}
	return len(pruned), nil
}

func (s *Service) publish(ctx context.Context, t events.Type, barberID uint, data map[string]interface{}) {
	if err := s.events.Publish(ctx, events.Event{EventType: t, BarberID: barberID, Data: data}); err != nil {
		log.Printf("publish %s for barber %d: %v", t, barberID, err)
	}
}
