package storage

import (
	"context"
	"errors"
	"time"

	"nextcut/internal/apperr"
	"nextcut/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormQueueRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// QueueOption configures a QueueRepository.
type QueueOption func(*gormQueueRepository)

// WithClock overrides the clock stamping EnteredAt.
func WithClock(now func() time.Time) QueueOption {
	return func(r *gormQueueRepository) { r.now = now }
}

// NewQueueRepository creates a QueueRepository backed by db.
func NewQueueRepository(db *gorm.DB, opts ...QueueOption) QueueRepository {
	r := &gormQueueRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Join moves the user into barberID's queue. Any entry the user holds at
// another barber is deleted first; re-joining the same barber keeps the
// existing place.
func (r *gormQueueRepository) Join(ctx context.Context, userID, barberID uint, service models.ServiceType) (*JoinResult, error) {
	result := &JoinResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.Select("id", "name").First(&barber, barberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Missing("BARBER_NOT_FOUND", "barber not found")
			}
			return err
		}

		var user models.User
		if err := tx.Select("id", "name").First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Missing("USER_NOT_FOUND", "user not found")
			}
			return err
		}

		var existing []models.QueueEntry
		if err := tx.Clauses(forUpdate).Where("user_id = ?", userID).Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if len(existing) == 1 {
			prev := existing[0]
			if prev.BarberID == barberID {
				prev.User = user
				prev.Barber = barber
				result.Entry = &prev
				result.AlreadyQueued = true
				return nil
			}
			if err := tx.Delete(&models.QueueEntry{}, prev.ID).Error; err != nil {
				return err
			}
			result.PreviousBarberID = &prev.BarberID
		}

		entry := models.QueueEntry{
			BarberID:  barberID,
			UserID:    userID,
			EnteredAt: r.now().UTC(),
			Service:   service,
		}
		if err := tx.Omit("User", "Barber").Create(&entry).Error; err != nil {
			return err
		}

		if err := setQueueFlags(tx, []uint{userID}, &barberID); err != nil {
			return err
		}

		entry.User = user
		entry.Barber = barber
		result.Entry = &entry
		return nil
	})
	if err != nil {
		return nil, translate("Join", err)
	}
	return result, nil
}

func (r *gormQueueRepository) Leave(ctx context.Context, userID uint) (*LeaveResult, error) {
	return r.remove(ctx, userID, func(entry *models.QueueEntry) string {
		if entry == nil {
			return ReasonNotInAnyQueue
		}
		return ""
	})
}

// RemoveByBarber deletes userID's entry only if it belongs to barberID.
func (r *gormQueueRepository) RemoveByBarber(ctx context.Context, barberID, userID uint) (*LeaveResult, error) {
	return r.remove(ctx, userID, func(entry *models.QueueEntry) string {
		if entry == nil || entry.BarberID != barberID {
			return ReasonNotInBarbersQueue
		}
		return ""
	})
}

// remove deletes the user's entry and clears the flags unless check returns
// a reason to refuse.
func (r *gormQueueRepository) remove(ctx context.Context, userID uint, check func(*models.QueueEntry) string) (*LeaveResult, error) {
	result := &LeaveResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var found []models.QueueEntry
		if err := tx.Clauses(forUpdate).Preload("Barber", selectSummary).Preload("User", selectSummary).
			Where("user_id = ?", userID).Limit(1).Find(&found).Error; err != nil {
			return err
		}

		var entry *models.QueueEntry
		if len(found) == 1 {
			entry = &found[0]
		}
		if reason := check(entry); reason != "" {
			result.Reason = reason
			return nil
		}

		del := tx.Delete(&models.QueueEntry{}, entry.ID)
		if del.Error != nil {
			return del.Error
		}
		// A concurrent join already replaced the entry; its flags stay.
		if del.RowsAffected == 0 {
			result.Reason = check(nil)
			return nil
		}
		if err := setQueueFlags(tx, []uint{userID}, nil); err != nil {
			return err
		}

		result.Success = true
		result.Entry = entry
		result.RemovedFrom = &entry.Barber
		result.RemovedAt = r.now().UTC()
		return nil
	})
	if err != nil {
		return nil, translate("remove", err)
	}
	return result, nil
}

// ListQueue returns the barber's entries in queue order with User loaded.
func (r *gormQueueRepository) ListQueue(ctx context.Context, barberID uint) ([]models.QueueEntry, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Barber{}).Where("id = ?", barberID).Count(&count).Error; err != nil {
		return nil, translate("ListQueue", err)
	}
	if count == 0 {
		return nil, apperr.Missing("BARBER_NOT_FOUND", "barber not found")
	}

	var entries []models.QueueEntry
	if err := db.Preload("User", selectSummary).
		Where("barber_id = ?", barberID).
		Order("entered_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, translate("ListQueue", err)
	}
	return entries, nil
}

func (r *gormQueueRepository) GetEntryByUser(ctx context.Context, userID uint) (*models.QueueEntry, error) {
	var found []models.QueueEntry
	if err := r.db.WithContext(ctx).Preload("Barber", selectSummary).
		Where("user_id = ?", userID).Limit(1).Find(&found).Error; err != nil {
		return nil, translate("GetEntryByUser", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// Position is 1 + the number of entries ahead of entry at the same barber.
// Equal EnteredAt values are ordered by ID.
func (r *gormQueueRepository) Position(ctx context.Context, entry *models.QueueEntry) (int, error) {
	var ahead int64
	if err := r.aheadOf(r.db.WithContext(ctx).Model(&models.QueueEntry{}), entry).Count(&ahead).Error; err != nil {
		return 0, translate("Position", err)
	}
	return int(ahead) + 1, nil
}

func (r *gormQueueRepository) EntriesAhead(ctx context.Context, entry *models.QueueEntry) ([]models.QueueEntry, error) {
	var entries []models.QueueEntry
	if err := r.aheadOf(r.db.WithContext(ctx), entry).
		Order("entered_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, translate("EntriesAhead", err)
	}
	return entries, nil
}

func (r *gormQueueRepository) aheadOf(q *gorm.DB, entry *models.QueueEntry) *gorm.DB {
	return q.Where("barber_id = ? AND (entered_at < ? OR (entered_at = ? AND id < ?))",
		entry.BarberID, entry.EnteredAt, entry.EnteredAt, entry.ID)
}

// PruneOlderThan deletes every entry that entered before cutoff and clears
// the owners' flags in the same transaction. Only rows this call actually
// deleted are returned.
func (r *gormQueueRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) ([]models.QueueEntry, error) {
	var pruned []models.QueueEntry

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale []models.QueueEntry
		if err := tx.Clauses(forUpdate).Where("entered_at < ?", cutoff.UTC()).Find(&stale).Error; err != nil {
			return err
		}

		userIDs := make([]uint, 0, len(stale))
		for _, e := range stale {
			del := tx.Delete(&models.QueueEntry{}, e.ID)
			if del.Error != nil {
				return del.Error
			}
			if del.RowsAffected == 0 {
				continue
			}
			pruned = append(pruned, e)
			userIDs = append(userIDs, e.UserID)
		}
		if len(userIDs) == 0 {
			return nil
		}
		return setQueueFlags(tx, userIDs, nil)
	})
	if err != nil {
		return nil, translate("PruneOlderThan", err)
	}
	return pruned, nil
}

// setQueueFlags writes the denormalized membership columns. A nil barberID
// clears them.
func setQueueFlags(tx *gorm.DB, userIDs []uint, barberID *uint) error {
	return tx.Model(&models.User{}).
		Where("id IN ?", userIDs).
		Updates(map[string]interface{}{
			"in_queue":         barberID != nil,
			"queued_barber_id": barberID,
		}).Error
}

// forUpdate row-locks selected entries on postgres; sqlite ignores it.
var forUpdate = clause.Locking{Strength: "UPDATE"}

func selectSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}
