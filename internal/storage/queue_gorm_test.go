package storage_test

import (
	"context"
	"testing"
	"time"

	"nextcut/internal/apperr"
	"nextcut/internal/geo"
	"nextcut/internal/models"
	"nextcut/internal/storage"
	"nextcut/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	clock   *storagetest.Clock
	users   storage.UsersRepository
	barbers storage.BarbersRepository
	queue   storage.QueueRepository
}

func newFixture(t *testing.T) *fixture {
	db := storagetest.NewDB(t)
	clock := storagetest.NewClock()
	return &fixture{
		db:      db,
		clock:   clock,
		users:   storage.NewUsersRepository(db),
		barbers: storage.NewBarbersRepository(db),
		queue:   storage.NewQueueRepository(db, storage.WithClock(clock.Now)),
	}
}

func (f *fixture) user(t *testing.T, name string) *models.User {
	email := name + "@example.com"
	u := &models.User{Name: name, Email: &email, PasswordHash: "x"}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) barber(t *testing.T, username string, lat, long float64) *models.Barber {
	b := &models.Barber{Name: username, Username: username, PasswordHash: "x", Lat: lat, Long: long}
	require.NoError(t, f.barbers.CreateBarber(context.Background(), b))
	return b
}

func (f *fixture) reload(t *testing.T, id uint) *models.User {
	u, err := f.users.GetUserByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

func (f *fixture) entryCount(t *testing.T, userID uint) int64 {
	var n int64
	require.NoError(t, f.db.Model(&models.QueueEntry{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

func TestJoin_CreatesEntryAndSetsFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ann")
	b := f.barber(t, "bob", 0, 0)

	res, err := f.queue.Join(ctx, u.ID, b.ID, models.ServiceBeard)
	require.NoError(t, err)
	assert.False(t, res.AlreadyQueued)
	assert.Nil(t, res.PreviousBarberID)
	assert.Equal(t, b.ID, res.Entry.BarberID)
	assert.Equal(t, "ann", res.Entry.User.Name)
	assert.Equal(t, "bob", res.Entry.Barber.Name)
	assert.Equal(t, models.ServiceBeard, res.Entry.Service)

	got := f.reload(t, u.ID)
	assert.True(t, got.InQueue)
	require.NotNil(t, got.QueuedBarberID)
	assert.Equal(t, b.ID, *got.QueuedBarberID)
}

func TestJoin_TransfersBetweenBarbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ann")
	b1 := f.barber(t, "one", 0, 0)
	b2 := f.barber(t, "two", 0, 0)

	_, err := f.queue.Join(ctx, u.ID, b1.ID, "")
	require.NoError(t, err)
	res, err := f.queue.Join(ctx, u.ID, b2.ID, "")
	require.NoError(t, err)

	require.NotNil(t, res.PreviousBarberID)
	assert.Equal(t, b1.ID, *res.PreviousBarberID)
	assert.EqualValues(t, 1, f.entryCount(t, u.ID))

	entry, err := f.queue.GetEntryByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, b2.ID, entry.BarberID)
	assert.Equal(t, b2.ID, *f.reload(t, u.ID).QueuedBarberID)
}

func TestJoin_SameBarberKeepsPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ann")
	b := f.barber(t, "bob", 0, 0)

	first, err := f.queue.Join(ctx, u.ID, b.ID, models.ServiceHaircut)
	require.NoError(t, err)
	again, err := f.queue.Join(ctx, u.ID, b.ID, models.ServiceBeard)
	require.NoError(t, err)

	assert.True(t, again.AlreadyQueued)
	assert.Equal(t, first.Entry.ID, again.Entry.ID)
	assert.Equal(t, models.ServiceHaircut, again.Entry.Service)
	assert.EqualValues(t, 1, f.entryCount(t, u.ID))
}

func TestJoin_UnknownBarber(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ann")

	_, err := f.queue.Join(context.Background(), u.ID, 999, "")
	require.Error(t, err)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	assert.False(t, f.reload(t, u.ID).InQueue)
	assert.EqualValues(t, 0, f.entryCount(t, u.ID))
}

func TestLeave_RestoresUserState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ann")
	b := f.barber(t, "bob", 0, 0)

	_, err := f.queue.Join(ctx, u.ID, b.ID, "")
	require.NoError(t, err)

	res, err := f.queue.Leave(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.RemovedFrom)
	assert.Equal(t, "bob", res.RemovedFrom.Name)

	got := f.reload(t, u.ID)
	assert.False(t, got.InQueue)
	assert.Nil(t, got.QueuedBarberID)
	assert.EqualValues(t, 0, f.entryCount(t, u.ID))
}

func TestLeave_NotQueued(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ann")

	res, err := f.queue.Leave(context.Background(), u.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, storage.ReasonNotInAnyQueue, res.Reason)
}

func TestRemoveByBarber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.user(t, "ann")
	b1 := f.barber(t, "one", 0, 0)
	b2 := f.barber(t, "two", 0, 0)

	_, err := f.queue.Join(ctx, u.ID, b1.ID, "")
	require.NoError(t, err)

	res, err := f.queue.RemoveByBarber(ctx, b2.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, storage.ReasonNotInBarbersQueue, res.Reason)
	assert.EqualValues(t, 1, f.entryCount(t, u.ID))

	res, err = f.queue.RemoveByBarber(ctx, b1.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, f.reload(t, u.ID).InQueue)

	res, err = f.queue.RemoveByBarber(ctx, b1.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
}

func TestListQueueAndPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.barber(t, "bob", 0, 0)
	a := f.user(t, "a")
	bb := f.user(t, "b")
	c := f.user(t, "c")

	var entries []*models.QueueEntry
	for _, u := range []*models.User{a, bb, c} {
		res, err := f.queue.Join(ctx, u.ID, b.ID, "")
		require.NoError(t, err)
		entries = append(entries, res.Entry)
	}

	list, err := f.queue.ListQueue(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].User.Name, list[1].User.Name, list[2].User.Name})

	for i, e := range entries {
		pos, err := f.queue.Position(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, i+1, pos)

		ahead, err := f.queue.EntriesAhead(ctx, e)
		require.NoError(t, err)
		assert.Len(t, ahead, i)
	}

	_, err = f.queue.ListQueue(ctx, 999)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestPosition_TieBrokenByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	queue := storage.NewQueueRepository(f.db, storage.WithClock(func() time.Time { return same }))
	b := f.barber(t, "bob", 0, 0)

	first, err := queue.Join(ctx, f.user(t, "a").ID, b.ID, "")
	require.NoError(t, err)
	second, err := queue.Join(ctx, f.user(t, "b").ID, b.ID, "")
	require.NoError(t, err)

	p1, err := queue.Position(ctx, first.Entry)
	require.NoError(t, err)
	p2, err := queue.Position(ctx, second.Entry)
	require.NoError(t, err)
	assert.Equal(t, 1, p1)
	assert.Equal(t, 2, p2)
}

func TestPruneOlderThan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.barber(t, "bob", 0, 0)
	old := f.user(t, "old")
	fresh := f.user(t, "fresh")

	_, err := f.queue.Join(ctx, old.ID, b.ID, "")
	require.NoError(t, err)
	cutoff := f.clock.Now()
	_, err = f.queue.Join(ctx, fresh.ID, b.ID, "")
	require.NoError(t, err)

	pruned, err := f.queue.PruneOlderThan(ctx, cutoff)
	require.NoError(t, err)
	require.Len(t, pruned, 1)
	assert.Equal(t, old.ID, pruned[0].UserID)

	assert.False(t, f.reload(t, old.ID).InQueue)
	assert.True(t, f.reload(t, fresh.ID).InQueue)
	assert.EqualValues(t, 0, f.entryCount(t, old.ID))
}

func TestFindBarbersInBox(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	near := f.barber(t, "near", 0.01, 0)
	f.barber(t, "far", 1, 0)

	u := f.user(t, "ann")
	_, err := f.queue.Join(ctx, u.ID, near.ID, models.ServiceBeard)
	require.NoError(t, err)

	found, err := f.barbers.FindBarbersInBox(ctx, geo.BoundingBox(0, 0, 5))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "near", found[0].Username)
	require.Len(t, found[0].QueueEntries, 1)
	assert.Equal(t, models.ServiceBeard, found[0].QueueEntries[0].Service)

	// At the pole the longitude bounds are ignored rather than rejecting everything.
	f.barber(t, "pole", 89.99, 120)
	found, err = f.barbers.FindBarbersInBox(ctx, geo.BoundingBox(90, 0, 5))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "pole", found[0].Username)
}

func TestCreateUser_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.user(t, "ann")

	email := "ann@example.com"
	err := f.users.CreateUser(context.Background(), &models.User{Name: "other", Email: &email})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

func TestCreateBarber_DuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.barber(t, "bob", 0, 0)

	err := f.barbers.CreateBarber(context.Background(), &models.Barber{Name: "b", Username: "bob", PasswordHash: "x"})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
}

// moveBeforeDelete registers a callback that, on the first delete, replaces
// userID's entry with one at barberID the way a concurrent transfer would.
func (f *fixture) moveBeforeDelete(t *testing.T, userID, barberID uint) {
	fired := false
	err := f.db.Callback().Delete().Before("gorm:delete").Register("test:concurrent_transfer", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		s := tx.Session(&gorm.Session{NewDB: true})
		require.NoError(t, s.Exec("DELETE FROM queue_entries WHERE user_id = ?", userID).Error)
		require.NoError(t, s.Omit("User", "Barber").Create(&models.QueueEntry{UserID: userID, BarberID: barberID, EnteredAt: f.clock.Now()}).Error)
		require.NoError(t, s.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{"in_queue": true, "queued_barber_id": barberID}).Error)
	})
	require.NoError(t, err)
}

func (f *fixture) assertQueuedAt(t *testing.T, userID, barberID uint) {
	assert.EqualValues(t, 1, f.entryCount(t, userID))
	got := f.reload(t, userID)
	assert.True(t, got.InQueue)
	require.NotNil(t, got.QueuedBarberID)
	assert.Equal(t, barberID, *got.QueuedBarberID)
}

func TestPruneOlderThan_KeepsFlagsOfReplacedEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.barber(t, "one", 0, 0)
	b2 := f.barber(t, "two", 0, 0)
	u := f.user(t, "ann")

	_, err := f.queue.Join(ctx, u.ID, b1.ID, "")
	require.NoError(t, err)
	cutoff := f.clock.Now()
	f.moveBeforeDelete(t, u.ID, b2.ID)

	pruned, err := f.queue.PruneOlderThan(ctx, cutoff)
	require.NoError(t, err)
	assert.Empty(t, pruned)
	f.assertQueuedAt(t, u.ID, b2.ID)
}

func TestLeave_KeepsFlagsOfReplacedEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.barber(t, "one", 0, 0)
	b2 := f.barber(t, "two", 0, 0)
	u := f.user(t, "ann")

	_, err := f.queue.Join(ctx, u.ID, b1.ID, "")
	require.NoError(t, err)
	f.moveBeforeDelete(t, u.ID, b2.ID)

	res, err := f.queue.Leave(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, storage.ReasonNotInAnyQueue, res.Reason)
	f.assertQueuedAt(t, u.ID, b2.ID)
}

func TestRemoveByBarber_KeepsFlagsOfReplacedEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.barber(t, "one", 0, 0)
	b2 := f.barber(t, "two", 0, 0)
	u := f.user(t, "ann")

	_, err := f.queue.Join(ctx, u.ID, b1.ID, "")
	require.NoError(t, err)
	f.moveBeforeDelete(t, u.ID, b2.ID)

	res, err := f.queue.RemoveByBarber(ctx, b1.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, storage.ReasonNotInBarbersQueue, res.Reason)
	f.assertQueuedAt(t, u.ID, b2.ID)
}
