// Package storagetest provides an in-memory database and a stepping clock
// for tests that exercise the gorm repositories.
package storagetest

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"nextcut/internal/storage"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	db, err := storage.Open(sqlite.Open(dsn), false)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("test db pool: %v", err)
	}
	// One connection keeps the shared in-memory database alive and
	// serializes transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Clock returns strictly increasing times one minute apart.
type Clock struct {
	mu  sync.Mutex
	cur time.Time
}

func NewClock() *Clock {
	return &Clock{cur: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Minute)
	return c.cur
}
