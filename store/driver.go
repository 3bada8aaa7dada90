package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// Sentinel errors shared by all driver implementations. Drivers wrap
// these so callers can match with errors.Is regardless of backend.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// Driver is an interface for store driver.
// It contains all methods that a store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// System setting methods (schema version tracking).
	GetSystemSetting(ctx context.Context, key string) (string, error)
	UpsertSystemSetting(ctx context.Context, key, value string) error

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	GetUser(ctx context.Context, find *FindUser) (*User, error)

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
	DeleteConversations(ctx context.Context, delete *DeleteConversation) (int64, error)

	// CalendarEntry model related methods.
	CreateCalendarEntry(ctx context.Context, create *CalendarEntry) (*CalendarEntry, error)
	ListCalendarEntries(ctx context.Context, find *FindCalendarEntry) ([]*CalendarEntry, error)
	UpdateCalendarEntry(ctx context.Context, update *UpdateCalendarEntry) (*CalendarEntry, error)
	DeleteCalendarEntry(ctx context.Context, delete *DeleteCalendarEntry) error

	// Insight model related methods.
	UpsertInsight(ctx context.Context, upsert *Insight) (*Insight, error)
	GetInsight(ctx context.Context, find *FindInsight) (*Insight, error)
}
