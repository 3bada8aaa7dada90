package store

import (
	"context"
	"fmt"
	"time"

	"github.com/repgenie/repgenie/internal/profile"
	"github.com/repgenie/repgenie/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// userCache caches users by email; invalidated on create.
	userCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		driver:  driver,
		profile: profile,
		userCache: cache.New(cache.Config{
			DefaultTTL:      10 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			MaxItems:        1000,
		}),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.userCache.Close()
	return s.driver.Close()
}

func userCacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	user, err := s.driver.CreateUser(ctx, create)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(ctx, userCacheKey(user.Email), user)
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, find *FindUser) (*User, error) {
	if find.Email != nil && find.ID == nil {
		if v, ok := s.userCache.Get(ctx, userCacheKey(*find.Email)); ok {
			if user, ok := v.(*User); ok {
				return user, nil
			}
		}
	}
	user, err := s.driver.GetUser(ctx, find)
	if err != nil {
		return nil, err
	}
	s.userCache.Set(ctx, userCacheKey(user.Email), user)
	return user, nil
}

func (s *Store) CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error) {
	return s.driver.CreateConversation(ctx, create)
}

func (s *Store) ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error) {
	return s.driver.ListConversations(ctx, find)
}

func (s *Store) DeleteConversations(ctx context.Context, delete *DeleteConversation) (int64, error) {
	return s.driver.DeleteConversations(ctx, delete)
}

func (s *Store) CreateCalendarEntry(ctx context.Context, create *CalendarEntry) (*CalendarEntry, error) {
	return s.driver.CreateCalendarEntry(ctx, create)
}

func (s *Store) ListCalendarEntries(ctx context.Context, find *FindCalendarEntry) ([]*CalendarEntry, error) {
	return s.driver.ListCalendarEntries(ctx, find)
}

func (s *Store) UpdateCalendarEntry(ctx context.Context, update *UpdateCalendarEntry) (*CalendarEntry, error) {
	return s.driver.UpdateCalendarEntry(ctx, update)
}

func (s *Store) DeleteCalendarEntry(ctx context.Context, delete *DeleteCalendarEntry) error {
	return s.driver.DeleteCalendarEntry(ctx, delete)
}

func (s *Store) UpsertInsight(ctx context.Context, upsert *Insight) (*Insight, error) {
	return s.driver.UpsertInsight(ctx, upsert)
}

func (s *Store) GetInsight(ctx context.Context, find *FindInsight) (*Insight, error) {
	return s.driver.GetInsight(ctx, find)
}
