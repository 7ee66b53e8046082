// Package store holds the in-memory catalog and account store.
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"cinemacompanion/internal/content"
	"cinemacompanion/internal/user"
)

var (
	_ content.Repository = (*Memory)(nil)
	_ user.Repository    = (*Memory)(nil)
)

// Memory implements content.Repository and user.Repository. Ids are
// sequential from 1 and never reused, so records are kept in slices indexed
// by id-1. Returned values never alias stored state.
type Memory struct {
	mu    sync.RWMutex
	items []content.Item
	users []user.User
	now   func() time.Time
}

func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

func (m *Memory) Create(ctx context.Context, in content.NewItem) (content.Item, error) {
	if err := in.Validate(); err != nil {
		return content.Item{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item := cloneItem(in.Build(int64(len(m.items) + 1)))
	m.items = append(m.items, item)
	return cloneItem(item), nil
}

func (m *Memory) GetByID(ctx context.Context, id int64) (content.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 1 || id > int64(len(m.items)) {
		return content.Item{}, content.ErrNotFound
	}
	return cloneItem(m.items[id-1]), nil
}

func (m *Memory) List(ctx context.Context) ([]content.Item, error) {
	return m.collect(func(content.Item) bool { return true }), nil
}

func (m *Memory) ListByKind(ctx context.Context, kind content.Kind) ([]content.Item, error) {
	return m.collect(func(item content.Item) bool { return item.Kind == kind }), nil
}

// Search matches query case-insensitively against title, description and genre.
func (m *Memory) Search(ctx context.Context, query string) ([]content.Item, error) {
	lower := strings.ToLower(query)
	return m.collect(func(item content.Item) bool { return item.Matches(lower) }), nil
}

func (m *Memory) collect(keep func(content.Item) bool) []content.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]content.Item, 0, len(m.items))
	for _, item := range m.items {
		if keep(item) {
			out = append(out, cloneItem(item))
		}
	}
	return out
}

func (m *Memory) CreateUser(ctx context.Context, in user.NewUser) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == in.Email {
			return user.User{}, user.ErrEmailTaken
		}
	}
	for _, u := range m.users {
		if u.Username == in.Username {
			return user.User{}, user.ErrUsernameTaken
		}
	}

	u := user.User{
		ID:           int64(len(m.users) + 1),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: in.PasswordHash,
		Favorites:    []int64{},
		CreatedAt:    m.now().UTC(),
	}
	m.users = append(m.users, u)
	return u.Clone(), nil
}

func (m *Memory) GetUser(ctx context.Context, id int64) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if id < 1 || id > int64(len(m.users)) {
		return user.User{}, user.ErrNotFound
	}
	return m.users[id-1].Clone(), nil
}

// GetUserByEmail matches the email exactly.
func (m *Memory) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u.Clone(), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *Memory) SetFavorites(ctx context.Context, userID int64, ids []int64) (user.User, error) {
	favorites := user.NormalizeFavorites(ids)

	m.mu.Lock()
	defer m.mu.Unlock()

	if userID < 1 || userID > int64(len(m.users)) {
		return user.User{}, user.ErrNotFound
	}
	m.users[userID-1].Favorites = favorites
	return m.users[userID-1].Clone(), nil
}

// Ping reports readiness; the memory store is always ready.
func (m *Memory) Ping(ctx context.Context) error {
	return ctx.Err()
}

func cloneItem(item content.Item) content.Item {
	item.Director = cloneStr(item.Director)
	item.Artist = cloneStr(item.Artist)
	item.IMDbID = cloneStr(item.IMDbID)
	return item
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
