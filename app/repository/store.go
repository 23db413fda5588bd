package repository

import (
	"sync"
	"time"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// table keeps the rows of one entity type in insertion (= id) order.
type table[T any] struct {
	nextID uint
	rows   map[uint]T
	order  []uint
}

func newTable[T any]() *table[T] {
	return &table[T]{nextID: 1, rows: make(map[uint]T)}
}

func (t *table[T]) allocate() uint {
	id := t.nextID
	t.nextID++
	return id
}

func (t *table[T]) put(id uint, row T) {
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

// each walks the rows in id order until fn returns false.
func (t *table[T]) each(fn func(row T) bool) {
	for _, id := range t.order {
		if !fn(t.rows[id]) {
			return
		}
	}
}

func (t *table[T]) len() int {
	return len(t.order)
}

// Store is the in-memory backing of all repositories. One RWMutex guards every
// table so read-modify-write sequences spanning entities (activating a
// subscription, bumping a usage counter) are atomic. Rows are stored and
// returned as copies.
type Store struct {
	mu            sync.RWMutex
	users         *table[models.User]
	servers       *table[models.Server]
	tiers         *table[models.SubscriptionTier]
	commands      *table[models.Command]
	products      *table[models.Product]
	sales         *table[models.Sale]
	subscriptions *table[models.ServerSubscription]
	settings      *table[models.BotSettings]
	now           func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for server-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.users = newTable[models.User]()
	s.servers = newTable[models.Server]()
	s.tiers = newTable[models.SubscriptionTier]()
	s.commands = newTable[models.Command]()
	s.products = newTable[models.Product]()
	s.sales = newTable[models.Sale]()
	s.subscriptions = newTable[models.ServerSubscription]()
	s.settings = newTable[models.BotSettings]()
}

// Close releases the store. Nothing is persisted, so all data is dropped.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}
