package repository

import (
	"fmt"
	"iter"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/google/uuid"
)

// ClientRepo is a slice-backed implementation of ClientRepository
type ClientRepo struct {
	clients []*domain.Client
	now     func() time.Time
	newID   func() string
}

// Option configures a ClientRepo
type Option func(*ClientRepo)

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(r *ClientRepo) { r.now = now }
}

// WithIDGenerator overrides the id source
func WithIDGenerator(gen func() string) Option {
	return func(r *ClientRepo) { r.newID = gen }
}

// NewClientRepo creates an empty ClientRepo
func NewClientRepo(opts ...Option) *ClientRepo {
	r := &ClientRepo{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// List returns copies of all clients in insertion order
func (r *ClientRepo) List() []*domain.Client {
	return cloneAll(r.clients)
}

// Len returns the number of stored clients
func (r *ClientRepo) Len() int {
	return len(r.clients)
}

// Add stores a copy of client with a fresh id and creation time and returns it
func (r *ClientRepo) Add(client *domain.Client) *domain.Client {
	stored := client.Clone()
	stored.ID = r.uniqueID()
	stored.CreatedAt = r.now().UTC()
	r.clients = append(r.clients, stored)
	return stored.Clone()
}

func (r *ClientRepo) uniqueID() string {
	for {
		id := r.newID()
		if r.indexOf(id) < 0 {
			return id
		}
	}
}

// Update replaces the mutable fields of the client with the given id
func (r *ClientRepo) Update(id string, patch domain.ClientPatch) (*domain.Client, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("update %s: %w", id, domain.ErrClientNotFound)
	}
	r.clients[i].Apply(patch)
	return r.clients[i].Clone(), nil
}

// Remove deletes the client with the given id. A missing id leaves the
// roster untouched and reports ErrClientNotFound.
func (r *ClientRepo) Remove(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %s: %w", id, domain.ErrClientNotFound)
	}
	r.clients = append(r.clients[:i:i], r.clients[i+1:]...)
	return nil
}

// FindByID returns a copy of the client with the given id
func (r *ClientRepo) FindByID(id string) (*domain.Client, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("find %s: %w", id, domain.ErrClientNotFound)
	}
	return r.clients[i].Clone(), nil
}

// Filter lazily yields copies of the clients matching pred. pred also sees
// a copy, never the stored record.
func (r *ClientRepo) Filter(pred func(*domain.Client) bool) iter.Seq[*domain.Client] {
	return func(yield func(*domain.Client) bool) {
		for _, c := range r.clients {
			cp := c.Clone()
			if !pred(cp) {
				continue
			}
			if !yield(cp) {
				return
			}
		}
	}
}

// Replace swaps in a new roster. Records without an id get one.
func (r *ClientRepo) Replace(clients []*domain.Client) {
	r.clients = make([]*domain.Client, 0, len(clients))
	for _, c := range clients {
		cp := c.Clone()
		if cp.ID == "" || r.indexOf(cp.ID) >= 0 {
			cp.ID = r.uniqueID()
		}
		if cp.CreatedAt.IsZero() {
			cp.CreatedAt = r.now().UTC()
		}
		r.clients = append(r.clients, cp)
	}
}

// Snapshot captures the current roster
func (r *ClientRepo) Snapshot() Snapshot {
	return Snapshot{clients: cloneAll(r.clients)}
}

// Restore rolls the roster back to s
func (r *ClientRepo) Restore(s Snapshot) {
	r.clients = cloneAll(s.clients)
}

func (r *ClientRepo) indexOf(id string) int {
	for i, c := range r.clients {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(clients []*domain.Client) []*domain.Client {
	out := make([]*domain.Client, len(clients))
	for i, c := range clients {
		out[i] = c.Clone()
	}
	return out
}
