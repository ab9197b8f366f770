package repository

import (
	"iter"

	"github.com/andy/rebancariza/internal/domain"
)

// ClientRepository is the in-memory roster every other component reads from.
// Records are kept in insertion order.
type ClientRepository interface {
	List() []*domain.Client
	Len() int
	Add(client *domain.Client) *domain.Client
	Update(id string, patch domain.ClientPatch) (*domain.Client, error)
	Remove(id string) error
	FindByID(id string) (*domain.Client, error)
	Filter(pred func(*domain.Client) bool) iter.Seq[*domain.Client]

	// Replace swaps the whole roster, e.g. after loading from storage.
	Replace(clients []*domain.Client)
	Snapshot() Snapshot
	Restore(s Snapshot)
}

// Snapshot is an opaque copy of the roster used to undo a mutation whose
// write-through failed.
type Snapshot struct {
	clients []*domain.Client
}
