package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestRepo() *ClientRepo {
	n := 0
	return NewClientRepo(
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func patch(name string, fee int64, status domain.Status) domain.ClientPatch {
	return domain.ClientPatch{
		DNI:            "12345678",
		Name:           name,
		Phone:          "987654321",
		ManagementDate: domain.NewDate(2024, time.January, 15),
		PaymentDate:    domain.NewDate(2024, time.February, 15),
		MonthlyFee:     decimal.NewFromInt(fee),
		Status:         status,
	}
}

func TestAdd_AssignsIdentity(t *testing.T) {
	repo := newTestRepo()
	in := domain.NewClient(patch("Juan", 150, domain.StatusActive))

	stored := repo.Add(in)

	assert.Equal(t, "id-1", stored.ID)
	assert.Equal(t, fixedNow, stored.CreatedAt)
	assert.Empty(t, in.ID, "input record must not be mutated")

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, stored, list[0])
	assert.Equal(t, in.Patch(), list[0].Patch())
}

func TestAdd_IDsAreUnique(t *testing.T) {
	// generator repeats itself; the repo must skip ids already in use
	ids := []string{"dup", "dup", "other"}
	i := 0
	repo := NewClientRepo(WithIDGenerator(func() string {
		id := ids[i]
		i++
		return id
	}))

	a := repo.Add(domain.NewClient(patch("A", 1, domain.StatusActive)))
	b := repo.Add(domain.NewClient(patch("B", 1, domain.StatusActive)))

	assert.Equal(t, "dup", a.ID)
	assert.Equal(t, "other", b.ID)
}

func TestList_InsertionOrderAndCopies(t *testing.T) {
	repo := newTestRepo()
	repo.Add(domain.NewClient(patch("A", 1, domain.StatusActive)))
	repo.Add(domain.NewClient(patch("B", 2, domain.StatusDelinquent)))
	repo.Add(domain.NewClient(patch("C", 3, domain.StatusActive)))

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{list[0].Name, list[1].Name, list[2].Name})

	list[0].Name = "mutated"
	again, err := repo.FindByID(list[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo()
	stored := repo.Add(domain.NewClient(patch("A", 100, domain.StatusActive)))

	p := patch("A renamed", 250, domain.StatusDelinquent)
	updated, err := repo.Update(stored.ID, p)
	require.NoError(t, err)

	assert.Equal(t, stored.ID, updated.ID)
	assert.Equal(t, stored.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "A renamed", updated.Name)
	assert.True(t, updated.MonthlyFee.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, domain.StatusDelinquent, updated.Status)
	assert.Equal(t, 1, repo.Len())
}

func TestUpdate_NotFound(t *testing.T) {
	repo := newTestRepo()
	repo.Add(domain.NewClient(patch("A", 100, domain.StatusActive)))
	before := repo.List()

	_, err := repo.Update("missing", patch("X", 1, domain.StatusActive))

	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.Equal(t, before, repo.List())
}

func TestRemove(t *testing.T) {
	repo := newTestRepo()
	a := repo.Add(domain.NewClient(patch("A", 1, domain.StatusActive)))
	b := repo.Add(domain.NewClient(patch("B", 1, domain.StatusActive)))
	c := repo.Add(domain.NewClient(patch("C", 1, domain.StatusActive)))

	require.NoError(t, repo.Remove(b.ID))

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	err := repo.Remove(b.ID)
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	assert.Equal(t, 2, repo.Len())
}

func TestFilter_IsLazy(t *testing.T) {
	repo := newTestRepo()
	repo.Add(domain.NewClient(patch("A", 1, domain.StatusActive)))
	repo.Add(domain.NewClient(patch("B", 1, domain.StatusDelinquent)))
	repo.Add(domain.NewClient(patch("C", 1, domain.StatusActive)))

	calls := 0
	var first *domain.Client
	for c := range repo.Filter(func(c *domain.Client) bool {
		calls++
		return c.IsActive()
	}) {
		first = c
		break
	}

	require.NotNil(t, first)
	assert.Equal(t, "A", first.Name)
	assert.Equal(t, 1, calls)

	var names []string
	for c := range repo.Filter((*domain.Client).IsActive) {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"A", "C"}, names)
}

func TestFilter_PredicateCannotMutateRoster(t *testing.T) {
	repo := newTestRepo()
	added := repo.Add(domain.NewClient(patch("A", 1, domain.StatusActive)))

	for range repo.Filter(func(c *domain.Client) bool {
		c.ID = "zzz"
		c.Name = "changed"
		return true
	}) {
	}

	got, err := repo.FindByID(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "A", repo.List()[0].Name)
	_, err = repo.FindByID("zzz")
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestReplace_FillsMissingIdentity(t *testing.T) {
	repo := newTestRepo()
	repo.Replace([]*domain.Client{
		{ID: "1", Name: "kept"},
		{Name: "no id"},
		{ID: "1", Name: "duplicate"},
	})

	list := repo.List()
	require.Len(t, list, 3)
	assert.Equal(t, "1", list[0].ID)
	assert.NotEmpty(t, list[1].ID)
	assert.NotEqual(t, "1", list[2].ID)
	assert.Equal(t, fixedNow, list[1].CreatedAt)
}

func TestSnapshotRestore(t *testing.T) {
	repo := newTestRepo()
	a := repo.Add(domain.NewClient(patch("A", 1, domain.StatusActive)))
	snap := repo.Snapshot()

	_, err := repo.Update(a.ID, patch("changed", 9, domain.StatusDelinquent))
	require.NoError(t, err)
	repo.Add(domain.NewClient(patch("B", 1, domain.StatusActive)))

	repo.Restore(snap)

	list := repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, "A", list[0].Name)
}
