package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ClientStore is the persistence the client service writes through to
type ClientStore interface {
	LoadClients(ctx context.Context) ([]*domain.Client, error)
	SaveClients(ctx context.Context, clients []*domain.Client) error
}

// ClientService validates form input and applies it to the roster. Every
// mutation is written through before it returns; a failed write rolls the
// roster back.
type ClientService interface {
	Load(ctx context.Context) error
	List(ctx context.Context) []*domain.Client
	Filter(ctx context.Context, pred func(*domain.Client) bool) []*domain.Client
	Get(ctx context.Context, id string) (*domain.Client, error)

	// Save creates a client when editingID is empty and updates it otherwise
	Save(ctx context.Context, form ClientForm, editingID string) (*domain.Client, error)
	Delete(ctx context.Context, id string) (*domain.Client, error)

	Import(ctx context.Context, clients []*domain.Client, replace bool) (int, error)
	Seed(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

type clientService struct {
	repo  repository.ClientRepository
	store ClientStore
	log   zerolog.Logger
}

// NewClientService creates a new client service
func NewClientService(repo repository.ClientRepository, store ClientStore, log zerolog.Logger) ClientService {
	return &clientService{
		repo:  repo,
		store: store,
		log:   log.With().Str("component", "clients").Logger(),
	}
}

func (s *clientService) Load(ctx context.Context) error {
	clients, err := s.store.LoadClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}
	s.repo.Replace(clients)
	s.log.Info().Int("count", len(clients)).Msg("client roster loaded")
	return nil
}

func (s *clientService) List(ctx context.Context) []*domain.Client {
	return s.repo.List()
}

func (s *clientService) Filter(ctx context.Context, pred func(*domain.Client) bool) []*domain.Client {
	return slices.Collect(s.repo.Filter(pred))
}

func (s *clientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(id)
}

func (s *clientService) Save(ctx context.Context, form ClientForm, editingID string) (*domain.Client, error) {
	patch, err := form.Parse()
	if err != nil {
		return nil, err
	}

	var saved *domain.Client
	err = s.mutate(ctx, func() error {
		if editingID == "" {
			saved = s.repo.Add(domain.NewClient(patch))
			return nil
		}
		saved, err = s.repo.Update(editingID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	action := "update"
	if editingID == "" {
		action = "create"
	}
	s.log.Info().Str("action", action).Str("client_id", saved.ID).Msg("client saved")
	return saved, nil
}

func (s *clientService) Delete(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.mutate(ctx, func() error { return s.repo.Remove(id) }); err != nil {
		return nil, err
	}
	s.log.Info().Str("action", "delete").Str("client_id", id).Msg("client deleted")
	return client, nil
}

// Import appends clients (or replaces the roster) after validating each
// record. Imported records keep their id and createdAt when present.
func (s *clientService) Import(ctx context.Context, clients []*domain.Client, replace bool) (int, error) {
	for i, c := range clients {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
	}
	err := s.mutate(ctx, func() error {
		next := clients
		if !replace {
			next = append(s.repo.List(), clients...)
		}
		s.repo.Replace(next)
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("count", len(clients)).Bool("replace", replace).Msg("clients imported")
	return len(clients), nil
}

// Seed loads the demonstration roster when no clients exist yet
func (s *clientService) Seed(ctx context.Context) (int, error) {
	if s.repo.Len() > 0 {
		return 0, nil
	}
	return s.Import(ctx, SampleClients(), true)
}

func (s *clientService) Reset(ctx context.Context) error {
	if err := s.mutate(ctx, func() error {
		s.repo.Replace(nil)
		return nil
	}); err != nil {
		return err
	}
	s.log.Warn().Msg("client roster cleared")
	return nil
}

// mutate applies fn and writes the roster through, restoring the previous
// roster if either step fails
func (s *clientService) mutate(ctx context.Context, fn func() error) error {
	snap := s.repo.Snapshot()
	if err := fn(); err != nil {
		s.repo.Restore(snap)
		return err
	}
	if err := s.store.SaveClients(ctx, s.repo.List()); err != nil {
		s.repo.Restore(snap)
		s.log.Error().Err(err).Msg("write-through failed, mutation rolled back")
		return fmt.Errorf("failed to persist clients: %w", err)
	}
	return nil
}

// SampleClients returns the demonstration roster
func SampleClients() []*domain.Client {
	created := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
	}
	return []*domain.Client{
		{
			ID:             "1",
			DNI:            "12345678",
			Name:           "Juan Pérez Rodríguez",
			Phone:          "987654321",
			Description:    "Servicio de consultoría empresarial",
			ManagementDate: domain.NewDate(2024, time.January, 15),
			PaymentDate:    domain.NewDate(2024, time.February, 15),
			MonthlyFee:     decimal.NewFromInt(150),
			Status:         domain.StatusActive,
			CreatedAt:      created(2024, time.January, 15),
		},
		{
			ID:             "2",
			DNI:            "20123456789",
			Name:           "María García López",
			Phone:          "987654322",
			Description:    "Servicios contables mensuales",
			ManagementDate: domain.NewDate(2024, time.February, 5),
			PaymentDate:    domain.NewDate(2024, time.March, 5),
			MonthlyFee:     decimal.NewFromInt(200),
			Status:         domain.StatusActive,
			CreatedAt:      created(2024, time.February, 5),
		},
		{
			ID:             "3",
			DNI:            "87654321",
			Name:           "Carlos López Mendoza",
			Phone:          "987654323",
			Description:    "Mantenimiento de sistemas",
			ManagementDate: domain.NewDate(2024, time.January, 25),
			PaymentDate:    domain.NewDate(2024, time.January, 20),
			MonthlyFee:     decimal.NewFromInt(175),
			Status:         domain.StatusDelinquent,
			CreatedAt:      created(2024, time.January, 25),
		},
	}
}
