package app

import (
	"context"
	"fmt"
	"io"

	"github.com/andy/rebancariza/internal/config"
	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/storage"
)

// State is the UI state shared by every screen.
type State struct {
	Search       string
	StatusFilter domain.Status // empty means all
	ChartWindow  int           // days
	Theme        string
	EditingID    string // client open in the edit form, empty when creating
}

// Action is an intent dispatched from the CLI or TUI.
type Action interface {
	action()
}

type (
	CreateClient struct{ Form service.ClientForm }

	// UpdateClient saves Form over the client ID, or over the client being
	// edited when ID is empty.
	UpdateClient struct {
		ID   string
		Form service.ClientForm
	}

	DeleteClient struct{ ID string }

	SetFilter struct {
		Search string
		Status domain.Status
	}

	// ChangeChartWindow selects Days, or the next window when Days is 0.
	ChangeChartWindow struct{ Days int }

	ToggleTheme struct{}
	SetTheme    struct{ Theme string }

	BeginEdit  struct{ ID string }
	CancelEdit struct{}
)

func (CreateClient) action()      {}
func (UpdateClient) action()      {}
func (DeleteClient) action()      {}
func (SetFilter) action()         {}
func (ChangeChartWindow) action() {}
func (ToggleTheme) action()       {}
func (SetTheme) action()          {}
func (BeginEdit) action()         {}
func (CancelEdit) action()        {}

// Result is what a dispatched action produced.
type Result struct {
	Client    *domain.Client     // record created, updated, deleted or opened for edit
	Form      service.ClientForm // pre-filled form for BeginEdit
	Dashboard Dashboard
}

// State returns a copy of the current UI state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Dispatch applies one action. On error the state is unchanged and no
// dashboard is returned; on success the dashboard reflects the action.
func (a *App) Dispatch(ctx context.Context, act Action) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var res Result
	switch act := act.(type) {
	case CreateClient:
		c, err := a.Clients.Save(ctx, act.Form, "")
		if err != nil {
			return Result{}, err
		}
		res.Client = c
		a.state.EditingID = ""
		a.invalidateSeries()

	case UpdateClient:
		id := act.ID
		if id == "" {
			id = a.state.EditingID
		}
		if id == "" {
			return Result{}, fmt.Errorf("no client is being edited: %w", domain.ErrClientNotFound)
		}
		c, err := a.Clients.Save(ctx, act.Form, id)
		if err != nil {
			return Result{}, err
		}
		res.Client = c
		a.state.EditingID = ""
		a.invalidateSeries()

	case DeleteClient:
		c, err := a.Clients.Delete(ctx, act.ID)
		if err != nil {
			return Result{}, err
		}
		res.Client = c
		if a.state.EditingID == act.ID {
			a.state.EditingID = ""
		}
		a.invalidateSeries()

	case SetFilter:
		if act.Status != "" && !act.Status.Valid() {
			return Result{}, fmt.Errorf("unknown status filter %q", act.Status)
		}
		a.state.Search = act.Search
		a.state.StatusFilter = act.Status

	case ChangeChartWindow:
		days := act.Days
		if days == 0 {
			days = config.NextChartWindow(a.state.ChartWindow)
		}
		if !config.ValidChartWindow(days) {
			return Result{}, fmt.Errorf("chart window must be one of %v days, got %d", config.ChartWindows, days)
		}
		a.state.ChartWindow = days
		a.Config.Chart.WindowDays = days

	case ToggleTheme:
		next := storage.ThemeDark
		if a.state.Theme == storage.ThemeDark {
			next = storage.ThemeLight
		}
		if err := a.setTheme(ctx, next); err != nil {
			return Result{}, err
		}

	case SetTheme:
		if err := a.setTheme(ctx, act.Theme); err != nil {
			return Result{}, err
		}

	case BeginEdit:
		c, err := a.Clients.Get(ctx, act.ID)
		if err != nil {
			return Result{}, err
		}
		res.Client = c
		res.Form = service.FormFromClient(c)
		a.state.EditingID = c.ID

	case CancelEdit:
		a.state.EditingID = ""

	default:
		return Result{}, fmt.Errorf("unknown action %T", act)
	}

	a.Log.Debug().Str("action", fmt.Sprintf("%T", act)).Msg("dispatched")
	res.Dashboard = a.dashboard()
	return res, nil
}

func (a *App) setTheme(ctx context.Context, theme string) error {
	if err := a.Store.SaveTheme(ctx, theme); err != nil {
		return err
	}
	a.state.Theme = theme
	a.Log.Info().Str("theme", theme).Msg("theme changed")
	return nil
}

// Seed loads the sample roster into an empty database.
func (a *App) Seed(ctx context.Context) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	n, err := a.Clients.Seed(ctx)
	if err == nil {
		a.invalidateSeries()
	}
	return n, err
}

// Reset clears the roster and the stored theme.
func (a *App) Reset(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.Clients.Reset(ctx); err != nil {
		return err
	}
	if err := a.Store.Clear(ctx); err != nil {
		return err
	}
	a.state = State{ChartWindow: a.state.ChartWindow, Theme: storage.ThemeLight}
	a.invalidateSeries()
	return nil
}

// ExportJSON writes the roster as JSON.
func (a *App) ExportJSON(ctx context.Context, w io.Writer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return storage.ExportJSON(w, a.Clients.List(ctx))
}

// ImportJSON reads a JSON roster and appends it, or replaces the current one.
func (a *App) ImportJSON(ctx context.Context, r io.Reader, replace bool) (int, error) {
	clients, err := storage.ImportJSON(r, a.Log)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	n, err := a.Clients.Import(ctx, clients, replace)
	if err == nil {
		a.invalidateSeries()
	}
	return n, err
}
