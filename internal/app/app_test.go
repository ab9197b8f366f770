package app

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/rebancariza/internal/config"
	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	values map[string]string
	setErr error
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

var testNow = time.Date(2024, time.March, 10, 14, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, seed bool) (*App, *memKV, *storage.Gateway) {
	t.Helper()
	ctx := context.Background()
	kv := &memKV{values: map[string]string{}}
	gw := storage.NewGateway(kv, zerolog.Nop())
	if seed {
		require.NoError(t, gw.SaveClients(ctx, service.SampleClients()))
	}

	a, err := Assemble(ctx, config.DefaultConfig(), gw, zerolog.Nop())
	require.NoError(t, err)
	a.Now = func() time.Time { return testNow }
	return a, kv, gw
}

func validForm() service.ClientForm {
	return service.ClientForm{
		DNI:            "44556677",
		Name:           "Rosa Quispe",
		Phone:          "999888777",
		ManagementDate: "2024-03-01",
		PaymentDate:    "2024-03-12",
		MonthlyFee:     "120.50",
		Status:         "active",
	}
}

func TestAssemble_LoadsStoredState(t *testing.T) {
	ctx := context.Background()
	kv := &memKV{values: map[string]string{}}
	gw := storage.NewGateway(kv, zerolog.Nop())
	require.NoError(t, gw.SaveClients(ctx, service.SampleClients()))
	require.NoError(t, gw.SaveTheme(ctx, storage.ThemeDark))

	a, err := Assemble(ctx, config.DefaultConfig(), gw, zerolog.Nop())
	require.NoError(t, err)

	d := a.Dashboard()
	assert.Len(t, d.Rows, 3)
	assert.Equal(t, storage.ThemeDark, d.State.Theme)
	assert.Equal(t, 30, d.State.ChartWindow)
	assert.Nil(t, a.Balance.Rand)
}

func TestDashboard_AlertsAndStats(t *testing.T) {
	a, _, _ := newTestApp(t, true)

	d := a.Dashboard()

	assert.Equal(t, "S/ 350.00", d.Metrics[2].Value)
	require.Len(t, d.Overdue, 2)
	assert.Equal(t, "24 days overdue", d.Overdue[0].Label)
	assert.Equal(t, "5 days overdue", d.Overdue[1].Label)
	assert.Empty(t, d.DueSoon)
	assert.Len(t, d.Series, 30)
	assert.Len(t, d.Chart, 30)
	assert.Equal(t, domain.NewDate(2024, time.March, 10), d.Today)
}

func TestDispatch_CreateClient(t *testing.T) {
	ctx := context.Background()
	a, _, gw := newTestApp(t, false)

	res, err := a.Dispatch(ctx, CreateClient{Form: validForm()})

	require.NoError(t, err)
	require.NotNil(t, res.Client)
	assert.NotEmpty(t, res.Client.ID)
	assert.Equal(t, 1, res.Dashboard.Stats.TotalClients)
	require.Len(t, res.Dashboard.DueSoon, 1)
	assert.Equal(t, "2 days left", res.Dashboard.DueSoon[0].Label)

	stored, err := gw.LoadClients(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Rosa Quispe", stored[0].Name)
}

func TestDispatch_InvalidFormLeavesRoster(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)
	form := validForm()
	form.Name = "  "

	_, err := a.Dispatch(ctx, CreateClient{Form: form})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
	assert.Equal(t, 3, a.Dashboard().Stats.TotalClients)
}

func TestDispatch_WriteFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	a, kv, _ := newTestApp(t, true)
	kv.setErr = errors.New("disk full")

	_, err := a.Dispatch(ctx, CreateClient{Form: validForm()})
	require.Error(t, err)
	_, err = a.Dispatch(ctx, DeleteClient{ID: "1"})
	require.Error(t, err)

	assert.Equal(t, 3, a.Dashboard().Stats.TotalClients)
}

func TestDispatch_EditFlow(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)

	res, err := a.Dispatch(ctx, BeginEdit{ID: "2"})
	require.NoError(t, err)
	assert.Equal(t, "2", res.Dashboard.State.EditingID)
	assert.Equal(t, "María García López", res.Form.Name)
	assert.Equal(t, "2024-03-05", res.Form.PaymentDate)

	form := res.Form
	form.Phone = "911222333"
	res, err = a.Dispatch(ctx, UpdateClient{Form: form})
	require.NoError(t, err)
	assert.Equal(t, "", res.Dashboard.State.EditingID)
	assert.Equal(t, "2", res.Client.ID)
	assert.Equal(t, "911222333", res.Client.Phone)
	assert.Len(t, res.Dashboard.Clients, 3)
}

func TestDispatch_CancelEdit(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)

	_, err := a.Dispatch(ctx, BeginEdit{ID: "1"})
	require.NoError(t, err)
	res, err := a.Dispatch(ctx, CancelEdit{})
	require.NoError(t, err)
	assert.Equal(t, "", res.Dashboard.State.EditingID)

	_, err = a.Dispatch(ctx, UpdateClient{Form: validForm()})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
}

func TestDispatch_NotFound(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)

	_, err := a.Dispatch(ctx, DeleteClient{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	_, err = a.Dispatch(ctx, UpdateClient{ID: "missing", Form: validForm()})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	_, err = a.Dispatch(ctx, BeginEdit{ID: "missing"})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	assert.Equal(t, 3, a.Dashboard().Stats.TotalClients)
}

func TestDispatch_DeleteClient(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)

	res, err := a.Dispatch(ctx, DeleteClient{ID: "3"})

	require.NoError(t, err)
	assert.Equal(t, "Carlos López Mendoza", res.Client.Name)
	assert.Equal(t, 2, res.Dashboard.Stats.TotalClients)
	assert.Equal(t, 0, res.Dashboard.Stats.DelinquentCount)
}

func TestDispatch_SetFilter(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)

	res, err := a.Dispatch(ctx, SetFilter{Search: "maria"})
	require.NoError(t, err)
	require.Len(t, res.Dashboard.Rows, 1)
	assert.Len(t, res.Dashboard.Clients, 3)

	res, err = a.Dispatch(ctx, SetFilter{Status: domain.StatusDelinquent})
	require.NoError(t, err)
	require.Len(t, res.Dashboard.Rows, 1)
	assert.Equal(t, "3", res.Dashboard.Rows[0].ID)

	_, err = a.Dispatch(ctx, SetFilter{Status: "archived"})
	assert.Error(t, err)
	assert.Equal(t, domain.StatusDelinquent, a.State().StatusFilter)
}

func TestDispatch_ChangeChartWindow(t *testing.T) {
	ctx := context.Background()
	a, _, _ := newTestApp(t, true)

	res, err := a.Dispatch(ctx, ChangeChartWindow{Days: 7})
	require.NoError(t, err)
	assert.Len(t, res.Dashboard.Series, 7)
	assert.Equal(t, 7, a.Config.Chart.WindowDays)

	res, err = a.Dispatch(ctx, ChangeChartWindow{})
	require.NoError(t, err)
	assert.Equal(t, 30, res.Dashboard.State.ChartWindow)

	res, err = a.Dispatch(ctx, ChangeChartWindow{})
	require.NoError(t, err)
	assert.Equal(t, 90, res.Dashboard.State.ChartWindow)
	assert.Len(t, res.Dashboard.Series, 30)

	_, err = a.Dispatch(ctx, ChangeChartWindow{Days: 14})
	assert.Error(t, err)
}

func TestDispatch_Theme(t *testing.T) {
	ctx := context.Background()
	a, kv, gw := newTestApp(t, false)

	res, err := a.Dispatch(ctx, ToggleTheme{})
	require.NoError(t, err)
	assert.Equal(t, storage.ThemeDark, res.Dashboard.State.Theme)
	stored, err := gw.LoadTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, storage.ThemeDark, stored)

	_, err = a.Dispatch(ctx, SetTheme{Theme: "sepia"})
	assert.Error(t, err)

	kv.setErr = errors.New("locked")
	_, err = a.Dispatch(ctx, ToggleTheme{})
	assert.Error(t, err)
	assert.Equal(t, storage.ThemeDark, a.State().Theme)
}

func TestSeedAndReset(t *testing.T) {
	ctx := context.Background()
	a, _, gw := newTestApp(t, false)

	n, err := a.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = a.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, a.Reset(ctx))
	assert.Empty(t, a.Dashboard().Clients)
	stored, err := gw.LoadClients(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestExportImportJSON(t *testing.T) {
	ctx := context.Background()
	src, _, _ := newTestApp(t, true)
	var buf bytes.Buffer
	require.NoError(t, src.ExportJSON(ctx, &buf))

	dst, _, _ := newTestApp(t, false)
	n, err := dst.ImportJSON(ctx, &buf, false)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	d := dst.Dashboard()
	require.Len(t, d.Clients, 3)
	assert.Equal(t, "1", d.Clients[0].ID)
	assert.True(t, d.Stats.TotalRevenue.Equal(src.Dashboard().Stats.TotalRevenue))
}

func TestChartRand(t *testing.T) {
	assert.Nil(t, chartRand(config.ChartConfig{}))

	a := chartRand(config.ChartConfig{Jitter: true, Seed: 42})
	b := chartRand(config.ChartConfig{Jitter: true, Seed: 42})
	require.NotNil(t, a)
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestApplySettings(t *testing.T) {
	a, _, _ := newTestApp(t, true)
	a.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	err := a.ApplySettings(Settings{CurrencySymbol: " $ ", DateFormat: "2006-01-02", DueSoonDays: 30})
	require.NoError(t, err)

	d := a.Dashboard()
	assert.Equal(t, "$ 350.00", d.Metrics[2].Value)
	assert.Equal(t, "2024-02-15", d.Rows[0].PaymentDate)
	assert.Len(t, d.Overdue, 2)

	loaded, err := config.Load(a.ConfigPath)
	require.NoError(t, err)
	assert.Equal(t, "$", loaded.Display.CurrencySymbol)
	assert.Equal(t, 30, loaded.Alerts.DueSoonDays)
	assert.Equal(t, Settings{CurrencySymbol: "$", DateFormat: "2006-01-02", DueSoonDays: 30}, a.Settings())
}

func TestApplySettings_Invalid(t *testing.T) {
	a, _, _ := newTestApp(t, true)
	a.ConfigPath = filepath.Join(t.TempDir(), "config.yaml")

	assert.Error(t, a.ApplySettings(Settings{CurrencySymbol: "S/", DateFormat: " "}))
	assert.Error(t, a.ApplySettings(Settings{CurrencySymbol: "S/", DateFormat: "02/01/2006", DueSoonDays: -1}))
	assert.Equal(t, "S/", a.Settings().CurrencySymbol)
	assert.NoFileExists(t, a.ConfigPath)
}
