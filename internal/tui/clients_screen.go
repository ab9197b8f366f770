package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/rebancariza/internal/app"
	"github.com/andy/rebancariza/internal/domain"
	"github.com/andy/rebancariza/internal/service"
	"github.com/andy/rebancariza/internal/view"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeSearch
	clientModeConfirmDelete
	clientModeNew
	clientModeEdit
)

// form field indices, in the order errors are reported
const (
	fieldDNI = iota
	fieldName
	fieldPhone
	fieldDescription
	fieldManagementDate
	fieldPaymentDate
	fieldMonthlyFee
	fieldStatus
	fieldCount
)

// formFields describes each input: label, the name validation errors use,
// placeholder and width
var formFields = [fieldCount]struct {
	label       string
	name        string
	placeholder string
	width       int
}{
	fieldDNI:            {"DNI/RUC:", "dni", "12345678", 15},
	fieldName:           {"Full name:", "name", "Juan Pérez Rodríguez", 40},
	fieldPhone:          {"Phone:", "phone", "987654321", 15},
	fieldDescription:    {"Service description:", "description", "Optional", 50},
	fieldManagementDate: {"Management date:", "managementDate", "YYYY-MM-DD", 12},
	fieldPaymentDate:    {"Payment date:", "paymentDate", "YYYY-MM-DD", 12},
	fieldMonthlyFee:     {"Monthly fee:", "monthlyFee", "150.00", 12},
	fieldStatus:         {"Status:", "status", "active or delinquent", 12},
}

// ClientsModel displays the filtered client table with search, create/edit
// forms and delete confirmation
type ClientsModel struct {
	app       *app.App
	data      app.Dashboard
	cursor    int
	width     int
	loading   bool
	err       error
	statusMsg string

	search textinput.Model

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	fieldErr      *domain.ValidationError
	editingID     string // empty for new client
	autoNewClient bool   // open new client form after data loads
}

type clientSavedMsg struct {
	name   string
	result app.Result
	err    error
}

type clientDeletedMsg struct {
	name   string
	result app.Result
	err    error
}

type editOpenedMsg struct {
	result app.Result
	err    error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	search := textinput.New()
	search.Placeholder = "name, phone, DNI or description"
	search.Prompt = "/ "
	search.CharLimit = 100
	search.Width = 40

	return &ClientsModel{
		app:     a,
		loading: true,
		width:   80,
		search:  search,
	}
}

// IsCapturingInput returns true when the form or search box is active
func (m *ClientsModel) IsCapturingInput() bool {
	switch m.mode {
	case clientModeNew, clientModeEdit, clientModeSearch, clientModeConfirmDelete:
		return true
	}
	return false
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		return DashboardMsg{Dashboard: m.app.Dashboard()}
	}
}

func (m *ClientsModel) dispatch(act app.Action) tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), act)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return DashboardMsg{Dashboard: res.Dashboard}
	}
}

func (m *ClientsModel) setFilter(search string, status domain.Status) tea.Cmd {
	return m.dispatch(app.SetFilter{Search: search, Status: status})
}

func (m *ClientsModel) selected() (view.ClientRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.data.Rows) {
		return view.ClientRow{}, false
	}
	return m.data.Rows[m.cursor], true
}

func (m *ClientsModel) initForm(form service.ClientForm, editingID string) tea.Cmd {
	values := [fieldCount]string{
		form.DNI, form.Name, form.Phone, form.Description,
		form.ManagementDate, form.PaymentDate, form.MonthlyFee, form.Status,
	}

	m.fields = make([]textinput.Model, fieldCount)
	for i, f := range formFields {
		m.fields[i] = textinput.New()
		m.fields[i].Placeholder = f.placeholder
		m.fields[i].CharLimit = 100
		m.fields[i].Width = f.width
		m.fields[i].SetValue(values[i])
	}

	m.editingID = editingID
	m.mode = clientModeNew
	if editingID != "" {
		m.mode = clientModeEdit
	}
	m.fieldErr = nil
	m.err = nil
	m.fieldFocus = fieldDNI
	return m.fields[fieldDNI].Focus()
}

func (m *ClientsModel) formValues() service.ClientForm {
	v := func(i int) string { return m.fields[i].Value() }
	return service.ClientForm{
		DNI:            v(fieldDNI),
		Name:           v(fieldName),
		Phone:          v(fieldPhone),
		Description:    v(fieldDescription),
		ManagementDate: v(fieldManagementDate),
		PaymentDate:    v(fieldPaymentDate),
		MonthlyFee:     v(fieldMonthlyFee),
		Status:         v(fieldStatus),
	}
}

func (m *ClientsModel) saveClient() tea.Cmd {
	form := m.formValues()
	var act app.Action = app.CreateClient{Form: form}
	if m.editingID != "" {
		act = app.UpdateClient{ID: m.editingID, Form: form}
	}
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), act)
		if err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: res.Client.Name, result: res}
	}
}

func (m *ClientsModel) openEdit(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), app.BeginEdit{ID: id})
		return editOpenedMsg{result: res, err: err}
	}
}

func (m *ClientsModel) deleteClient(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.app.Dispatch(context.Background(), app.DeleteClient{ID: id})
		if err != nil {
			return clientDeletedMsg{err: err}
		}
		return clientDeletedMsg{name: res.Client.Name, result: res}
	}
}

func (m *ClientsModel) applyDashboard(d app.Dashboard) {
	m.loading = false
	m.data = d
	if m.cursor >= len(m.data.Rows) {
		m.cursor = max(0, len(m.data.Rows)-1)
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	case OpenNewClientFormMsg:
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		return m, m.initForm(service.NewClientForm(m.app.Now()), "")

	case DashboardMsg:
		m.applyDashboard(msg.Dashboard)
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			return m, m.initForm(service.NewClientForm(m.app.Now()), "")
		}
		return m, nil

	case RefreshDataMsg:
		return m, m.loadClients()

	case clientDeletedMsg:
		m.mode = clientModeList
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.applyDashboard(msg.result.Dashboard)
		m.statusMsg = fmt.Sprintf("Deleted: %s", msg.name)
		return m, nil

	case editOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.initForm(msg.result.Form, msg.result.Client.ID)
	}

	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.updateForm(msg)
	case clientModeSearch:
		return m.updateSearch(msg)
	case clientModeConfirmDelete:
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.loading {
		return m, nil
	}

	m.statusMsg = ""
	m.err = nil

	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, DefaultKeyMap.Down):
		if m.cursor < len(m.data.Rows)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, DefaultKeyMap.New):
		return m, m.initForm(service.NewClientForm(m.app.Now()), "")
	case key.Matches(keyMsg, DefaultKeyMap.Select):
		// Enter key opens edit form for selected client
		if row, ok := m.selected(); ok {
			return m, m.openEdit(row.ID)
		}
	case key.Matches(keyMsg, DefaultKeyMap.Delete):
		if _, ok := m.selected(); ok {
			m.mode = clientModeConfirmDelete
		}
	case key.Matches(keyMsg, DefaultKeyMap.Search):
		m.mode = clientModeSearch
		m.search.SetValue(m.data.State.Search)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(keyMsg, DefaultKeyMap.Status):
		m.cursor = 0
		return m, m.setFilter(m.data.State.Search, view.NextStatusFilter(m.data.State.StatusFilter))
	case key.Matches(keyMsg, DefaultKeyMap.Back):
		if m.data.State.Search != "" || m.data.State.StatusFilter != "" {
			m.cursor = 0
			return m, m.setFilter("", "")
		}
	}

	return m, nil
}

// updateSearch filters the table as the user types
func (m *ClientsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.mode = clientModeList
			m.search.Blur()
			m.search.SetValue("")
			m.cursor = 0
			return m, m.setFilter("", m.data.State.StatusFilter)
		case "enter":
			m.mode = clientModeList
			m.search.Blur()
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.cursor = 0
		return m, tea.Batch(cmd, m.setFilter(m.search.Value(), m.data.State.StatusFilter))
	}
	return m, cmd
}

func (m *ClientsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, DefaultKeyMap.Confirm):
		if row, ok := m.selected(); ok {
			return m, m.deleteClient(row.ID)
		}
		m.mode = clientModeList
	case key.Matches(keyMsg, DefaultKeyMap.Deny):
		m.mode = clientModeList
	}
	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			var verr *domain.ValidationError
			if errors.As(msg.err, &verr) {
				m.fieldErr = verr
				m.err = nil
				return m, m.focusField(verr.Field)
			}
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.fieldErr = nil
		m.applyDashboard(msg.result.Dashboard)
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			m.fieldErr = nil
			if m.editingID != "" {
				return m, m.dispatch(app.CancelEdit{})
			}
			return m, nil

		case "tab", "down":
			return m, m.moveFocus(1)

		case "shift+tab", "up":
			return m, m.moveFocus(-1)

		case "enter":
			// If on last field or explicit submit, save
			if m.fieldFocus == fieldCount-1 {
				return m, m.saveClient()
			}
			return m, m.moveFocus(1)

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) moveFocus(delta int) tea.Cmd {
	m.fields[m.fieldFocus].Blur()
	m.fieldFocus = (m.fieldFocus + delta + fieldCount) % fieldCount
	return m.fields[m.fieldFocus].Focus()
}

// focusField moves focus to the input validation errors call name
func (m *ClientsModel) focusField(name string) tea.Cmd {
	for i, f := range formFields {
		if f.name == name {
			return m.moveFocus(i - m.fieldFocus)
		}
	}
	return nil
}

func (m *ClientsModel) View() string {
	switch m.mode {
	case clientModeNew, clientModeEdit:
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s strings.Builder

	if m.mode == clientModeNew {
		if len(m.data.Clients) == 0 {
			s.WriteString(titleStyle.Render("Welcome to rebancariza!") + "\n")
			s.WriteString(subtitleStyle.Render("  Let's register your first client to get started.") + "\n\n")
		} else {
			s.WriteString(titleStyle.Render("New Client") + "\n\n")
		}
	} else {
		s.WriteString(titleStyle.Render("Edit Client") + "\n\n")
	}

	for i, f := range formFields {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s.WriteString(fmt.Sprintf("%s%s\n  %s\n", indicator, labelStyle.Render(f.label), m.fields[i].View()))
		if m.fieldErr != nil && m.fieldErr.Field == f.name {
			s.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render("  "+m.fieldErr.Message) + "\n")
		}
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	s.WriteString(helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel"))

	return s.String()
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	var s strings.Builder

	// Header
	header := "Clients"
	state := m.data.State
	header += subtitleStyle.Render(fmt.Sprintf("  status: %s", view.StatusFilterLabel(state.StatusFilter)))
	if state.Search != "" && m.mode != clientModeSearch {
		header += subtitleStyle.Render(fmt.Sprintf("  search: %q", state.Search))
	}
	s.WriteString(titleStyle.Render(header) + "\n\n")

	if m.mode == clientModeSearch {
		s.WriteString("  " + m.search.View() + "\n\n")
	}

	// Status message
	if m.statusMsg != "" {
		s.WriteString(lipgloss.NewStyle().Foreground(successColor).Render("  "+m.statusMsg) + "\n\n")
	}
	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(errorColor).Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	switch {
	case len(m.data.Clients) == 0:
		s.WriteString(subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n")
		return s.String()
	case len(m.data.Rows) == 0:
		s.WriteString(subtitleStyle.Render("  No clients match the filter. Press esc to clear it.") + "\n")
		return s.String()
	}

	s.WriteString(subtitleStyle.Render(m.tableLine(view.ClientRow{
		DNI: "DNI", Name: "Name", Phone: "Phone", PaymentDate: "Payment",
		MonthlyFee: "Monthly fee", StatusLabel: "Status",
	})) + "\n")
	for i, row := range m.data.Rows {
		s.WriteString(m.renderRow(i, row) + "\n")
	}

	s.WriteString(subtitleStyle.Render(fmt.Sprintf("\n  %d of %d client(s)", len(m.data.Rows), len(m.data.Clients))) + "\n")

	if m.mode == clientModeConfirmDelete {
		if row, ok := m.selected(); ok {
			s.WriteString("\n" + lipgloss.NewStyle().Bold(true).Foreground(warningColor).
				Render(fmt.Sprintf("  Delete %s? (y/n)", row.Name)) + "\n")
			return s.String()
		}
	}

	s.WriteString("\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  d: delete  /: search  s: status filter  esc: clear filters"))

	return s.String()
}

// nameWidth gives the name column whatever the fixed columns leave
func (m *ClientsModel) nameWidth() int {
	return max(m.width-2-12-11-11-14-11-6, 16)
}

func (m *ClientsModel) tableLine(r view.ClientRow) string {
	return fmt.Sprintf("  %s %s %s %s %s %s",
		padRight(truncateStr(r.DNI, 12), 12),
		padRight(truncateStr(r.Name, m.nameWidth()), m.nameWidth()),
		padRight(truncateStr(r.Phone, 11), 11),
		padRight(r.PaymentDate, 11),
		fmt.Sprintf("%14s", r.MonthlyFee),
		r.StatusLabel,
	)
}

func (m *ClientsModel) renderRow(index int, r view.ClientRow) string {
	line := m.tableLine(r)
	if index == m.cursor {
		return selectedStyle.Render(line)
	}
	label := r.StatusLabel
	return strings.TrimSuffix(line, label) + statusStyle(r.Status).Render(label)
}
