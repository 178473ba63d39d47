package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
	"github.com/rafabene/usermanager/internal/domain/ports"
)

const helpLine = "↑/↓ move • ←/→ page • space select • a all • p page • c clear • / search • " +
	"r role • x reset • d delete • D delete selected • R reload • q quit"

func (a *app) dashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive user dashboard",
		Long: `Open a full-screen dashboard with search, role filter, pagination,
selection and (bulk) delete. Destructive actions ask for confirmation
inside the dashboard.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f, ok := a.opts.Out.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
				return errors.New("dashboard requires an interactive terminal")
			}

			m := newDashboardModel(cmd.Context(), a)
			if err := m.ctrl.Load(cmd.Context()); err != nil {
				return err
			}
			m.sync()

			p := tea.NewProgram(m,
				tea.WithContext(cmd.Context()),
				tea.WithInput(a.opts.In),
				tea.WithOutput(a.opts.Out),
				tea.WithAltScreen(),
			)
			_, err := p.Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
}

// dashboardModel é o modelo bubbletea do painel. Todas as chamadas ao
// controller acontecem dentro de Update, na goroutine do programa.
type dashboardModel struct {
	ctx  context.Context
	ctrl *dashboard.Controller

	table  table.Model
	search textinput.Model
	ids    []string // ids da página atual, na ordem das linhas

	role     int // índice em entities.Roles; -1 = todos
	approved bool
	pending  func() error
	prompt   string
	status   *ports.Notification
}

func newDashboardModel(ctx context.Context, a *app) *dashboardModel {
	m := &dashboardModel{ctx: ctx, role: -1}

	m.ctrl = a.controller(
		dashboard.ConfirmFunc(func(prompt string) bool {
			m.prompt = prompt
			return m.approved
		}),
		dashboard.WithNotifier(ports.NotifierFunc(func(n ports.Notification) {
			m.status = &n
		})),
	)

	m.search = textinput.New()
	m.search.Placeholder = "search name, email, company or city"
	m.search.Prompt = "/ "
	m.search.CharLimit = 100

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 1},
			{Title: "ID", Width: 8},
			{Title: "Name", Width: 22},
			{Title: "Email", Width: 28},
			{Title: "Company", Width: 16},
			{Title: "Role", Width: 8},
			{Title: "City", Width: 14},
			{Title: "Created", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(a.profile.PageSize+1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("#2563EB"))
	m.table.SetStyles(styles)

	return m
}

func (m *dashboardModel) Init() tea.Cmd {
	return nil
}

func (m *dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetHeight(max(3, msg.Height-9))
		return m, nil

	case tea.KeyMsg:
		if m.pending != nil {
			m.resolve(msg.String())
			return m, nil
		}
		if m.search.Focused() {
			return m, m.updateSearch(msg)
		}
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *dashboardModel) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.ctrl.OnSearch(strings.TrimSpace(m.search.Value()))
		m.sync()
		return nil
	case "esc":
		m.search.Blur()
		m.search.SetValue(m.ctrl.View().SearchTerm)
		return nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *dashboardModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	v := m.ctrl.View()

	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "/":
		return m.search.Focus()
	case "right", "l":
		m.ctrl.OnPageChange(v.Page.Number + 1)
	case "left", "h":
		m.ctrl.OnPageChange(v.Page.Number - 1)
	case " ", "space":
		if id := m.cursorID(); id != "" {
			m.ctrl.OnToggleSelect(id, !m.ctrl.IsSelected(id))
		}
	case "a":
		m.ctrl.OnSelectAll()
	case "p":
		m.ctrl.OnSelectPage()
	case "c":
		m.ctrl.OnClearSelection()
	case "r":
		m.role++
		if m.role >= len(entities.Roles) {
			m.role = -1
		}
		criteria := v.Criteria
		criteria.Role = m.roleFilter()
		m.ctrl.OnFilterChange(criteria)
	case "x":
		m.role = -1
		m.search.SetValue("")
		m.ctrl.OnClearFilters()
	case "R":
		_ = m.ctrl.Load(m.ctx)
	case "d":
		if id := m.cursorID(); id != "" {
			m.ask(func() error { return m.ctrl.OnDelete(m.ctx, id) })
		}
	case "D":
		m.ask(func() error {
			_, err := m.ctrl.OnBulkDelete(m.ctx)
			return err
		})
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}

	m.sync()
	return nil
}

// ask executa action sem aprovação para capturar o prompt do controller;
// a ação só é repetida com aprovação depois de "y"
func (m *dashboardModel) ask(action func() error) {
	m.approved = false
	m.prompt = ""

	err := action()
	switch {
	case errors.Is(err, dashboard.ErrNotConfirmed):
		m.pending = action
	case errors.Is(err, dashboard.ErrNoSelection):
		m.status = &ports.Notification{Level: ports.NotificationInfo, Title: "No users selected"}
	}
}

func (m *dashboardModel) resolve(key string) {
	action := m.pending
	m.pending = nil
	if key != "y" && key != "Y" {
		m.status = &ports.Notification{Level: ports.NotificationInfo, Title: "Cancelled"}
		return
	}

	m.approved = true
	_ = action()
	m.approved = false
	m.sync()
}

func (m *dashboardModel) roleFilter() entities.Role {
	if m.role < 0 {
		return ""
	}
	return entities.Roles[m.role]
}

func (m *dashboardModel) cursorID() string {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.ids) {
		return ""
	}
	return m.ids[i]
}

// sync copia a página atual do controller para a tabela
func (m *dashboardModel) sync() {
	v := m.ctrl.View()
	selected := make(map[string]bool, len(v.Selected))
	for _, id := range v.Selected {
		selected[id] = true
	}

	rows := make([]table.Row, 0, len(v.Page.Items))
	m.ids = m.ids[:0]
	for _, u := range v.Page.Items {
		row := userRow(u, selected[u.ID])
		row[1] = shortID(row[1])
		rows = append(rows, table.Row(row))
		m.ids = append(m.ids, u.ID)
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m *dashboardModel) View() string {
	v := m.ctrl.View()
	var b strings.Builder

	b.WriteString(headerStyle.Render("Users"))
	b.WriteString("  ")
	if m.search.Focused() {
		b.WriteString(m.search.View())
	} else {
		var active []string
		if v.SearchTerm != "" {
			active = append(active, "search: "+v.SearchTerm)
		}
		if v.Criteria.Role != "" {
			active = append(active, "role: "+v.Criteria.Role.String())
		}
		if len(active) == 0 {
			active = append(active, "no filters")
		}
		b.WriteString(dimStyle.Render(strings.Join(active, " • ")))
	}
	b.WriteString("\n\n")

	if v.Page.Total == 0 {
		b.WriteString(dimStyle.Render("No users found"))
	} else {
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")
	b.WriteString(pageFooter(v))
	b.WriteString("\n\n")

	switch {
	case m.pending != nil:
		fmt.Fprintf(&b, "%s %s [y/N]", warningPrefix, m.prompt)
	case m.status != nil:
		b.WriteString(statusLine(*m.status))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(helpLine))
	return b.String()
}

func statusLine(n ports.Notification) string {
	prefix := infoPrefix
	switch n.Level {
	case ports.NotificationSuccess:
		prefix = successPrefix
	case ports.NotificationError:
		prefix = errorPrefix
	}
	line := prefix + " " + n.Title
	if n.Message != "" {
		line += ": " + n.Message
	}
	return line
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
