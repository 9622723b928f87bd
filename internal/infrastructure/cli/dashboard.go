package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/felixgeelhaar/stackaudit/pkg/application"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/catalog"
	"github.com/felixgeelhaar/stackaudit/pkg/domain/evaluation"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [path]",
	Short: "Interactive feature-status dashboard",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		env, err := loadEnv(path, nil, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if os.Getenv("STACKAUDIT_SKIP_DASHBOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(newDashboardModel(cmd.Context(), env.svc, env.root))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(dashboardCmd)
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

type evaluatedMsg struct {
	res *application.Result
	err error
}

type dashboardModel struct {
	ctx     context.Context
	svc     *application.EvaluationService
	root    string
	table   table.Model
	res     *application.Result
	loading bool
	err     error
}

func newDashboardModel(ctx context.Context, svc *application.EvaluationService, root string) dashboardModel {
	if ctx == nil {
		ctx = context.Background()
	}
	columns := []table.Column{
		{Title: "Category", Width: 18},
		{Title: "Feature", Width: 26},
		{Title: "Status", Width: 16},
		{Title: "Score", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	return dashboardModel{ctx: ctx, svc: svc, root: root, table: t, loading: true}
}

func (m dashboardModel) evaluate() tea.Msg {
	res, err := m.svc.Evaluate(m.ctx, m.root)
	return evaluatedMsg{res: res, err: err}
}

func (m dashboardModel) Init() tea.Cmd { return m.evaluate }

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.evaluate
			}
		}
	case evaluatedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.res = msg.res
			m.table.SetRows(featureRows(m.svc.Catalog(), msg.res.Record.Features))
		}
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m dashboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Evaluation failed: %v\nPress r to retry or q to quit.", m.err)
	}
	if m.res == nil {
		return "Evaluating " + m.root + "...\n"
	}

	header := titleStyle.Render(fmt.Sprintf("Armonia compliance: %.1f%%", m.res.Summary.OverallCompliance))
	issues := okStyle.Render("No critical issues")
	if n := len(m.res.Summary.CriticalIssues); n > 0 {
		issues = criticalStyle.Render(fmt.Sprintf("Critical issues: %d", n))
	}
	status := ""
	if m.loading {
		status = " (re-evaluating...)"
	}

	return baseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			m.root+status,
			issues,
			"",
			m.table.View(),
			"\n[r] Re-evaluate  [q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}

// featureRows lists every feature in catalog order with its category score.
func featureRows(cat *catalog.Catalog, features evaluation.FeatureSection) []table.Row {
	var rows []table.Row
	for _, spec := range cat.Categories {
		status, ok := features[spec.Name]
		if !ok {
			continue
		}
		score := "-"
		if status.Score != nil {
			score = fmt.Sprintf("%.1f", *status.Score)
		}
		byFeature := make(map[catalog.Feature]evaluation.FeatureStatus)
		for _, f := range status.Implemented {
			byFeature[f] = evaluation.StatusImplemented
		}
		for _, f := range status.PartiallyImplemented {
			byFeature[f] = evaluation.StatusPartial
		}
		for _, f := range spec.Features {
			st, ok := byFeature[f.Name]
			if !ok {
				st = evaluation.StatusNotImplemented
			}
			rows = append(rows, table.Row{string(spec.Name), string(f.Name), string(st), score})
		}
	}
	return rows
}
