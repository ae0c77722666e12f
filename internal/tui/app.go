package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Shamanth-8/stocksenti/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Analyzer is the slice of the analysis service the dashboard needs.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.FetchRequest) (domain.Report, error)
}

// Services carries the dashboard's collaborators and per-session identity.
type Services struct {
	Analyzer     Analyzer
	MaxArticles  int
	LookbackDays int
	Username     string
}

type appState int

const (
	stateInput appState = iota
	stateLoading
	stateResult
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	positiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	negativeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	neutralStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

type reportMsg struct {
	report domain.Report
	err    error
}

// AppModel is the SSH dashboard: type a company, pick a provider, get the
// sentiment verdict inline.
type AppModel struct {
	svc      Services
	state    appState
	input    textinput.Model
	spin     spinner.Model
	provider domain.Provider
	report   domain.Report
	err      error
	width    int
	height   int
}

func NewAppModel(svc Services) *AppModel {
	ti := textinput.New()
	ti.Placeholder = "Company name, e.g. Apple"
	ti.CharLimit = 80
	ti.Width = 40
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &AppModel{
		svc:      svc,
		state:    stateInput,
		input:    ti,
		spin:     sp,
		provider: domain.ProviderFinnhub,
	}
}

func (m *AppModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AppModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInput || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case "tab":
			m.toggleProvider()
			return m, nil
		case "esc":
			if m.state == stateResult {
				m.state = stateInput
				m.err = nil
				m.input.SetValue("")
				m.input.Focus()
				return m, textinput.Blink
			}
		case "enter":
			if m.state == stateInput {
				company := strings.TrimSpace(m.input.Value())
				if company == "" {
					return m, nil
				}
				m.state = stateLoading
				return m, tea.Batch(m.spin.Tick, m.analyzeCmd(company))
			}
		}

	case reportMsg:
		m.state = stateResult
		m.report = msg.report
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.state == stateLoading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *AppModel) toggleProvider() {
	if m.provider == domain.ProviderFinnhub {
		m.provider = domain.ProviderNewsAPI
	} else {
		m.provider = domain.ProviderFinnhub
	}
}

func (m *AppModel) analyzeCmd(company string) tea.Cmd {
	req := domain.FetchRequest{
		Company:      company,
		Provider:     m.provider,
		MaxArticles:  m.svc.MaxArticles,
		LookbackDays: m.svc.LookbackDays,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		report, err := m.svc.Analyzer.Analyze(ctx, req)
		return reportMsg{report: report, err: err}
	}
}

func (m *AppModel) View() string {
	var sb strings.Builder

	title := "stocksenti"
	if m.svc.Username != "" {
		title += " - " + m.svc.Username
	}
	sb.WriteString(titleStyle.Render(title) + "\n\n")

	switch m.state {
	case stateInput:
		sb.WriteString(m.input.View() + "\n\n")
		sb.WriteString(fmt.Sprintf("Provider: %s\n\n", m.provider))
		sb.WriteString(helpStyle.Render("enter: analyze | tab: switch provider | ctrl+c: quit"))

	case stateLoading:
		sb.WriteString(m.spin.View() + " Fetching and classifying headlines...\n")

	case stateResult:
		if m.err != nil {
			sb.WriteString(errorStyle.Render("Analysis failed: "+m.err.Error()) + "\n\n")
		} else {
			sb.WriteString(m.renderReport() + "\n")
		}
		sb.WriteString(helpStyle.Render("esc: new analysis | q: quit"))
	}

	return sb.String()
}

func (m *AppModel) renderReport() string {
	report := m.report
	if report.Reason != domain.ReasonOK {
		return boxStyle.Render(fmt.Sprintf("No verdict (%s)", report.Reason))
	}

	result := report.Result
	var sb strings.Builder

	header := report.Request.Company
	if report.Symbol != "" {
		header += " (" + report.Symbol + ")"
	}
	sb.WriteString(header + "\n\n")

	sb.WriteString("Verdict: " + labelStyle(result.DominantLabel).Render(string(result.DominantLabel)))
	sb.WriteString(fmt.Sprintf("  avg confidence %.0f%%\n\n", result.AverageConfidence*100))

	sb.WriteString(positiveStyle.Render(fmt.Sprintf("▲ %d positive", result.Counts.Positive)) + "  ")
	sb.WriteString(negativeStyle.Render(fmt.Sprintf("▼ %d negative", result.Counts.Negative)) + "  ")
	sb.WriteString(neutralStyle.Render(fmt.Sprintf("• %d neutral", result.Counts.Neutral)) + "\n")

	if result.TopPositive != nil {
		sb.WriteString("\n" + positiveStyle.Render("Most positive:") + "\n" + result.TopPositive.Title + "\n")
	}
	if result.TopNegative != nil {
		sb.WriteString("\n" + negativeStyle.Render("Most negative:") + "\n" + result.TopNegative.Title + "\n")
	}

	return boxStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

func labelStyle(label domain.SentimentLabel) lipgloss.Style {
	switch label {
	case domain.SentimentPositive:
		return positiveStyle
	case domain.SentimentNegative:
		return negativeStyle
	default:
		return neutralStyle
	}
}
