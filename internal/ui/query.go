package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/eclogic/waybacktweets/internal/api"
	"github.com/eclogic/waybacktweets/internal/db"
	"github.com/eclogic/waybacktweets/internal/models"
	"github.com/eclogic/waybacktweets/internal/tweets"
)

// QueryModel is the TUI model for one query invocation and its results
type QueryModel struct {
	client    *api.WaybackClient
	logger    *log.Logger
	database  *db.DB
	layout    Layout
	table     table.Model
	spinner   spinner.Model
	stopwatch stopwatch.Model

	criteria  models.Criteria
	result    *tweets.Result
	historyID int64

	viewMode queryViewMode

	// History browser state
	history       []models.QueryHistoryEntry
	historyCursor int

	// UI state
	err       error
	statusMsg string
	newQuery  bool
	quitting  bool
}

type queryViewMode int

const (
	queryViewFetching queryViewMode = iota // Running the pipeline
	queryViewResults                       // Banner + table of filtered tweets
	queryViewHistory                       // Browse past queries
)

// Messages
type queryDoneMsg struct {
	result    *tweets.Result
	historyID int64
	err       error
}

type historyLoadedMsg struct {
	entries []models.QueryHistoryEntry
	err     error
}

// NewQueryModel creates the TUI model for a query
func NewQueryModel(logger *log.Logger, database *db.DB, criteria models.Criteria) QueryModel {
	layout := DefaultLayout()

	columns := calculateTweetColumns(layout.TableWidth)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(layout.TableHeight),
	)
	ApplyTableStyles(&t)

	return QueryModel{
		client:    api.NewWaybackClient(nil), // nil logger: keep the TUI quiet
		logger:    logger,
		database:  database,
		layout:    layout,
		table:     t,
		spinner:   NewAppSpinner(),
		stopwatch: stopwatch.NewWithInterval(100 * time.Millisecond),
		criteria:  criteria,
		viewMode:  queryViewFetching,
	}
}

// Init implements tea.Model
func (m QueryModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.stopwatch.Start(), m.runQuery())
}

// Update implements tea.Model
func (m QueryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width)
		m.table.SetColumns(calculateTweetColumns(m.layout.TableWidth))
		if m.result != nil {
			m.updateTable()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stopwatch.TickMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd

	case stopwatch.StartStopMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd

	case queryDoneMsg:
		m.result = msg.result
		m.historyID = msg.historyID
		m.err = msg.err
		m.viewMode = queryViewResults
		if m.result != nil {
			m.updateTable()
		}
		return m, m.stopwatch.Stop()

	case historyLoadedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("History error: %v", msg.err)
			return m, nil
		}
		m.history = msg.entries
		m.historyCursor = 0
		m.viewMode = queryViewHistory
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m QueryModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case queryViewFetching:
		// No cancellation: the pipeline runs to completion per query
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case queryViewResults:
		return m.handleResultsKeys(msg)
	case queryViewHistory:
		return m.handleHistoryKeys(msg)
	default:
		return m, nil
	}
}

func (m QueryModel) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "n":
		// Start a fresh query from the form
		m.newQuery = true
		return m, tea.Quit

	case "up", "k":
		m.table.MoveUp(1)
		return m, nil

	case "down", "j":
		m.table.MoveDown(1)
		return m, nil

	case "enter":
		// Open the original tweet URL
		if row, ok := m.selectedRecord(); ok {
			openURL(row.OriginalURL)
			m.statusMsg = "Opened original URL"
		}
		return m, nil

	case "o":
		// Open the archived snapshot
		if row, ok := m.selectedRecord(); ok {
			openURL(row.ArchivedURL)
			m.statusMsg = "Opened archived URL"
		}
		return m, nil

	case "e":
		// Download: write the CSV next to the binary.
		// Only offered when the filtered table is non-empty.
		if m.result != nil && m.result.Outcome == tweets.OutcomeOK {
			if err := os.WriteFile(m.result.Filename, m.result.CSV, 0644); err != nil {
				m.statusMsg = fmt.Sprintf("Export error: %v", err)
			} else {
				m.statusMsg = fmt.Sprintf("Exported to %s", m.result.Filename)
				if m.database != nil && m.historyID != 0 {
					_ = m.database.SetExportFile(m.historyID, m.result.Filename)
				}
			}
		}
		return m, nil

	case "h":
		return m, m.loadHistory()
	}
	return m, nil
}

func (m QueryModel) handleHistoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "h":
		m.viewMode = queryViewResults
		return m, nil

	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		if m.historyCursor > 0 {
			m.historyCursor--
		}
		return m, nil

	case "down", "j":
		if m.historyCursor < len(m.history)-1 {
			m.historyCursor++
		}
		return m, nil

	case "d":
		if m.database != nil && len(m.history) > 0 && m.historyCursor < len(m.history) {
			entry := m.history[m.historyCursor]
			if err := m.database.DeleteEntry(entry.ID); err != nil {
				m.statusMsg = fmt.Sprintf("Delete error: %v", err)
				return m, nil
			}
			return m, m.loadHistory()
		}
		return m, nil
	}
	return m, nil
}

func (m QueryModel) selectedRecord() (models.TweetRecord, bool) {
	if m.result == nil || len(m.result.Table) == 0 {
		return models.TweetRecord{}, false
	}
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.result.Table) {
		return models.TweetRecord{}, false
	}
	return m.result.Table[cursor], true
}

// View implements tea.Model
func (m QueryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Wayback Tweets Viewer"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", m.layout.InnerWidth))
	b.WriteString("\n\n")

	switch m.viewMode {
	case queryViewFetching:
		b.WriteString(m.renderFetchingView())
	case queryViewResults:
		b.WriteString(m.renderResultsView())
	case queryViewHistory:
		b.WriteString(m.renderHistoryView())
	}

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(HintStyle.Render(m.statusMsg))
	}

	bordered := BorderStyle.
		Width(m.layout.InnerWidth).
		Render(b.String())

	return "\n" + bordered + "\n " + m.getHelpText()
}

func (m QueryModel) renderFetchingView() string {
	var b strings.Builder
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(AccentStyle.Render(fmt.Sprintf("Fetching archived tweets for @%s. Please wait...", m.criteria.Handle)))
	b.WriteString("\n\n")
	b.WriteString(DimStyle.Render(" Elapsed: "))
	b.WriteString(NormalStyle.Render(m.stopwatch.View()))
	return b.String()
}

func (m QueryModel) renderResultsView() string {
	var b strings.Builder

	// Banner first: exactly one per invocation
	switch {
	case m.err != nil:
		b.WriteString(ErrorBannerStyle.Render(fmt.Sprintf(" An error occurred: %v", m.err)))
		b.WriteString("\n")
		return b.String()

	case m.result.Outcome == tweets.OutcomeNoCaptures:
		b.WriteString(WarnBannerStyle.Render(" No archived tweets found for the given username."))
		b.WriteString("\n")
		return b.String()

	case m.result.Outcome == tweets.OutcomeNoMatches:
		b.WriteString(WarnBannerStyle.Render(" No tweets match the specified filters."))
		b.WriteString("\n\n")

	default:
		b.WriteString(SuccessBannerStyle.Render(fmt.Sprintf(" Found %d tweets in the specified range.", len(m.result.Table))))
		b.WriteString("\n\n")
	}

	queryInfo := fmt.Sprintf(" @%s  |  %s to %s",
		m.criteria.Handle,
		m.criteria.StartDate.Format(dateLayout),
		m.criteria.EndDate.Format(dateLayout),
	)
	if len(m.criteria.StatusCodes) > 0 {
		queryInfo += "  |  Status: " + strings.Join(m.criteria.StatusCodes, ",")
	}
	queryInfo += fmt.Sprintf("  |  Captures: %d", m.result.CaptureCount)
	b.WriteString(AccentStyle.Render(queryInfo))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	return b.String()
}

func (m QueryModel) renderHistoryView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(" Query History"))
	b.WriteString("\n\n")

	if len(m.history) == 0 {
		b.WriteString(DimStyle.Render(" No past queries recorded."))
		return b.String()
	}

	for i, e := range m.history {
		statuses := e.StatusCodes
		if statuses == "" {
			statuses = "any"
		}
		line := fmt.Sprintf("  @%-18s %s to %s  status:%-12s matches:%-6d %s",
			e.Handle, e.StartDate, e.EndDate, statuses, e.MatchCount,
			e.QueriedAt.Format("2006-01-02 15:04"))
		if e.ExportFile != "" {
			line += "  -> " + e.ExportFile
		}
		if i == m.historyCursor {
			b.WriteString(SelectedStyle.Render("> " + line))
		} else {
			b.WriteString(NormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m QueryModel) getHelpText() string {
	switch m.viewMode {
	case queryViewFetching:
		return HintStyle.Render("Fetching... ctrl+c: abort")
	case queryViewResults:
		if m.result != nil && m.result.Outcome == tweets.OutcomeOK {
			return HintStyle.Render("Enter: open tweet | o: open archive | e: download CSV | h: history | n: new query | q: quit")
		}
		return HintStyle.Render("h: history | n: new query | q: quit")
	case queryViewHistory:
		return HintStyle.Render("up/down: navigate | d: delete entry | Esc: back | q: quit")
	default:
		return ""
	}
}

// Commands

func (m QueryModel) runQuery() tea.Cmd {
	return func() tea.Msg {
		result, err := tweets.Run(m.client, m.criteria)
		if err != nil {
			if m.logger != nil {
				m.logger.Error("query failed", "handle", m.criteria.Handle, "err", err)
			}
			return queryDoneMsg{err: err}
		}

		// Record the completed query; history is write-only for the pipeline
		var historyID int64
		if m.database != nil {
			historyID, _ = m.database.InsertQuery(models.QueryHistoryEntry{
				Handle:       m.criteria.Handle,
				StartDate:    m.criteria.StartDate.Format(dateLayout),
				EndDate:      m.criteria.EndDate.Format(dateLayout),
				StatusCodes:  strings.Join(m.criteria.StatusCodes, ","),
				CaptureCount: result.CaptureCount,
				MatchCount:   len(result.Table),
			})
		}

		return queryDoneMsg{result: result, historyID: historyID}
	}
}

func (m QueryModel) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if m.database == nil {
			return historyLoadedMsg{err: fmt.Errorf("no database")}
		}
		entries, err := m.database.GetHistory(50)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m *QueryModel) updateTable() {
	columns := calculateTweetColumns(m.layout.TableWidth)

	tsW := columns[0].Width
	origW := columns[1].Width
	archW := columns[2].Width
	statusW := columns[3].Width

	truncate := func(s string, w int) string {
		if len(s) <= w {
			return s
		}
		if w <= 3 {
			return s[:w]
		}
		return s[:w-3] + "..."
	}

	rows := make([]table.Row, len(m.result.Table))
	for i, r := range m.result.Table {
		ts := "-"
		if r.Timestamp.Valid {
			ts = r.Timestamp.Time.Format("2006-01-02 15:04:05")
		}

		status := r.StatusCode
		if status == "" {
			status = "-"
		}

		rows[i] = table.Row{
			truncate(ts, tsW),
			truncate(r.OriginalURL, origW),
			truncate(r.ArchivedURL, archW),
			truncate(status, statusW),
		}
	}

	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

func calculateTweetColumns(totalW int) []table.Column {
	if totalW < 80 {
		totalW = 80
	}

	tsW := 20    // YYYY-MM-DD HH:MM:SS with padding
	statusW := 8 // status code column

	// Split the remainder between the two URL columns
	remaining := totalW - tsW - statusW
	origW := remaining / 2
	archW := remaining - origW

	return []table.Column{
		{Title: "Timestamp", Width: tsW},
		{Title: "Original URL", Width: origW},
		{Title: "Archived URL", Width: archW},
		{Title: "Status", Width: statusW},
	}
}

// openURL opens a URL in the default browser (cross-platform)
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux, freebsd, etc.
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}

// QueryOutcome reports what the user chose when leaving the results view
type QueryOutcome struct {
	NewQuery bool
}

// RunQuery runs one query invocation in a full-screen TUI
func RunQuery(logger *log.Logger, database *db.DB, criteria models.Criteria) (QueryOutcome, error) {
	model := NewQueryModel(logger, database, criteria)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return QueryOutcome{}, err
	}

	m, ok := finalModel.(QueryModel)
	if !ok {
		return QueryOutcome{}, nil
	}
	return QueryOutcome{NewQuery: m.newQuery}, nil
}
