package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/matheuskafuri/headlines/internal/browser"
	"github.com/matheuskafuri/headlines/internal/guardian"
)

var defaultOpen = browser.Open

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type mode int

const (
	modeNormal mode = iota
	modeKeyword
	modeHelp
)

// Searcher runs one search. guardian.Pipeline satisfies it.
type Searcher interface {
	Run(ctx context.Context, q guardian.Query) guardian.Result
}

type App struct {
	searcher  Searcher
	savePrefs func(keyword string, order guardian.SortOrder) error
	open      func(url string) error
	log       logrus.FieldLogger

	query    guardian.Query
	articles []guardian.Article
	cursor   int
	focus    focusPane
	mode     mode

	width  int
	height int

	keywordInput textinput.Model
	spinner      spinner.Model

	seq           int
	loading       bool
	previewScroll int
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Searcher Searcher
	Query    guardian.Query
	// SavePrefs persists keyword and order changes. Optional.
	SavePrefs func(keyword string, order guardian.SortOrder) error
	// Open shows an article. Defaults to browser.Open.
	Open func(url string) error
	Log  logrus.FieldLogger
}

func NewApp(opts RunOpts) *App {
	ti := textinput.New()
	ti.Placeholder = "Search keyword..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	open := opts.Open
	if open == nil {
		open = defaultOpen
	}

	return &App{
		searcher:     opts.Searcher,
		savePrefs:    opts.SavePrefs,
		open:         open,
		log:          log,
		query:        opts.Query,
		keywordInput: ti,
		spinner:      sp,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.search(), a.spinner.Tick)
}

// search starts a new fetch and supersedes any fetch still in flight.
func (a *App) search() tea.Cmd {
	a.seq++
	a.loading = true
	seq := a.seq
	q := a.query
	s := a.searcher
	return func() tea.Msg {
		return searchDoneMsg{seq: seq, result: s.Run(context.Background(), q)}
	}
}

func (a *App) savePrefsCmd() tea.Cmd {
	if a.savePrefs == nil {
		return nil
	}
	save := a.savePrefs
	keyword, order := a.query.Keyword, a.query.OrderBy
	return func() tea.Msg {
		return prefsSavedMsg{err: save(keyword, order)}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case searchDoneMsg:
		if msg.seq != a.seq {
			a.log.WithField("seq", msg.seq).Debug("discarding superseded search result")
			return a, nil
		}
		a.loading = false
		a.articles = msg.result.Articles()
		a.cursor = 0
		a.previewScroll = 0
		return a, nil

	case openErrMsg:
		a.log.WithError(msg.err).Warn("opening article")
		a.err = msg.err
		return a, nil

	case prefsSavedMsg:
		if msg.err != nil {
			a.log.WithError(msg.err).Warn("saving preferences")
			a.err = fmt.Errorf("saving preferences: %w", msg.err)
		}
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.mode {
	case modeKeyword:
		return a.handleKeywordKey(msg)
	case modeHelp:
		if msg.String() == "?" || msg.String() == "esc" || msg.String() == "q" {
			a.mode = modeNormal
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.articles)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "g", "home":
		a.cursor = 0
		a.previewScroll = 0
		return a, nil
	case "G", "end":
		a.cursor = max(0, len(a.articles)-1)
		a.previewScroll = 0
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if art, ok := a.selected(); ok {
			return a, a.openCmd(art.URL)
		}
		return a, nil
	case "r":
		return a, tea.Batch(a.search(), a.spinner.Tick)
	case "/":
		a.mode = modeKeyword
		a.keywordInput.SetValue(a.query.Keyword)
		a.keywordInput.CursorEnd()
		a.keywordInput.Focus()
		return a, textinput.Blink
	case "s":
		a.query.OrderBy = a.query.OrderBy.Next()
		return a, tea.Batch(a.savePrefsCmd(), a.search(), a.spinner.Tick)
	case "?":
		a.mode = modeHelp
		return a, nil
	}

	return a, nil
}

func (a *App) handleKeywordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		a.keywordInput.Blur()
		return a, nil
	case "enter":
		a.mode = modeNormal
		a.keywordInput.Blur()
		a.query.Keyword = strings.TrimSpace(a.keywordInput.Value())
		return a, tea.Batch(a.savePrefsCmd(), a.search(), a.spinner.Tick)
	}

	var cmd tea.Cmd
	a.keywordInput, cmd = a.keywordInput.Update(msg)
	return a, cmd
}

func (a *App) selected() (guardian.Article, bool) {
	if a.cursor < 0 || a.cursor >= len(a.articles) {
		return guardian.Article{}, false
	}
	return a.articles[a.cursor], true
}

// emptyMessage is the single empty-state text, whatever the cause.
func (a *App) emptyMessage() string {
	return fmt.Sprintf("No news found for %q", a.query.Keyword)
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  headlines")
	}

	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	tabsHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - tabsHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.4)
	previewWidth := a.width - listWidth - 1

	// Header
	headerLeft := headerStyle.Render("headlines")
	headerRight := headerDateStyle.Render(a.queryLabel())
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	tabs := renderOrderTabs(a.query.OrderBy, a.width)
	if a.mode == modeKeyword {
		tabs = a.keywordInput.View()
	}

	innerListW := listWidth - 4
	var listContent string
	switch {
	case a.loading && len(a.articles) == 0:
		listContent = lipglossCenter(a.spinner.View()+" Loading news...", innerListW, contentHeight)
	case len(a.articles) == 0:
		listContent = lipglossCenter(a.emptyMessage(), innerListW, contentHeight)
	default:
		listContent = renderList(a.articles, a.cursor, contentHeight, innerListW)
	}

	listStyle := listPaneStyle
	previewStyle := previewPaneStyle
	if a.focus == focusList {
		listStyle = listPaneActiveStyle
	} else {
		previewStyle = previewPaneActiveStyle
	}
	listPane := listStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)

	var art *guardian.Article
	if sel, ok := a.selected(); ok {
		art = &sel
	}
	previewContent := renderPreview(art, previewWidth-4, contentHeight, a.previewScroll)
	previewPane := previewStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(len(a.articles), a.width, a.mode == modeKeyword, a.loading)
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, status)
}

func (a *App) queryLabel() string {
	kw := guardian.SanitizeKeyword(a.query.Keyword)
	if kw == "" {
		kw = "(any)"
	}
	return "q=" + kw + " "
}

func (a *App) renderHelp() string {
	title := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render("headlines")
	dim := helpDimStyle

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Navigate article list\n" +
		"  g/G           Jump to first/last article\n" +
		"  tab           Switch focus between list and preview\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open article in browser\n" +
		"  r             Search again\n" +
		"  /             Change search keyword\n" +
		"  s             Cycle sort order (newest, oldest, relevance)\n\n" +
		dim.Render("General") + "\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := helpCardStyle.Render(help)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
