// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/nhath/fastquery/internal/config"
	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/history"
	"github.com/nhath/fastquery/internal/ui/components/dbpicker"
	"github.com/nhath/fastquery/internal/ui/components/serverselector"
	"github.com/nhath/fastquery/internal/ui/components/table"
	"github.com/nhath/fastquery/internal/ui/highlight"
)

// Model is the root Bubble Tea model
type Model struct {
	// Core state
	width, height int
	config        *config.Config
	state         *console.State
	client        console.Backend
	historyStore  *history.Store // nil disables history
	focus         Focus

	// Connection form
	serverInput   textinput.Model
	userInput     textinput.Model
	passwordInput textinput.Model

	// Components
	editor         textarea.Model
	spinner        spinner.Model
	dbPicker       dbpicker.Model
	serverSelector serverselector.Model

	// Results
	grid         table.Grid
	resultsTable bbtable.Model
	lastDuration time.Duration

	// History popup
	showHistory     bool
	history         []history.HistoryEntry
	historySelected int
	searching       bool
	searchInput     textinput.Model

	// Popups
	showHelpPopup   bool
	showExportPopup bool
	exportInput     textinput.Model

	// Status bar notification (not part of the outcome)
	statusMsg string
	statusErr bool
}

// NewModel creates a new UI model. store may be nil.
func NewModel(cfg *config.Config, client console.Backend, store *history.Store) Model {
	InitStyles(cfg.Theme)
	table.Init(cfg.Theme, cfg.NullPlaceholder)
	highlight.SetStyle(cfg.Theme.ChromaStyle)

	msgs := console.MessagesFor(cfg.Locale)

	server := newField(`localhost\SQLEXPRESS`)
	if msgs == console.English {
		server.Placeholder = `server, e.g. localhost\SQLEXPRESS`
	}
	server.Focus()

	user := newField("sa")
	password := newField("")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	ti := textarea.New()
	ti.Placeholder = "SELECT TOP 10 * FROM sys.tables"
	ti.CharLimit = 0
	ti.SetHeight(6)
	ti.SetWidth(80)
	ti.ShowLineNumbers = false
	// Remove cursor line background - keep it transparent
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(TextFaint())
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(TextFaint())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor())

	// Initialize Search Input
	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search history..."
	si.CharLimit = 100
	si.Width = 30

	return Model{
		config:         cfg,
		state:          console.New(msgs),
		client:         client,
		historyStore:   store,
		focus:          FocusServer,
		serverInput:    server,
		userInput:      user,
		passwordInput:  password,
		editor:         ti,
		spinner:        sp,
		dbPicker:       dbpicker.New(cfg.Theme),
		serverSelector: serverselector.New(cfg.Theme),
		searchInput:    si,
		exportInput:    newExportInput(),
		resultsTable:   table.New(nil),
	}
}

func newField(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 30
	return ti
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// State exposes the console state, mainly for tests
func (m Model) State() *console.State {
	return m.state
}
