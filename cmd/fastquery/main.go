// cmd/fastquery/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/backend"
	"github.com/nhath/fastquery/internal/config"
	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/history"
	"github.com/nhath/fastquery/internal/ui"
	"github.com/nhath/fastquery/internal/ui/components/table"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main with deferred cleanup; it returns the process exit code
func run(args []string) int {
	// Parse flags
	flags := flag.NewFlagSet("fastquery", flag.ContinueOnError)
	configPath := flags.String("config", "", "Config file (default: XDG config dir)")
	debug := flags.Bool("debug", false, "Enable debug logging to debug.log")
	backendURL := flags.String("backend", "", "Backend origin (overrides config and "+config.BackendURLEnv+")")

	// One-shot mode
	server := flags.String("server", "", "SQL Server instance, e.g. localhost\\SQLEXPRESS")
	user := flags.String("user", "", "Login user")
	passwordEnv := flags.String("password-env", "FASTQUERY_PASSWORD", "Environment variable holding the password")
	database := flags.String("database", "", "Database to use (default: first listed)")
	execSQL := flags.String("exec", "", "Run SQL once, print the result and exit")
	preview := flags.Bool("preview", false, "With -exec, send the SQL to /preview instead of /query")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	// Setup logging if debug enabled
	if *debug {
		f, err := tea.LogToFile("debug.log", "debug")
		if err != nil {
			fmt.Printf("fatal: could not open debug log: %v", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f) // Redirect standard log to the same file
	} else {
		log.SetOutput(io.Discard) // keep log lines off the TUI
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *backendURL != "" {
		cfg.BackendURL = *backendURL
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -backend: %v\n", err)
			return 1
		}
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	client := backend.NewClient(cfg.BackendURL, timeout)
	log.Printf("backend: %s timeout=%s", client.BaseURL(), timeout)

	if *execSQL != "" {
		mode := console.ModeExecute
		if *preview {
			mode = console.ModePreview
		}
		input := console.ConnectionInput{
			Server:   *server,
			User:     *user,
			Password: os.Getenv(*passwordEnv),
		}
		return runOnce(cfg, client, input, *database, *execSQL, mode)
	}

	// Initialize history store
	historyStore, err := history.NewStore(cfg.HistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize history: %v\n", err)
		return 1
	}
	defer historyStore.Close()

	model := ui.NewModel(cfg, client, historyStore)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return 1
	}
	return 0
}

// runOnce connects, runs sql against database and prints the outcome.
// It returns the process exit code.
func runOnce(cfg *config.Config, b console.Backend, input console.ConnectionInput, database, sql string, mode console.Mode) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := console.NewConsole(b, console.MessagesFor(cfg.Locale))
	c.State.Input = input
	c.State.Query = sql

	if out := c.Connect(ctx); out.Kind == console.OutcomeError {
		fmt.Fprintln(os.Stderr, out.Error)
		return 1
	}
	if database != "" {
		if err := c.State.Select(database); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	var out console.Outcome
	if mode == console.ModePreview {
		out = c.Preview(ctx)
	} else {
		out = c.Execute(ctx)
	}

	switch out.Kind {
	case console.OutcomeError:
		fmt.Fprintln(os.Stderr, out.Error)
		return 1
	case console.OutcomeResult:
		if !out.Result.IsTable() {
			fmt.Println(out.Result.Message)
			return 0
		}
		table.Init(cfg.Theme, cfg.NullPlaceholder)
		fmt.Println(table.Plain(table.GridFromResult(out.Result)))
	}
	return 0
}
