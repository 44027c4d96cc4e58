package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dpshade/pocket-debrief/internal/cli"
	"github.com/dpshade/pocket-debrief/internal/config"
	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/service"
	"github.com/dpshade/pocket-debrief/internal/ui"
)

var version = "0.1.0"

func printHelp() {
	fmt.Printf(`pocket-debrief - Terminal journal for event / win / next debriefs

USAGE:
    pocket-debrief [OPTIONS] [COMMAND]

OPTIONS:
    --help          Show this help information
    --version       Print version information
    --dir <path>    Data directory (default: ~/.pocket-debrief)
    --init          Write a default config.yaml into the data directory
    --verbose       Print warnings to stderr in CLI mode

COMMANDS:
    (no command)       Start interactive TUI mode
    log add            Record a new debrief
    log list, ls       List entries, newest first
    log search <q>     Fuzzy-search entries
    log show <n>       Show an entry in full
    log copy <n>       Copy an entry to the clipboard
    log clear          Delete every entry
    template add       Save a new template
    template list      List templates
    template delete    Delete a template
    template copy <n>  Copy a template to the clipboard
    export             Export entries and templates (json or yaml)
    help               Show CLI command help

EXAMPLES:
    pocket-debrief                                        # Start interactive mode
    pocket-debrief log add --event "Shipped v2" --win "Checklist worked" --next "Write retro"
    pocket-debrief log search retro                       # Search entries
    pocket-debrief template add --name "Daily Standup" --content "What did I do today?"
    pocket-debrief template delete 2                      # Delete the second template
    pocket-debrief export --format yaml --output backup.yaml

STORAGE:
    Default directory: ~/.pocket-debrief
    Override with: %s=<path> or --dir <path>
    Settings: <data dir>/config.yaml (date_locale, theme, confirm_destructive)
`, config.EnvDataDir)
}

func main() {
	var showVersion bool
	var showHelp bool
	var initConfig bool
	var verbose bool
	var dataDir string

	flag.BoolVar(&showVersion, "version", false, "Print version information")
	flag.BoolVar(&showHelp, "help", false, "Show help information")
	flag.BoolVar(&initConfig, "init", false, "Write a default config.yaml")
	flag.BoolVar(&verbose, "verbose", false, "Print warnings to stderr")
	flag.StringVar(&dataDir, "dir", "", "Data directory")
	flag.Parse()

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("pocket-debrief version %s\n", version)
		os.Exit(0)
	}

	dir, err := config.ResolveDataDir(dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	errors.SetLogDir(dir)

	if initConfig {
		cfg := config.Default(dir)
		if _, err := os.Stat(cfg.Path()); err == nil {
			fmt.Printf("%s already exists\n", cfg.Path())
			return
		}
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", cfg.Path())
		return
	}

	cfg, err := config.Load(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := service.NewService(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Check if we have command line arguments for CLI mode
	args := flag.Args()
	if len(args) > 0 {
		handler := errors.NewCLIErrorHandler(verbose)
		if err := cli.NewCLI(svc).ExecuteCommand(args); err != nil {
			fmt.Fprintln(os.Stderr, handler.HandleError(err))
			os.Exit(1)
		}
		return
	}

	model, err := ui.NewModel(svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(*model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
