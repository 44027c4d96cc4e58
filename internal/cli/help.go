package cli

import "fmt"

func (c *CLI) printUsage() error {
	fmt.Fprintln(c.out, `pocket-debrief - Headless CLI mode

Usage: pocket-debrief [--dir <path>] <command> [options]

Commands:
  log add               Record a new debrief
  log list, ls          List entries, newest first
  log search <query>    Fuzzy-search entries
  log show <n>          Show entry n in full
  log copy <n>          Copy entry n to the clipboard
  log clear             Delete every entry
  template add          Save a new template
  template list, ls     List templates
  template delete <n>   Delete template n
  template copy <n>     Copy template n to the clipboard
  export                Export entries and templates
  help                  Show help

Use 'pocket-debrief help <command>' for detailed help on a specific command.`)
	return nil
}

func (c *CLI) printHelp(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	switch args[0] {
	case "log", "logs":
		fmt.Fprintln(c.out, `log - Debrief entries

Usage: pocket-debrief log <subcommand> [options]

Subcommands:
  add --event <text> --win <text> --next <text>
                        All three fields are required
  list [--format text|json]
  search <query> [--format text|json]
  show <n> [--format text|json]
  copy <n>
  clear [--force]       Asks for confirmation unless --force is given

Example:
  pocket-debrief log add --event "Shipped v2" --win "Checklist worked" --next "Write retro"`)

	case "template", "templates":
		fmt.Fprintln(c.out, `template - Template management

Usage: pocket-debrief template <subcommand> [options]

Subcommands:
  add --name <name> (--content <text> | --stdin)
  list [--format text|json]
  delete <n> [--force]  n is the position shown by 'template list'
  copy <n>`)

	case "export":
		fmt.Fprintln(c.out, `export - Export entries and templates

Usage: pocket-debrief export [options]

Options:
  --format, -f <format>  json (default) or yaml
  --output, -o <file>    Write to file instead of stdout`)

	default:
		return fmt.Errorf("no help available for %q", args[0])
	}
	return nil
}
