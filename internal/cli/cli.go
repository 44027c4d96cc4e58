package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dpshade/pocket-debrief/internal/clipboard"
	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/models"
	"github.com/dpshade/pocket-debrief/internal/renderer"
	"github.com/dpshade/pocket-debrief/internal/service"
	"github.com/dpshade/pocket-debrief/internal/view"
)

// CLI provides headless command-line interface functionality
type CLI struct {
	service  *service.Service
	renderer *renderer.Renderer
	in       *bufio.Reader
	out      io.Writer
	copy     func(string) error
}

// NewCLI creates a CLI reading confirmations from stdin and writing to stdout
func NewCLI(svc *service.Service) *CLI {
	return NewCLIWithIO(svc, os.Stdin, os.Stdout)
}

// NewCLIWithIO creates a CLI on the given streams
func NewCLIWithIO(svc *service.Service, in io.Reader, out io.Writer) *CLI {
	opts := view.Options{DateLayout: svc.Config().DateLayout()}
	return &CLI{
		service:  svc,
		renderer: renderer.NewRenderer(opts),
		in:       bufio.NewReader(in),
		out:      out,
		copy:     clipboard.Copy,
	}
}

// ExecuteCommand processes a CLI command and returns the result
func (c *CLI) ExecuteCommand(args []string) error {
	if len(args) == 0 {
		return c.printUsage()
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "log", "logs":
		return c.handleLog(commandArgs)
	case "template", "templates":
		return c.handleTemplate(commandArgs)
	case "export":
		return c.handleExport(commandArgs)
	case "help":
		return c.printHelp(commandArgs)
	default:
		return errors.CommandNotFoundError(command).
			WithDetails("use 'help' for usage information")
	}
}

func (c *CLI) handleLog(args []string) error {
	if len(args) == 0 {
		return c.listLogs(nil)
	}

	switch args[0] {
	case "add", "new":
		return c.addLog(args[1:])
	case "list", "ls":
		return c.listLogs(args[1:])
	case "search":
		return c.searchLogs(args[1:])
	case "show":
		return c.showLog(args[1:])
	case "copy":
		return c.copyLog(args[1:])
	case "clear":
		return c.clearLogs(args[1:])
	default:
		return errors.InvalidCommandError("log", fmt.Sprintf("unknown subcommand %q", args[0])).
			WithDetails("use 'help log' for usage information")
	}
}

// addLog records a new entry
func (c *CLI) addLog(args []string) error {
	var event, win, next string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--event", "-e":
			if i+1 < len(args) {
				event = args[i+1]
				i++
			}
		case "--win", "-w":
			if i+1 < len(args) {
				win = args[i+1]
				i++
			}
		case "--next", "-n":
			if i+1 < len(args) {
				next = args[i+1]
				i++
			}
		}
	}

	entry, err := c.service.SubmitLog(event, win, next)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Recorded: %s\n", c.renderer.EntryLine(entry))
	return nil
}

// listLogs prints every entry, newest first
func (c *CLI) listLogs(args []string) error {
	format, err := parseFormat(args)
	if err != nil {
		return err
	}
	return c.formatLogs(c.service.ListLogs(), format)
}

// searchLogs prints the entries matching a fuzzy query
func (c *CLI) searchLogs(args []string) error {
	format, err := parseFormat(args)
	if err != nil {
		return err
	}

	var parts []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--format" || args[i] == "-f" {
			i++
			continue
		}
		parts = append(parts, args[i])
	}
	if len(parts) == 0 {
		return errors.MissingFieldError("query")
	}

	return c.formatLogs(c.service.SearchLogs(strings.Join(parts, " ")), format)
}

// showLog prints one entry in full
func (c *CLI) showLog(args []string) error {
	format, err := parseFormat(args)
	if err != nil {
		return err
	}
	entry, err := c.logAt(args)
	if err != nil {
		return err
	}

	if format == "json" {
		return json.NewEncoder(c.out).Encode(entry)
	}
	fmt.Fprint(c.out, c.renderer.EntryText(entry))
	return nil
}

// copyLog copies one entry to the clipboard as plain text
func (c *CLI) copyLog(args []string) error {
	entry, err := c.logAt(args)
	if err != nil {
		return err
	}

	if err := c.copy(c.renderer.EntryText(entry)); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Copied to clipboard!")
	return nil
}

// clearLogs erases the whole log after confirmation
func (c *CLI) clearLogs(args []string) error {
	logs := c.service.ListLogs()
	if len(logs) == 0 {
		fmt.Fprintln(c.out, view.EmptyLogsMessage)
		return nil
	}

	if !hasForce(args) && !c.confirm(fmt.Sprintf("Delete all %d entries? This cannot be undone.", len(logs))) {
		fmt.Fprintln(c.out, "Cancelled")
		return nil
	}

	if err := c.service.ClearLogs(); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted %d entries\n", len(logs))
	return nil
}

func (c *CLI) formatLogs(logs []models.LogEntry, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(c.out).Encode(logs)
	default:
		if len(logs) == 0 {
			fmt.Fprintln(c.out, view.EmptyLogsMessage)
			return nil
		}
		for i, entry := range logs {
			fmt.Fprintf(c.out, "%3d. %s\n", i+1, c.renderer.EntryLine(entry))
		}
	}
	return nil
}

func (c *CLI) logAt(args []string) (models.LogEntry, error) {
	logs := c.service.ListLogs()
	index, err := parseIndex(args, len(logs))
	if err != nil {
		return models.LogEntry{}, err
	}
	return logs[index], nil
}

func (c *CLI) handleTemplate(args []string) error {
	if len(args) == 0 {
		return c.listTemplates(nil)
	}

	switch args[0] {
	case "add", "create":
		return c.addTemplate(args[1:])
	case "list", "ls":
		return c.listTemplates(args[1:])
	case "delete", "rm":
		return c.deleteTemplate(args[1:])
	case "copy":
		return c.copyTemplate(args[1:])
	default:
		return errors.InvalidCommandError("template", fmt.Sprintf("unknown subcommand %q", args[0])).
			WithDetails("use 'help template' for usage information")
	}
}

// addTemplate appends a new template
func (c *CLI) addTemplate(args []string) error {
	var name, content string
	var fromStdin bool

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--name":
			if i+1 < len(args) {
				name = args[i+1]
				i++
			}
		case "--content":
			if i+1 < len(args) {
				content = args[i+1]
				i++
			}
		case "--stdin":
			fromStdin = true
		}
	}

	if fromStdin {
		data, err := io.ReadAll(c.in)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(data)
	}

	template, err := c.service.AddTemplate(name, content)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Added template: %s\n", template.Title())
	return nil
}

// listTemplates prints templates in creation order
func (c *CLI) listTemplates(args []string) error {
	format, err := parseFormat(args)
	if err != nil {
		return err
	}
	templates := c.service.ListTemplates()

	switch format {
	case "json":
		return json.NewEncoder(c.out).Encode(templates)
	default:
		v := view.RenderTemplates(templates, 0)
		if v.Placeholder != "" {
			fmt.Fprintln(c.out, v.Placeholder)
			return nil
		}
		for _, item := range v.Items {
			fmt.Fprintf(c.out, "%3d. %s\n", item.Index+1, item.Name)
			fmt.Fprintf(c.out, "     %s\n", item.Preview)
		}
	}
	return nil
}

// deleteTemplate removes a template by its 1-based list position
func (c *CLI) deleteTemplate(args []string) error {
	templates := c.service.ListTemplates()
	index, err := parseIndex(args, len(templates))
	if err != nil {
		return err
	}

	name := templates[index].Title()
	if !hasForce(args) && !c.confirm(fmt.Sprintf("Delete template '%s'?", name)) {
		fmt.Fprintln(c.out, "Cancelled")
		return nil
	}

	if err := c.service.DeleteTemplate(index); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Deleted template: %s\n", name)
	return nil
}

// copyTemplate copies a template's content to the clipboard
func (c *CLI) copyTemplate(args []string) error {
	templates := c.service.ListTemplates()
	index, err := parseIndex(args, len(templates))
	if err != nil {
		return err
	}

	if err := c.copy(templates[index].Content); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Copied to clipboard!")
	return nil
}

// handleExport writes both stores as one document
func (c *CLI) handleExport(args []string) error {
	format := service.FormatJSON
	var outputFile string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format", "-f":
			if i+1 < len(args) {
				format = args[i+1]
				i++
			}
		case "--output", "-o":
			if i+1 < len(args) {
				outputFile = args[i+1]
				i++
			}
		}
	}

	output, err := c.service.Export(format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, output, 0644); err != nil {
			return errors.StorageError("export", err)
		}
		fmt.Fprintf(c.out, "Exported to %s\n", outputFile)
		return nil
	}

	_, err = c.out.Write(output)
	return err
}

// confirm asks a y/N question unless confirmations are switched off
func (c *CLI) confirm(question string) bool {
	if !c.service.Config().ConfirmDestructive {
		return true
	}

	fmt.Fprintf(c.out, "%s (y/N): ", question)
	response, _ := c.in.ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// parseFormat reads the listing format flag. Only text and json are valid.
func parseFormat(args []string) (string, error) {
	format := "text"
	for i, arg := range args {
		if (arg == "--format" || arg == "-f") && i+1 < len(args) {
			format = strings.ToLower(args[i+1])
			break
		}
	}

	switch format {
	case "text", "json":
		return format, nil
	default:
		return "", errors.InvalidInputError(fmt.Sprintf("unsupported format: %s", format)).
			WithDetails("supported formats: text, json")
	}
}

func hasForce(args []string) bool {
	for _, arg := range args {
		if arg == "--force" {
			return true
		}
	}
	return false
}

// parseIndex reads the 1-based position in args[0] and returns it 0-based
func parseIndex(args []string, length int) (int, error) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return 0, errors.MissingFieldError("index")
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.InvalidInputError(fmt.Sprintf("invalid index: %s", args[0]))
	}
	if n < 1 || n > length {
		return 0, errors.InvalidInputError(fmt.Sprintf("no item at index %d", n)).
			WithContext("count", length)
	}
	return n - 1, nil
}
