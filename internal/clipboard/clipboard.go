// Package clipboard copies debrief text to the system clipboard through the
// platform's command-line utility.
package clipboard

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/dpshade/pocket-debrief/internal/errors"
)

// Tool is one clipboard utility invocation
type Tool struct {
	Name string
	Args []string
}

func (t Tool) String() string {
	return strings.Join(append([]string{t.Name}, t.Args...), " ")
}

// ToolsFor lists the utilities tried on goos, in order of preference
func ToolsFor(goos string) []Tool {
	switch goos {
	case "darwin":
		return []Tool{{Name: "pbcopy"}}
	case "windows":
		return []Tool{{Name: "cmd", Args: []string{"/c", "clip"}}}
	case "linux", "freebsd", "openbsd", "netbsd":
		return []Tool{
			{Name: "wl-copy"},
			{Name: "xclip", Args: []string{"-selection", "clipboard"}},
			{Name: "xsel", Args: []string{"--clipboard", "--input"}},
		}
	default:
		return nil
	}
}

// Copier writes text to the first working clipboard tool
type Copier struct {
	tools    []Tool
	lookPath func(string) (string, error)
	run      func(tool Tool, input string) error
}

// New creates a copier for the running platform
func New() *Copier {
	return &Copier{
		tools:    ToolsFor(runtime.GOOS),
		lookPath: exec.LookPath,
		run:      runTool,
	}
}

// Available reports whether any clipboard tool is installed
func (c *Copier) Available() bool {
	for _, tool := range c.tools {
		if _, err := c.lookPath(tool.Name); err == nil {
			return true
		}
	}
	return false
}

// Copy writes text to the clipboard. Installed tools are tried in order until
// one succeeds.
func (c *Copier) Copy(text string) error {
	var lastErr error
	for _, tool := range c.tools {
		if _, err := c.lookPath(tool.Name); err != nil {
			continue
		}
		if err := c.run(tool, text); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", tool.Name, err)
			continue
		}
		return nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no clipboard utility found on %s", runtime.GOOS)
	}
	return errors.ClipboardUnavailableError(lastErr).WithDetails(InstallHint(runtime.GOOS))
}

// Copy writes text to the system clipboard
func Copy(text string) error {
	return New().Copy(text)
}

// InstallHint tells the user which utility to install on goos
func InstallHint(goos string) string {
	switch goos {
	case "darwin":
		return "pbcopy ships with macOS"
	case "windows":
		return "clip ships with Windows"
	case "linux", "freebsd", "openbsd", "netbsd":
		return "install wl-clipboard (Wayland), xclip or xsel"
	default:
		return fmt.Sprintf("clipboard not supported on %s", goos)
	}
}

func runTool(tool Tool, input string) error {
	cmd := exec.Command(tool.Name, tool.Args...)
	cmd.Stdin = strings.NewReader(input)
	return cmd.Run()
}
