package clipboard

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/dpshade/pocket-debrief/internal/errors"
)

func fakeCopier(installed map[string]bool, failing map[string]bool) (*Copier, *[]string) {
	var calls []string
	c := &Copier{
		tools: ToolsFor("linux"),
		lookPath: func(name string) (string, error) {
			if installed[name] {
				return "/usr/bin/" + name, nil
			}
			return "", fmt.Errorf("%s not found", name)
		},
		run: func(tool Tool, input string) error {
			calls = append(calls, tool.Name+":"+input)
			if failing[tool.Name] {
				return fmt.Errorf("exit status 1")
			}
			return nil
		},
	}
	return c, &calls
}

func TestCopyUsesFirstInstalledTool(t *testing.T) {
	c, calls := fakeCopier(map[string]bool{"xclip": true, "xsel": true}, nil)

	if err := c.Copy("What did I do today?"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	want := []string{"xclip:What did I do today?"}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("Expected %v, got %v", want, *calls)
	}
}

func TestCopyFallsBackOnFailure(t *testing.T) {
	c, calls := fakeCopier(
		map[string]bool{"wl-copy": true, "xsel": true},
		map[string]bool{"wl-copy": true},
	)

	if err := c.Copy("text"); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	want := []string{"wl-copy:text", "xsel:text"}
	if !reflect.DeepEqual(*calls, want) {
		t.Errorf("Expected %v, got %v", want, *calls)
	}
}

func TestCopyWithoutTools(t *testing.T) {
	c, calls := fakeCopier(nil, nil)

	if c.Available() {
		t.Error("Expected clipboard to be unavailable")
	}
	err := c.Copy("text")
	if err == nil {
		t.Fatal("Expected an error")
	}
	appErr := errors.GetAppError(err)
	if appErr.Code != errors.ErrCodeClipboardUnavailable {
		t.Errorf("Expected %s, got %s", errors.ErrCodeClipboardUnavailable, appErr.Code)
	}
	if len(*calls) != 0 {
		t.Errorf("Expected no tool to run, got %v", *calls)
	}
}

func TestCopyAllToolsFail(t *testing.T) {
	c, _ := fakeCopier(map[string]bool{"xclip": true}, map[string]bool{"xclip": true})

	err := c.Copy("text")
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(errors.GetAppError(err).Cause.Error(), "xclip failed") {
		t.Errorf("Expected the tool failure as cause, got %v", errors.GetAppError(err).Cause)
	}
}

func TestToolsFor(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"darwin", "pbcopy"},
		{"windows", "cmd /c clip"},
		{"linux", "wl-copy"},
		{"plan9", ""},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			tools := ToolsFor(tt.goos)
			got := ""
			if len(tools) > 0 {
				got = tools[0].String()
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
			if InstallHint(tt.goos) == "" {
				t.Error("Install hint should not be empty")
			}
		})
	}
}
