package errors

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// ErrorHandler provides interface-specific error handling
type ErrorHandler interface {
	HandleError(err error) error
	FormatError(err error) string
}

// CLIErrorHandler handles errors for CLI interface
type CLIErrorHandler struct {
	Verbose bool
}

// NewCLIErrorHandler creates a new CLI error handler
func NewCLIErrorHandler(verbose bool) *CLIErrorHandler {
	return &CLIErrorHandler{
		Verbose: verbose,
	}
}

// HandleError records the error and returns it formatted for the terminal
func (h *CLIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)

	logToFile(appErr)
	if h.Verbose {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s\n", appErr.Severity, appErr.Code, appErr.Error())
		if appErr.Cause != nil {
			fmt.Fprintf(os.Stderr, "Caused by: %v\n", appErr.Cause)
		}
	}

	return fmt.Errorf("%s", h.FormatError(err))
}

// FormatError formats an error for CLI display. Errors that are not an
// AppError keep their own text.
func (h *CLIErrorHandler) FormatError(err error) string {
	if !IsAppError(err) {
		return fmt.Sprintf("ERROR: %v", err)
	}
	appErr := GetAppError(err)

	switch appErr.Severity {
	case SeverityCritical:
		return fmt.Sprintf("CRITICAL: %s", appErr.Message)
	case SeverityError:
		return fmt.Sprintf("ERROR: %s", appErr.Message)
	case SeverityWarning:
		return fmt.Sprintf("WARNING: %s", appErr.Message)
	case SeverityInfo:
		return fmt.Sprintf("INFO: %s", appErr.Message)
	default:
		return appErr.Message
	}
}

// TUIErrorHandler handles errors for TUI interface
type TUIErrorHandler struct {
	ShowDetails bool
}

// NewTUIErrorHandler creates a new TUI error handler
func NewTUIErrorHandler(showDetails bool) *TUIErrorHandler {
	return &TUIErrorHandler{
		ShowDetails: showDetails,
	}
}

// HandleError logs the error to the error log; the terminal belongs to the TUI
func (h *TUIErrorHandler) HandleError(err error) error {
	appErr := GetAppError(err)
	logToFile(appErr)
	return appErr
}

// FormatError formats an error for TUI display
func (h *TUIErrorHandler) FormatError(err error) string {
	appErr := GetAppError(err)

	message := appErr.Message
	if h.ShowDetails && appErr.Details != "" {
		message = fmt.Sprintf("%s\nDetails: %s", message, appErr.Details)
	}

	return message
}

// StatusType maps the error severity onto one of the status kinds the TUI
// knows how to style ("error", "warning" or "info")
func (h *TUIErrorHandler) StatusType(err error) string {
	switch GetAppError(err).Severity {
	case SeverityCritical, SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

var (
	logMu  sync.Mutex
	logDir string
)

// SetLogDir points the error log at <dir>/logs/error.log. An empty dir
// disables file logging.
func SetLogDir(dir string) {
	logMu.Lock()
	defer logMu.Unlock()
	if dir == "" {
		logDir = ""
		return
	}
	logDir = filepath.Join(dir, "logs")
}

// Log records err in the error log without surfacing it anywhere else
func Log(err error) {
	if err == nil {
		return
	}
	logToFile(GetAppError(err))
}

// LogWarning records a non-fatal problem, such as a malformed stored value,
// that must not interrupt the user
func LogWarning(format string, args ...interface{}) {
	writeLogLine("[warning] " + fmt.Sprintf(format, args...))
}

// logToFile logs errors to a file for debugging
func logToFile(appErr *AppError) {
	line := fmt.Sprintf("[%s] [%s] %s: %s",
		appErr.Severity,
		appErr.Category,
		appErr.Code,
		appErr.Error())

	if appErr.Cause != nil {
		line += fmt.Sprintf(" | Cause: %v", appErr.Cause)
	}

	if appErr.Context != nil {
		contextJSON, _ := json.Marshal(appErr.Context)
		line += fmt.Sprintf(" | Context: %s", string(contextJSON))
	}

	writeLogLine(line)
}

func writeLogLine(line string) {
	logMu.Lock()
	defer logMu.Unlock()

	if logDir == "" {
		return
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return // Fail silently if we can't create log directory
	}

	file, err := os.OpenFile(filepath.Join(logDir, "error.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer file.Close()

	logger := log.New(file, "", log.LstdFlags)
	logger.Println(line)
}
