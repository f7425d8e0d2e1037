package errors

import (
	"fmt"
	"strings"
)

// UserFriendlyError provides user-friendly error messages with context and hints
type UserFriendlyError struct {
	Message string
	Reason  string
	Hint    string
	Try     string
	Err     error
}

func (e UserFriendlyError) Error() string {
	var buf strings.Builder
	buf.WriteString(e.Message)
	if e.Reason != "" {
		buf.WriteString("\n  Reason: " + e.Reason)
	}
	if e.Hint != "" {
		buf.WriteString("\n  Hint: " + e.Hint)
	}
	if e.Try != "" {
		buf.WriteString("\n  Try: " + e.Try)
	}
	if e.Err != nil {
		buf.WriteString("\n  Details: " + e.Err.Error())
	}
	return buf.String()
}

func (e UserFriendlyError) Unwrap() error {
	return e.Err
}

// WrapInputError wraps input backend errors (pointer query, event posting)
func WrapInputError(err error, operation string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Input operation failed: %s", operation),
		Reason:  extractInputReason(err),
		Hint:    "Synthetic input needs a graphical session and, on macOS, Accessibility permission for the terminal",
		Try:     "Grant access in System Settings > Privacy & Security > Accessibility, then restart autoclick",
		Err:     err,
	}
}

// WrapPrefsError wraps preference store errors with the file involved
func WrapPrefsError(err error, prefsPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Preference store error in %s", prefsPath),
		Reason:  extractPrefsReason(err),
		Hint:    "Profiles are kept in memory for this session; saving will retry the file",
		Try:     fmt.Sprintf("Check permissions or remove the file: rm %s", prefsPath),
		Err:     err,
	}
}

// WrapConfigError wraps configuration errors with user-friendly context
func WrapConfigError(err error, configPath string) error {
	if err == nil {
		return nil
	}

	return UserFriendlyError{
		Message: fmt.Sprintf("Configuration error in %s", configPath),
		Reason:  err.Error(),
		Hint:    "Supported keys: prefs_path, hotkey.global, hotkey.local, hotkey.debounce_ms, logging.level, logging.file",
		Try:     fmt.Sprintf("Start from defaults: autoclick --config %s --write-default-config", configPath),
		Err:     err,
	}
}

func extractInputReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "without CGO") || strings.Contains(errStr, "unavailable") {
		return "Input backend is not available in this build"
	}
	if strings.Contains(errStr, "display") || strings.Contains(errStr, "screen") {
		return "No active display - pointer location cannot be queried"
	}
	if strings.Contains(errStr, "permission") || strings.Contains(errStr, "not trusted") {
		return "The process is not allowed to post input events"
	}

	return "Input backend rejected the request"
}

func extractPrefsReason(err error) string {
	errStr := err.Error()

	if strings.Contains(errStr, "permission denied") {
		return "Permission denied - the file or its directory is not writable"
	}
	if strings.Contains(errStr, "no such file") {
		return "The directory does not exist"
	}
	if strings.Contains(errStr, "not a directory") {
		return "A parent of the file is not a directory"
	}
	if strings.Contains(errStr, "parse prefs") || strings.Contains(errStr, "yaml: ") {
		return "The file is not a valid key-value mapping"
	}

	return "Reading or writing the preference file failed"
}
