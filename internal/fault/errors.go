// Package fault defines the error types surfaced to the CLI.
package fault

import (
	"errors"
	"fmt"
)

// Exit codes returned by the CLI.
const (
	ExitGeneral    = 1
	ExitUsage      = 2
	ExitNetwork    = 3
	ExitFilesystem = 4
	ExitExtract    = 5
)

// NetworkError reports a transport failure or an unexpected HTTP status.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (err *NetworkError) Error() string {
	if err.Status != 0 {
		return fmt.Sprintf("download %s: unexpected status %d", err.URL, err.Status)
	}
	return fmt.Sprintf("download %s: %v", err.URL, err.Err)
}

func (err *NetworkError) Unwrap() error {
	return err.Err
}

// Temporary reports whether retrying the request may succeed.
func (err *NetworkError) Temporary() bool {
	if err.Status == 0 {
		return true
	}
	return err.Status == 429 || err.Status >= 500
}

// ---------------------------

// FilesystemError reports a failed filesystem operation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (err *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", err.Op, err.Path, err.Err)
}

func (err *FilesystemError) Unwrap() error {
	return err.Err
}

// FS wraps err as a FilesystemError. It returns nil for a nil err.
func FS(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &FilesystemError{Op: op, Path: path, Err: err}
}

// ---------------------------

// ExtractError reports a corrupt or incomplete archive.
type ExtractError struct {
	Archive string
	Member  string
	Err     error
}

func (err *ExtractError) Error() string {
	if err.Member != "" {
		return fmt.Sprintf("extract %s from %s: %v", err.Member, err.Archive, err.Err)
	}
	return fmt.Sprintf("extract %s: %v", err.Archive, err.Err)
}

func (err *ExtractError) Unwrap() error {
	return err.Err
}

// ---------------------------

// UsageError reports invalid flags or configuration values.
type UsageError struct {
	Msg string
}

func (err *UsageError) Error() string {
	return err.Msg
}

// Usagef builds a UsageError.
func Usagef(format string, args ...any) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var (
		usageErr   *UsageError
		netErr     *NetworkError
		extractErr *ExtractError
		fsErr      *FilesystemError
	)
	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &netErr):
		return ExitNetwork
	case errors.As(err, &extractErr):
		return ExitExtract
	case errors.As(err, &fsErr):
		return ExitFilesystem
	default:
		return ExitGeneral
	}
}

// Hint returns a short suggestion for resolving err, or "".
func Hint(err error) string {
	var (
		netErr     *NetworkError
		extractErr *ExtractError
		fsErr      *FilesystemError
	)
	switch {
	case errors.As(err, &netErr):
		if netErr.Status != 0 {
			return "the word list source answered with an error; check the URL in the [sources] config section"
		}
		return "check your network connection and retry"
	case errors.As(err, &extractErr):
		return "the downloaded archive looks corrupt; retry with --redownload"
	case errors.As(err, &fsErr):
		return "check free disk space and permissions of the data directory"
	default:
		return ""
	}
}
