// Package runerr defines the fatal outcomes of an update run. The CLI boundary
// is the only place that turns them into a process exit status.
package runerr

import (
	"fmt"
)

const (
	CodeRemoteFetchFailure  = "REMOTE_FETCH_FAILURE"
	CodeNoStatsInResponse   = "NO_STATS_IN_RESPONSE"
	CodeNoRecognizedMarkers = "NO_RECOGNIZED_MARKERS"
	CodeMarkerNotFound      = "MARKER_NOT_FOUND"
	CodeInvalidConfig       = "INVALID_CONFIG"
	CodeDocumentIOFailure   = "DOCUMENT_IO_FAILURE"
	CodeCommitFailure       = "COMMIT_FAILURE"
)

var (
	// ErrRemoteFetchFailure is returned when the stats could not be fetched from Todoist.
	ErrRemoteFetchFailure = New(CodeRemoteFetchFailure, "failed to fetch stats from Todoist")

	// ErrNoStatsInResponse is returned when the Todoist response has no stats object.
	ErrNoStatsInResponse = New(CodeNoStatsInResponse, "Todoist API did not return stats data")

	// ErrNoRecognizedMarkers is returned when the document has neither marker scheme.
	ErrNoRecognizedMarkers = New(CodeNoRecognizedMarkers, "cannot find any supported comment tags in the document")

	// ErrMarkerNotFound is returned when the combined block markers are missing or malformed.
	ErrMarkerNotFound = New(CodeMarkerNotFound, "cannot find the comment tag pair in the document")

	// ErrInvalidConfig is returned when the configuration is incomplete or invalid.
	ErrInvalidConfig = New(CodeInvalidConfig, "invalid configuration")

	// ErrDocumentIOFailure is returned when the document could not be read or written.
	ErrDocumentIOFailure = New(CodeDocumentIOFailure, "failed to access the document")

	// ErrCommitFailure is returned when committing or pushing the document failed.
	ErrCommitFailure = New(CodeCommitFailure, "failed to commit the document")
)

type Extras map[string]interface{}

type RunError struct {
	ErrorCode string
	Message   string
	Extras    *Extras
	Cause     error
}

func New(errorCode string, message string) *RunError {
	return &RunError{
		ErrorCode: errorCode,
		Message:   message,
	}
}

func (e RunError) Msg(format string, parts ...interface{}) *RunError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e RunError) WithExtras(extras Extras) *RunError {
	e.Extras = &extras
	return &e
}

func (e RunError) Wrap(cause error) *RunError {
	e.Cause = cause
	return &e
}

func (e *RunError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.ErrorCode, e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

func (e *RunError) Unwrap() error {
	return e.Cause
}

// Is matches on ErrorCode so that errors.Is works against the package level
// sentinels even after Msg/WithExtras/Wrap produced a copy.
func (e *RunError) Is(target error) bool {
	t, ok := target.(*RunError)
	if !ok {
		return false
	}
	return e.ErrorCode == t.ErrorCode
}

// Extra returns the extra value stored under key, or nil.
func (e *RunError) Extra(key string) interface{} {
	if e.Extras == nil {
		return nil
	}
	return (*e.Extras)[key]
}
