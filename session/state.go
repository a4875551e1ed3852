package session

import "errors"

var (
	// ErrBusy is returned when a submission arrives while another one is still in flight.
	ErrBusy = errors.New("a request is already in progress")
	// ErrTableLoaded is returned when a second upload success reaches an App that already has a table.
	ErrTableLoaded = errors.New("a table is already loaded")
	// ErrNoTable is returned by chat operations before any table has been loaded.
	ErrNoTable = errors.New("no table loaded")
	// ErrHistoryIndex is returned when a rerun names a history entry that does not exist.
	ErrHistoryIndex = errors.New("history entry not found")
)

// UploadState is the lifecycle of one upload submission.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadUploading
	UploadAwaitingSchema
	UploadSucceeded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadUploading:
		return "uploading"
	case UploadAwaitingSchema:
		return "awaiting_schema"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// InFlight reports whether a request for this submission is outstanding.
func (s UploadState) InFlight() bool {
	return s == UploadUploading || s == UploadAwaitingSchema
}

// ChatState is the lifecycle of the most recent question.
type ChatState int

const (
	ChatIdle ChatState = iota
	ChatSubmitting
	ChatSuccess
	ChatFailed
)

func (s ChatState) String() string {
	switch s {
	case ChatIdle:
		return "idle"
	case ChatSubmitting:
		return "submitting"
	case ChatSuccess:
		return "success"
	case ChatFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AppState says whether a table has been loaded yet.
type AppState int

const (
	NoTableLoaded AppState = iota
	TableLoaded
)

func (s AppState) String() string {
	if s == TableLoaded {
		return "table_loaded"
	}
	return "no_table_loaded"
}
