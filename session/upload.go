package session

import (
	"context"
	"io"
	"log"
	"sync"

	"nlsqlchat/client"
	"nlsqlchat/metrics"
	"nlsqlchat/models"
	"nlsqlchat/validation"
)

const uploadFallbackMessage = "Error uploading file. Please try again."

// UploadBackend is the part of the backend the upload flow needs.
type UploadBackend interface {
	UploadFile(ctx context.Context, filename string, file io.Reader, onProgress client.ProgressFunc) (*models.UploadResponse, error)
	GetSchema(ctx context.Context) (models.Schema, error)
}

// File is a user-selected file. Size is used only for the local size check.
type File struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// SuccessFunc receives the schema and table name once both backend calls succeeded.
type SuccessFunc func(schema models.Schema, tableName string) error

// UploadStatus is a point-in-time copy of the uploader's state.
type UploadStatus struct {
	State    UploadState
	FileName string
	FileSize int64
	Progress int
	Error    string
}

// Uploader validates a file, sends it, then fetches the schema the backend built from it.
type Uploader struct {
	backend   UploadBackend
	maxSize   int64
	onSuccess SuccessFunc

	mu       sync.Mutex
	state    UploadState
	fileName string
	fileSize int64
	progress int
	errMsg   string
}

func NewUploader(backend UploadBackend, maxSize int64, onSuccess SuccessFunc) *Uploader {
	return &Uploader{
		backend:   backend,
		maxSize:   maxSize,
		onSuccess: onSuccess,
	}
}

// Select records the chosen file for display and clears any previous error.
func (u *Uploader) Select(name string, size int64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state.InFlight() {
		return
	}
	u.fileName = name
	u.fileSize = size
	u.errMsg = ""
}

// Submit runs the upload then the schema fetch. Validation failures never reach the backend.
// A submission while another is in flight returns ErrBusy and leaves the running one alone.
func (u *Uploader) Submit(ctx context.Context, f *File) error {
	u.mu.Lock()
	if u.state.InFlight() {
		u.mu.Unlock()
		return ErrBusy
	}

	var name string
	var size int64
	if f != nil && f.Reader != nil {
		name, size = f.Name, f.Size
	}
	if err := validation.ValidateUploadFile(name, size, u.maxSize); err != nil {
		u.state = UploadFailed
		u.errMsg = err.Error()
		u.mu.Unlock()
		metrics.ValidationFailure("upload")
		return err
	}

	u.state = UploadUploading
	u.fileName = name
	u.fileSize = size
	u.progress = 0
	u.errMsg = ""
	u.mu.Unlock()

	resp, err := u.backend.UploadFile(ctx, name, f.Reader, u.setProgress)
	if err != nil {
		return u.fail(err)
	}

	u.mu.Lock()
	u.state = UploadAwaitingSchema
	u.progress = 100
	u.mu.Unlock()

	schema, err := u.backend.GetSchema(ctx)
	if err != nil {
		return u.fail(err)
	}

	if u.onSuccess != nil {
		if err := u.onSuccess(schema, resp.TableName); err != nil {
			return u.fail(err)
		}
	}

	u.mu.Lock()
	u.state = UploadSucceeded
	u.mu.Unlock()
	log.Printf("[UPLOAD] %s loaded as table %q", name, resp.TableName)
	return nil
}

func (u *Uploader) setProgress(pct int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == UploadUploading {
		u.progress = pct
	}
}

func (u *Uploader) fail(err error) error {
	log.Printf("[UPLOAD] upload error: %v", err)
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = UploadFailed
	u.errMsg = client.UserMessage(err, uploadFallbackMessage)
	return err
}

func (u *Uploader) Status() UploadStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	return UploadStatus{
		State:    u.state,
		FileName: u.fileName,
		FileSize: u.fileSize,
		Progress: u.progress,
		Error:    u.errMsg,
	}
}
