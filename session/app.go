// Package session holds the per-user state machines behind both front ends:
// an Uploader that loads one table, then a Chat that asks questions about it.
package session

import (
	"context"
	"sync"
	"time"

	"nlsqlchat/models"
)

// Backend is everything the App needs from the NL-to-SQL service.
type Backend interface {
	UploadBackend
	QueryBackend
}

type Options struct {
	MaxUploadSize int64
	PageSize      int
	HistoryLimit  int
	Now           func() time.Time
}

// App is the root of one session. It starts in NoTableLoaded and moves to TableLoaded
// exactly once, when the upload flow succeeds. There is no way back.
type App struct {
	backend  Backend
	opts     Options
	uploader *Uploader

	mu        sync.Mutex
	state     AppState
	schema    models.Schema
	tableName string
	chat      *Chat
}

func NewApp(backend Backend, opts Options) *App {
	a := &App{backend: backend, opts: opts}
	a.uploader = NewUploader(backend, opts.MaxUploadSize, a.loadTable)
	return a
}

func (a *App) loadTable(schema models.Schema, tableName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == TableLoaded {
		return ErrTableLoaded
	}
	a.state = TableLoaded
	a.schema = schema
	a.tableName = tableName
	a.chat = NewChat(a.backend, schema, tableName, ChatConfig{
		PageSize:     a.opts.PageSize,
		HistoryLimit: a.opts.HistoryLimit,
		Now:          a.opts.Now,
	})
	return nil
}

func (a *App) Uploader() *Uploader {
	return a.uploader
}

// Upload submits f through the uploader. Once a table is loaded further uploads are refused.
func (a *App) Upload(ctx context.Context, f *File) error {
	if a.State() == TableLoaded {
		return ErrTableLoaded
	}
	if f != nil {
		a.uploader.Select(f.Name, f.Size)
	}
	return a.uploader.Submit(ctx, f)
}

// Chat returns the chat for the loaded table, or ErrNoTable.
func (a *App) Chat() (*Chat, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.chat == nil {
		return nil, ErrNoTable
	}
	return a.chat, nil
}

func (a *App) State() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *App) TableName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tableName
}

func (a *App) Schema() models.Schema {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.schema
}

// Snapshot summarises the session for the JSON API.
func (a *App) Snapshot() models.SessionSnapshot {
	up := a.uploader.Status()
	snap := models.SessionSnapshot{
		UploadState:    up.State.String(),
		UploadProgress: up.Progress,
		UploadError:    up.Error,
	}

	chat, err := a.Chat()
	if err != nil {
		return snap
	}
	st := chat.Status()
	snap.TableLoaded = true
	snap.TableName = chat.TableName()
	snap.Columns = chat.DeclaredColumns()
	snap.ChatState = st.State.String()
	snap.ChatError = st.Error
	snap.SQL = st.SQL
	snap.HistoryCount = len(chat.History())
	return snap
}
