package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"nlsqlchat/client"
	"nlsqlchat/models"
)

// fakeBackend records calls in order and returns canned answers.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	tableName string
	uploadErr error
	schema    models.Schema
	schemaErr error

	queryResp *models.QueryResponse
	queryErr  error
	queries   []string

	// block, when set, holds QueryNL and UploadFile until closed.
	block chan struct{}
	// entered is signalled once a blocking call has started.
	entered chan struct{}
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) wait() {
	if f.block == nil {
		return
	}
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	<-f.block
}

func (f *fakeBackend) UploadFile(ctx context.Context, filename string, file io.Reader, onProgress client.ProgressFunc) (*models.UploadResponse, error) {
	f.record("upload:" + filename)
	if _, err := io.ReadAll(file); err != nil {
		return nil, err
	}
	if onProgress != nil {
		onProgress(0)
		onProgress(50)
		onProgress(100)
	}
	f.wait()
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return &models.UploadResponse{TableName: f.tableName}, nil
}

func (f *fakeBackend) GetSchema(ctx context.Context) (models.Schema, error) {
	f.record("schema")
	if f.schemaErr != nil {
		return nil, f.schemaErr
	}
	return f.schema, nil
}

func (f *fakeBackend) QueryNL(ctx context.Context, query string) (*models.QueryResponse, error) {
	f.record("query")
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	f.wait()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	return f.queryResp, nil
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func makeRows(n int) []models.Row {
	rows := make([]models.Row, n)
	for i := range rows {
		rows[i] = models.Row{"id": i, "amount": fmt.Sprintf("%d.00", i*10)}
	}
	return rows
}
