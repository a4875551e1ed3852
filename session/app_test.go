package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlsqlchat/models"
)

func TestApp_StartsWithoutTable(t *testing.T) {
	app := NewApp(salesBackend(), Options{})

	assert.Equal(t, NoTableLoaded, app.State())
	_, err := app.Chat()
	assert.ErrorIs(t, err, ErrNoTable)

	snap := app.Snapshot()
	assert.False(t, snap.TableLoaded)
	assert.Equal(t, "idle", snap.UploadState)
}

func TestApp_UploadThenChat(t *testing.T) {
	backend := salesBackend()
	backend.queryResp = &models.QueryResponse{SQLQuery: "SELECT * FROM sales LIMIT 200", Results: makeRows(120)}
	app := NewApp(backend, Options{PageSize: 50, HistoryLimit: 100})

	require.NoError(t, app.Upload(context.Background(), csvFile("data.csv")))

	assert.Equal(t, TableLoaded, app.State())
	assert.Equal(t, "sales", app.TableName())
	assert.Equal(t, backend.schema, app.Schema())

	chat, err := app.Chat()
	require.NoError(t, err)
	assert.Equal(t, "sales", chat.TableName())
	assert.Equal(t, []string{"id", "amount"}, chat.DeclaredColumns())

	require.NoError(t, chat.Submit(context.Background(), "top 5 rows"))
	page := chat.CurrentPage()
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, chat.History(), 1)

	snap := app.Snapshot()
	assert.True(t, snap.TableLoaded)
	assert.Equal(t, "sales", snap.TableName)
	assert.Equal(t, "success", snap.ChatState)
	assert.Equal(t, 1, snap.HistoryCount)
	assert.Equal(t, "succeeded", snap.UploadState)
}

func TestApp_NoReverseTransition(t *testing.T) {
	backend := salesBackend()
	app := NewApp(backend, Options{})
	require.NoError(t, app.Upload(context.Background(), csvFile("data.csv")))
	first, _ := app.Chat()

	assert.ErrorIs(t, app.Upload(context.Background(), csvFile("other.csv")), ErrTableLoaded)
	assert.ErrorIs(t, app.loadTable(models.Schema{}, "other"), ErrTableLoaded)

	second, _ := app.Chat()
	assert.Same(t, first, second)
	assert.Equal(t, "sales", app.TableName())
	assert.Equal(t, []string{"upload:data.csv", "schema"}, backend.Calls())
}

func TestApp_FailedUploadStaysOnUpload(t *testing.T) {
	backend := salesBackend()
	backend.schemaErr = context.Canceled
	app := NewApp(backend, Options{})

	require.Error(t, app.Upload(context.Background(), csvFile("data.csv")))
	assert.Equal(t, NoTableLoaded, app.State())
	assert.Equal(t, "failed", app.Snapshot().UploadState)
}

func TestApp_UploadRecordsSelectedFile(t *testing.T) {
	backend := salesBackend()
	app := NewApp(backend, Options{})

	require.Error(t, app.Upload(context.Background(), csvFile("report.pdf")))
	st := app.Uploader().Status()
	assert.Equal(t, "report.pdf", st.FileName)
	assert.Equal(t, int64(len("id,amount\n1,10\n")), st.FileSize)
	assert.NotEmpty(t, st.Error)

	require.NoError(t, app.Upload(context.Background(), csvFile("data.csv")))
	st = app.Uploader().Status()
	assert.Equal(t, "data.csv", st.FileName)
	assert.Empty(t, st.Error)
}
