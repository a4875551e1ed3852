package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlsqlchat/client"
	"nlsqlchat/models"
	"nlsqlchat/validation"
)

func salesBackend() *fakeBackend {
	return &fakeBackend{
		tableName: "sales",
		schema:    models.Schema{"sales": {Columns: []string{"id", "amount"}}},
	}
}

func csvFile(name string) *File {
	data := "id,amount\n1,10\n"
	return &File{Name: name, Size: int64(len(data)), Reader: strings.NewReader(data)}
}

func TestUploader_RejectsBadExtensionWithoutRequests(t *testing.T) {
	for _, name := range []string{"notes.txt", "image.PNG", "archive.csv.zip", "noext"} {
		t.Run(name, func(t *testing.T) {
			backend := salesBackend()
			u := NewUploader(backend, 0, nil)

			err := u.Submit(context.Background(), csvFile(name))

			require.Error(t, err)
			assert.True(t, validation.IsValidationError(err))
			assert.Empty(t, backend.Calls())

			st := u.Status()
			assert.Equal(t, UploadFailed, st.State)
			assert.Equal(t, validation.MsgBadExtension, st.Error)
		})
	}
}

func TestUploader_NoFileSelected(t *testing.T) {
	backend := salesBackend()
	u := NewUploader(backend, 0, nil)

	err := u.Submit(context.Background(), nil)
	assert.EqualError(t, err, validation.MsgNoFile)
	assert.Empty(t, backend.Calls())
}

func TestUploader_TooLarge(t *testing.T) {
	backend := salesBackend()
	u := NewUploader(backend, 4, nil)

	err := u.Submit(context.Background(), csvFile("data.csv"))
	assert.True(t, validation.IsValidationError(err))
	assert.Empty(t, backend.Calls())
}

func TestUploader_SuccessCallsUploadThenSchema(t *testing.T) {
	backend := salesBackend()

	var gotSchema models.Schema
	var gotTable string
	calls := 0
	u := NewUploader(backend, 1024, func(schema models.Schema, table string) error {
		calls++
		gotSchema, gotTable = schema, table
		return nil
	})

	require.NoError(t, u.Submit(context.Background(), csvFile("Data.CSV")))

	assert.Equal(t, []string{"upload:Data.CSV", "schema"}, backend.Calls())
	assert.Equal(t, 1, calls)
	assert.Equal(t, "sales", gotTable)
	assert.Equal(t, backend.schema, gotSchema)

	st := u.Status()
	assert.Equal(t, UploadSucceeded, st.State)
	assert.Equal(t, 100, st.Progress)
	assert.Empty(t, st.Error)
	assert.Equal(t, "Data.CSV", st.FileName)
}

func TestUploader_UploadFailureIsRetryable(t *testing.T) {
	backend := salesBackend()
	backend.uploadErr = &client.APIError{StatusCode: 500, Message: "Excel file is corrupt"}
	succeeded := false
	u := NewUploader(backend, 0, func(models.Schema, string) error {
		succeeded = true
		return nil
	})

	require.Error(t, u.Submit(context.Background(), csvFile("data.xlsx")))
	st := u.Status()
	assert.Equal(t, UploadFailed, st.State)
	assert.Equal(t, "Excel file is corrupt", st.Error)
	assert.False(t, succeeded)
	assert.Equal(t, []string{"upload:data.xlsx"}, backend.Calls(), "schema must not be fetched after a failed upload")

	backend.uploadErr = nil
	require.NoError(t, u.Submit(context.Background(), csvFile("data.xlsx")))
	assert.True(t, succeeded)
	assert.Equal(t, UploadSucceeded, u.Status().State)
}

func TestUploader_SchemaFailureUsesFallback(t *testing.T) {
	backend := salesBackend()
	backend.schemaErr = context.DeadlineExceeded
	u := NewUploader(backend, 0, nil)

	require.Error(t, u.Submit(context.Background(), csvFile("data.xls")))
	st := u.Status()
	assert.Equal(t, UploadFailed, st.State)
	assert.Equal(t, uploadFallbackMessage, st.Error)
}

func TestUploader_BusyWhileInFlight(t *testing.T) {
	backend := salesBackend()
	backend.block = make(chan struct{})
	backend.entered = make(chan struct{}, 1)
	u := NewUploader(backend, 0, nil)

	done := make(chan error, 1)
	go func() { done <- u.Submit(context.Background(), csvFile("data.csv")) }()

	<-backend.entered
	assert.Equal(t, UploadUploading, u.Status().State)
	assert.ErrorIs(t, u.Submit(context.Background(), csvFile("other.csv")), ErrBusy)

	close(backend.block)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"upload:data.csv", "schema"}, backend.Calls())
}

func TestUploader_SelectClearsError(t *testing.T) {
	u := NewUploader(salesBackend(), 0, nil)
	_ = u.Submit(context.Background(), csvFile("bad.doc"))
	require.NotEmpty(t, u.Status().Error)

	u.Select("good.csv", 2048)
	st := u.Status()
	assert.Empty(t, st.Error)
	assert.Equal(t, "good.csv", st.FileName)
	assert.Equal(t, int64(2048), st.FileSize)
}
