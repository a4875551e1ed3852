package validation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUploadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		size    int64
		max     int64
		wantErr string
	}{
		{name: "csv", file: "data.csv", size: 10, max: 100},
		{name: "upper case xlsx", file: "Report.XLSX", size: 10, max: 100},
		{name: "xls", file: "old.xls", size: 10, max: 100},
		{name: "multiple dots", file: "sales.2024.Csv", size: 10, max: 100},
		{name: "no file", file: "", wantErr: MsgNoFile},
		{name: "blank name", file: "   ", wantErr: MsgNoFile},
		{name: "pdf", file: "notes.pdf", wantErr: MsgBadExtension},
		{name: "no extension", file: "csv", wantErr: MsgBadExtension},
		{name: "extension inside name", file: "data.csv.exe", wantErr: MsgBadExtension},
		{name: "trailing dot", file: "data.", wantErr: MsgBadExtension},
		{name: "too large", file: "big.csv", size: 3 * 1024 * 1024, max: 1024 * 1024, wantErr: "File is too large (3.00 MB, limit 1.00 MB)"},
		{name: "size check disabled", file: "big.csv", size: 1 << 40, max: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUploadFile(tt.file, tt.size, tt.max)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestValidateQuery(t *testing.T) {
	assert.NoError(t, ValidateQuery("top 5 rows"))

	for _, q := range []string{"", " ", "\t\n  "} {
		err := ValidateQuery(q)
		assert.EqualError(t, err, MsgEmptyQuery, "query %q", q)
	}
}

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("upload: %w", &Error{Message: "x"})
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "0.00 MB", FormatSize(0))
	assert.Equal(t, "1.50 MB", FormatSize(1536*1024))
}
