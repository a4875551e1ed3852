package models

// TableSchema is one entry of the backend's /schema response.
type TableSchema struct {
	Columns    []string        `json:"columns"`
	SampleData [][]interface{} `json:"sample_data,omitempty"`
}

// Schema maps table name to its declared columns.
type Schema map[string]TableSchema

// Columns returns the declared columns of table, or nil when the table is unknown.
func (s Schema) Columns(table string) []string {
	if s == nil {
		return nil
	}
	return s[table].Columns
}

// Row is a single result row keyed by column name.
type Row map[string]interface{}

type UploadResponse struct {
	Success   bool   `json:"success,omitempty"`
	Message   string `json:"message,omitempty"`
	TableName string `json:"table_name"`
	RowCount  int    `json:"row_count,omitempty"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

type QueryResponse struct {
	SQLQuery string `json:"sql_query"`
	Results  []Row  `json:"results"`
	Count    int    `json:"count,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HistoryEntry struct {
	Query     string `json:"query"`
	SQL       string `json:"sql"`
	Timestamp string `json:"timestamp"`
}

// ResultPage is one page of the current result set.
type ResultPage struct {
	Page       int      `json:"page"`
	TotalPages int      `json:"total_pages"`
	TotalRows  int      `json:"total_rows"`
	Columns    []string `json:"columns"`
	Rows       []Row    `json:"rows"`
}

// SessionSnapshot is the JSON view of one browser session.
type SessionSnapshot struct {
	TableLoaded    bool     `json:"table_loaded"`
	TableName      string   `json:"table_name,omitempty"`
	Columns        []string `json:"columns,omitempty"`
	UploadState    string   `json:"upload_state"`
	UploadProgress int      `json:"upload_progress"`
	UploadError    string   `json:"upload_error,omitempty"`
	ChatState      string   `json:"chat_state,omitempty"`
	ChatError      string   `json:"chat_error,omitempty"`
	SQL            string   `json:"sql,omitempty"`
	HistoryCount   int      `json:"history_count"`
}
