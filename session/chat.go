package session

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"nlsqlchat/client"
	"nlsqlchat/metrics"
	"nlsqlchat/models"
	"nlsqlchat/validation"
)

const (
	queryFallbackMessage = "Error processing query. Please try again."
	// timestampLayout matches a browser's en-US toLocaleTimeString.
	timestampLayout = "3:04:05 PM"
)

// QueryBackend is the part of the backend the chat flow needs.
type QueryBackend interface {
	QueryNL(ctx context.Context, query string) (*models.QueryResponse, error)
}

type ChatConfig struct {
	PageSize     int
	HistoryLimit int
	// Now stamps history entries; defaults to time.Now.
	Now func() time.Time
}

// ChatStatus is a point-in-time copy of the chat's state, without the rows.
type ChatStatus struct {
	State     ChatState
	Query     string
	Error     string
	SQL       string
	TotalRows int
}

// Chat sends questions about one table and keeps the latest result set and the history.
type Chat struct {
	backend   QueryBackend
	schema    models.Schema
	tableName string
	pageSize  int
	now       func() time.Time

	mu      sync.Mutex
	state   ChatState
	query   string
	errMsg  string
	sql     string
	results []models.Row
	columns []string
	page    int
	history *History
}

func NewChat(backend QueryBackend, schema models.Schema, tableName string, cfg ChatConfig) *Chat {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 50
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 100
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Chat{
		backend:   backend,
		schema:    schema,
		tableName: tableName,
		pageSize:  cfg.PageSize,
		now:       cfg.Now,
		page:      1,
		history:   NewHistory(cfg.HistoryLimit),
	}
}

func (c *Chat) TableName() string {
	return c.tableName
}

// DeclaredColumns returns the loaded table's columns as the backend declared them.
func (c *Chat) DeclaredColumns() []string {
	return c.schema.Columns(c.tableName)
}

// Submit sends query to the backend.
func (c *Chat) Submit(ctx context.Context, query string) error {
	return c.submit(ctx, query)
}

// Rerun puts history entry i back into the query text and submits it again.
func (c *Chat) Rerun(ctx context.Context, i int) error {
	c.mu.Lock()
	entry, ok := c.history.At(i)
	c.mu.Unlock()
	if !ok {
		return ErrHistoryIndex
	}
	return c.submit(ctx, entry.Query)
}

func (c *Chat) submit(ctx context.Context, query string) error {
	c.mu.Lock()
	if c.state == ChatSubmitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.query = query
	if err := validation.ValidateQuery(query); err != nil {
		c.errMsg = err.Error()
		c.mu.Unlock()
		metrics.ValidationFailure("query")
		return err
	}
	c.state = ChatSubmitting
	c.errMsg = ""
	c.mu.Unlock()

	resp, err := c.backend.QueryNL(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		log.Printf("[CHAT] query error: %v", err)
		c.state = ChatFailed
		c.errMsg = client.UserMessage(err, queryFallbackMessage)
		return err
	}

	c.state = ChatSuccess
	c.sql = resp.SQLQuery
	c.results = resp.Results
	c.columns = ResultColumns(c.DeclaredColumns(), resp.Results)
	c.page = 1
	c.history.Add(models.HistoryEntry{
		Query:     query,
		SQL:       resp.SQLQuery,
		Timestamp: c.now().Format(timestampLayout),
	})
	log.Printf("[CHAT] %q returned %d rows", query, len(resp.Results))
	return nil
}

// SetPage moves to page, clamped to the available pages, and returns the page now shown.
func (c *Chat) SetPage(page int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = ClampPage(page, PageCount(len(c.results), c.pageSize))
	return c.page
}

func (c *Chat) NextPage() int {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	return c.SetPage(page + 1)
}

func (c *Chat) PrevPage() int {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	return c.SetPage(page - 1)
}

// CurrentPage slices the already fetched result set; it never calls the backend.
func (c *Chat) CurrentPage() models.ResultPage {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := len(c.results)
	start, end := PageBounds(c.page, c.pageSize, total)
	rows := make([]models.Row, end-start)
	copy(rows, c.results[start:end])

	columns := c.columns
	if columns == nil {
		columns = c.DeclaredColumns()
	}
	return models.ResultPage{
		Page:       c.page,
		TotalPages: PageCount(total, c.pageSize),
		TotalRows:  total,
		Columns:    append([]string(nil), columns...),
		Rows:       rows,
	}
}

func (c *Chat) History() []models.HistoryEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.history.Entries()
}

func (c *Chat) Status() ChatStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ChatStatus{
		State:     c.state,
		Query:     c.query,
		Error:     c.errMsg,
		SQL:       c.sql,
		TotalRows: len(c.results),
	}
}

// ResultColumns orders result columns by the declared schema first, then any
// other keys found in the rows (sorted), so computed columns are still shown.
// With no rows the declared columns are returned.
func ResultColumns(declared []string, rows []models.Row) []string {
	if len(rows) == 0 {
		return append([]string(nil), declared...)
	}

	seen := make(map[string]bool)
	for _, row := range rows {
		for key := range row {
			seen[key] = true
		}
	}

	columns := make([]string, 0, len(seen))
	for _, col := range declared {
		if seen[col] {
			columns = append(columns, col)
			delete(seen, col)
		}
	}

	extra := make([]string, 0, len(seen))
	for key := range seen {
		extra = append(extra, key)
	}
	sort.Strings(extra)
	return append(columns, extra...)
}
