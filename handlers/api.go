package handlers

import (
	"net/http"
	"strconv"

	"nlsqlchat/models"
	"nlsqlchat/session"

	"github.com/gin-gonic/gin"
)

const (
	uploadFallback = "Error uploading file. Please try again."
	queryFallback  = "Error processing query. Please try again."
)

// UploadResult is returned once a file has been loaded as a table.
type UploadResult struct {
	TableName string        `json:"table_name"`
	Columns   []string      `json:"columns"`
	Schema    models.Schema `json:"schema"`
}

// QueryResult is returned after a successful question.
type QueryResult struct {
	SQLQuery string            `json:"sql_query"`
	Page     models.ResultPage `json:"page"`
}

// HistoryResult lists past questions, newest first.
type HistoryResult struct {
	History []models.HistoryEntry `json:"history"`
}

// GetSessionHandler returns the state of the caller's session
// @Summary      Session state
// @Description  Upload progress, loaded table, last SQL and error for the current session
// @Tags         Session
// @Produce      json
// @Param        X-Session-ID  header    string  false  "Session ID (defaults to the cookie session)"
// @Success      200           {object}  models.SessionSnapshot
// @Router       /api/session [get]
func (h *Handlers) GetSessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentApp(c).Snapshot())
}

// UploadHandler uploads a spreadsheet and loads it as the session's table
// @Summary      Upload a CSV or Excel file
// @Description  Validates the extension (csv, xlsx, xls), forwards the file to the backend, then fetches the schema
// @Tags         Session
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV or Excel file"
// @Success      200   {object}  UploadResult
// @Failure      400   {object}  models.ErrorResponse  "Validation error"
// @Failure      409   {object}  models.ErrorResponse  "Upload in progress or table already loaded"
// @Failure      502   {object}  models.ErrorResponse  "Backend error"
// @Router       /api/upload [post]
func (h *Handlers) UploadHandler(c *gin.Context) {
	app := currentApp(c)

	f, closeFile := formFile(c)
	defer closeFile()

	if err := app.Upload(c.Request.Context(), f); err != nil {
		h.abortWithError(c, err, uploadFallback)
		return
	}

	chat, err := app.Chat()
	if err != nil {
		h.abortWithError(c, err, uploadFallback)
		return
	}
	c.JSON(http.StatusOK, UploadResult{
		TableName: chat.TableName(),
		Columns:   chat.DeclaredColumns(),
		Schema:    app.Schema(),
	})
}

// QueryHandler asks a natural-language question about the loaded table
// @Summary      Ask a question
// @Description  Sends the question to the backend and returns the generated SQL with the first page of results
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      models.QueryRequest  true  "Question"
// @Success      200      {object}  QueryResult
// @Failure      400      {object}  models.ErrorResponse  "Empty question"
// @Failure      409      {object}  models.ErrorResponse  "No table loaded or query in progress"
// @Failure      502      {object}  models.ErrorResponse  "Backend error"
// @Router       /api/query [post]
func (h *Handlers) QueryHandler(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	chat, err := currentApp(c).Chat()
	if err != nil {
		h.abortWithError(c, err, queryFallback)
		return
	}
	if err := chat.Submit(c.Request.Context(), req.Query); err != nil {
		h.abortWithError(c, err, queryFallback)
		return
	}
	h.writeQueryResult(c, chat)
}

// ResultsHandler returns one page of the current result set
// @Summary      Page through results
// @Description  Slices the already fetched result set; never calls the backend. Out-of-range pages are clamped.
// @Tags         Chat
// @Produce      json
// @Param        page  query     int  false  "Page number, 1-based"
// @Success      200   {object}  models.ResultPage
// @Failure      409   {object}  models.ErrorResponse  "No table loaded"
// @Router       /api/results [get]
func (h *Handlers) ResultsHandler(c *gin.Context) {
	chat, err := currentApp(c).Chat()
	if err != nil {
		h.abortWithError(c, err, queryFallback)
		return
	}
	if p := c.Query("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
			return
		}
		chat.SetPage(page)
	}
	c.JSON(http.StatusOK, chat.CurrentPage())
}

// HistoryHandler lists the session's past questions
// @Summary      Query history
// @Tags         Chat
// @Produce      json
// @Success      200  {object}  HistoryResult
// @Failure      409  {object}  models.ErrorResponse  "No table loaded"
// @Router       /api/history [get]
func (h *Handlers) HistoryHandler(c *gin.Context) {
	chat, err := currentApp(c).Chat()
	if err != nil {
		h.abortWithError(c, err, queryFallback)
		return
	}
	c.JSON(http.StatusOK, HistoryResult{History: chat.History()})
}

// RerunHandler runs a past question again
// @Summary      Rerun a history entry
// @Tags         Chat
// @Produce      json
// @Param        index  path      int  true  "History index, 0 is the newest"
// @Success      200    {object}  QueryResult
// @Failure      404    {object}  models.ErrorResponse  "No such entry"
// @Failure      409    {object}  models.ErrorResponse  "No table loaded or query in progress"
// @Failure      502    {object}  models.ErrorResponse  "Backend error"
// @Router       /api/history/{index}/rerun [post]
func (h *Handlers) RerunHandler(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be a number"})
		return
	}

	chat, err := currentApp(c).Chat()
	if err != nil {
		h.abortWithError(c, err, queryFallback)
		return
	}
	if err := chat.Rerun(c.Request.Context(), index); err != nil {
		h.abortWithError(c, err, queryFallback)
		return
	}
	h.writeQueryResult(c, chat)
}

func (h *Handlers) writeQueryResult(c *gin.Context, chat *session.Chat) {
	c.JSON(http.StatusOK, QueryResult{
		SQLQuery: chat.Status().SQL,
		Page:     chat.CurrentPage(),
	})
}
