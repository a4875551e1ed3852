package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"nlsqlchat/cache"
	"nlsqlchat/client"
	"nlsqlchat/config"
	"nlsqlchat/session"
	"nlsqlchat/validation"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// @title           NL to SQL Chat API
// @version         1.0
// @description     Upload a spreadsheet, then ask questions about it in natural language. Each session holds one table.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /

// @schemes   http https

// Pinger reports whether the NL-to-SQL backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	cfg      config.Config
	sessions *cache.Sessions
	store    sessions.Store
	backend  Pinger
}

func New(cfg config.Config, sessionStore *cache.Sessions, cookieStore sessions.Store, backend Pinger) *Handlers {
	return &Handlers{
		cfg:      cfg,
		sessions: sessionStore,
		store:    cookieStore,
		backend:  backend,
	}
}

// apiError maps a session/backend error to a status code and a user-facing message.
func apiError(err error, fallback string) (int, string) {
	switch {
	case validation.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, session.ErrBusy):
		return http.StatusConflict, "A request is already in progress. Please wait."
	case errors.Is(err, session.ErrTableLoaded):
		return http.StatusConflict, "A table is already loaded for this session"
	case errors.Is(err, session.ErrNoTable):
		return http.StatusConflict, "Upload a file before asking questions"
	case errors.Is(err, session.ErrHistoryIndex):
		return http.StatusNotFound, "History entry not found"
	case errors.Is(err, context.Canceled):
		return 499, "Request cancelled"
	}
	return http.StatusBadGateway, client.UserMessage(err, fallback)
}

func (h *Handlers) abortWithError(c *gin.Context, err error, fallback string) {
	status, msg := apiError(err, fallback)
	if status >= http.StatusInternalServerError {
		log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
