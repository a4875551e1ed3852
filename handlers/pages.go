package handlers

import (
	"log"
	"net/http"
	"strconv"

	"nlsqlchat/session"
	"nlsqlchat/web"

	"github.com/gin-gonic/gin"
)

// IndexPage renders the upload form until a table is loaded, then the chat.
// ?page=N moves through the current result set without asking the backend again.
func (h *Handlers) IndexPage(c *gin.Context) {
	app := currentApp(c)
	c.Header("Cache-Control", "no-cache")

	chat, err := app.Chat()
	if err != nil {
		c.HTML(http.StatusOK, "upload.html", web.NewUploadView(app.Uploader().Status()))
		return
	}

	if p := c.Query("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil {
			chat.SetPage(page)
		}
	}
	c.HTML(http.StatusOK, "chat.html", web.NewChatView(chat))
}

// UploadForm handles the upload form post. The outcome, success or error, is kept in the
// session and shown by IndexPage after the redirect.
func (h *Handlers) UploadForm(c *gin.Context) {
	app := currentApp(c)

	f, closeFile := formFile(c)
	defer closeFile()

	if err := app.Upload(c.Request.Context(), f); err != nil {
		log.Printf("[UPLOAD] form upload failed: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// QueryForm handles the question form post.
func (h *Handlers) QueryForm(c *gin.Context) {
	chat, err := currentApp(c).Chat()
	if err == nil {
		// errors are recorded on the chat and rendered with the page
		_ = chat.Submit(c.Request.Context(), c.PostForm("query"))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// RerunForm re-submits a history entry.
func (h *Handlers) RerunForm(c *gin.Context) {
	chat, err := currentApp(c).Chat()
	if err == nil {
		if index, convErr := strconv.Atoi(c.Param("index")); convErr == nil {
			_ = chat.Rerun(c.Request.Context(), index)
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// formFile returns the uploaded "file" field, or nil when the request carries none.
func formFile(c *gin.Context) (*session.File, func()) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, func() {}
	}
	src, err := header.Open()
	if err != nil {
		log.Printf("[UPLOAD] failed to open uploaded file: %v", err)
		return nil, func() {}
	}
	f := &session.File{Name: header.Filename, Size: header.Size, Reader: src}
	return f, func() { _ = src.Close() }
}
