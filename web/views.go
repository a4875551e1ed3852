package web

import (
	"nlsqlchat/models"
	"nlsqlchat/session"
	"nlsqlchat/validation"
)

// UploadView feeds upload.html.
type UploadView struct {
	FileName  string
	FileSize  string
	Progress  int
	Error     string
	Uploading bool
	Accept    string
}

func NewUploadView(st session.UploadStatus) UploadView {
	v := UploadView{
		FileName:  st.FileName,
		Progress:  st.Progress,
		Error:     st.Error,
		Uploading: st.State.InFlight(),
		Accept:    ".csv,.xlsx,.xls",
	}
	if st.FileName != "" {
		v.FileSize = validation.FormatSize(st.FileSize)
	}
	return v
}

// ChatView feeds chat.html.
type ChatView struct {
	TableName string
	Columns   []string
	Query     string
	Error     string
	Loading   bool
	SQL       string
	Page      models.ResultPage
	History   []models.HistoryEntry
}

func NewChatView(chat *session.Chat) ChatView {
	st := chat.Status()
	return ChatView{
		TableName: chat.TableName(),
		Columns:   chat.DeclaredColumns(),
		Query:     st.Query,
		Error:     st.Error,
		Loading:   st.State == session.ChatSubmitting,
		SQL:       st.SQL,
		Page:      chat.CurrentPage(),
		History:   chat.History(),
	}
}
