package repl

import (
	"fmt"
	"strings"

	"nlsqlchat/models"
	"nlsqlchat/session"

	"github.com/jedib0t/go-pretty/v6/table"
)

func (s *Shell) printSchema() {
	if s.app.State() == session.NoTableLoaded {
		_, _ = fmt.Fprintln(s.out, "No table loaded")
		return
	}
	name := s.app.TableName()
	_, _ = fmt.Fprintf(s.out, "Table: %s\n", name)
	_, _ = fmt.Fprintf(s.out, "Columns: %s\n", strings.Join(s.app.Schema().Columns(name), ", "))
}

func (s *Shell) printResult(chat *session.Chat) {
	if sql := chat.Status().SQL; sql != "" {
		_, _ = fmt.Fprintf(s.out, "\nGenerated SQL:\n  %s\n\n", sql)
	}
	s.printPage(chat)
}

func (s *Shell) printPage(chat *session.Chat) {
	page := chat.CurrentPage()
	if page.TotalRows == 0 {
		_, _ = fmt.Fprintln(s.out, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(page.Columns))
	for i, col := range page.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range page.Rows {
		row := make(table.Row, len(page.Columns))
		for i, col := range page.Columns {
			row[i] = models.FormatValue(r[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(s.out, "(%d rows, page %d of %d)\n", page.TotalRows, page.Page, page.TotalPages)
}

func (s *Shell) printHistory(chat *session.Chat) {
	entries := chat.History()
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(s.out, "No queries yet")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Time", "Question"})
	for i, e := range entries {
		t.AppendRow(table.Row{i, e.Timestamp, e.Query})
	}
	t.Render()
}
