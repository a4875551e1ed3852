// Package repl is the terminal front end: upload one file, then ask questions about it.
package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"nlsqlchat/client"
	"nlsqlchat/session"

	"github.com/chzyer/readline"
)

const (
	prompt         = "nlsql> "
	uploadFallback = "Error uploading file. Please try again."
	queryFallback  = "Error processing query. Please try again."
)

// Shell runs commands against one session.App and writes everything it shows to out and errOut.
type Shell struct {
	app    *session.App
	out    io.Writer
	errOut io.Writer
}

func New(app *session.App, out, errOut io.Writer) *Shell {
	return &Shell{app: app, out: out, errOut: errOut}
}

// Run reads lines until .quit or EOF. If file is set it is uploaded first.
func (s *Shell) Run(ctx context.Context, file string) error {
	if file != "" {
		if err := s.UploadPath(ctx, file); err != nil {
			return err
		}
	}

	rl, err := readline.NewEx(s.readlineConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(s.out, "NL to SQL chat. Type .help for commands, .quit to exit")
	if s.app.State() == session.NoTableLoaded {
		_, _ = fmt.Fprintln(s.out, "No table loaded yet. Use .upload <file>")
	}

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.Handle(ctx, line) {
			return nil
		}
	}
}

// readlineConfig keeps line history in memory only; nothing outlives the process.
func (s *Shell) readlineConfig() *readline.Config {
	return &readline.Config{
		Prompt:          prompt,
		AutoComplete:    completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          s.out,
		Stderr:          s.errOut,
	}
}

// Handle runs one input line and reports whether the shell should exit.
// Lines starting with a dot are commands; anything else is a question.
func (s *Shell) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, ".") {
		s.ask(ctx, line)
		return false
	}

	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true
	case ".help":
		printHelp(s.out)
	case ".upload":
		if len(parts) < 2 {
			s.errorf("Usage: .upload <file>")
			return false
		}
		_ = s.UploadPath(ctx, strings.Join(parts[1:], " "))
	case ".schema":
		s.printSchema()
	case ".next":
		s.withChat(func(chat *session.Chat) {
			chat.NextPage()
			s.printPage(chat)
		})
	case ".prev":
		s.withChat(func(chat *session.Chat) {
			chat.PrevPage()
			s.printPage(chat)
		})
	case ".page":
		n, ok := s.intArg(parts, "Usage: .page <n>")
		if !ok {
			return false
		}
		s.withChat(func(chat *session.Chat) {
			chat.SetPage(n)
			s.printPage(chat)
		})
	case ".history":
		s.withChat(s.printHistory)
	case ".rerun":
		n, ok := s.intArg(parts, "Usage: .rerun <n>")
		if !ok {
			return false
		}
		s.withChat(func(chat *session.Chat) {
			if err := chat.Rerun(ctx, n); err != nil {
				s.reportQueryError(err)
				return
			}
			s.printResult(chat)
		})
	default:
		s.errorf("Unknown command: %s (type .help for commands)", parts[0])
	}
	return false
}

// UploadPath uploads a local file and prints the loaded table.
func (s *Shell) UploadPath(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		s.errorf("Error: %v", err)
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		s.errorf("Error: %v", err)
		return err
	}

	_, _ = fmt.Fprintf(s.out, "Uploading %s...\n", filepath.Base(path))
	err = s.app.Upload(ctx, &session.File{Name: filepath.Base(path), Size: info.Size(), Reader: f})
	if err != nil {
		if errors.Is(err, session.ErrTableLoaded) {
			s.errorf("Error: table %s is already loaded", s.app.TableName())
		} else {
			s.errorf("Error: %s", client.UserMessage(err, uploadFallback))
		}
		return err
	}
	s.printSchema()
	return nil
}

func (s *Shell) ask(ctx context.Context, query string) {
	s.withChat(func(chat *session.Chat) {
		if err := chat.Submit(ctx, query); err != nil {
			s.reportQueryError(err)
			return
		}
		s.printResult(chat)
	})
}

func (s *Shell) withChat(fn func(chat *session.Chat)) {
	chat, err := s.app.Chat()
	if err != nil {
		s.errorf("No table loaded. Use .upload <file> first")
		return
	}
	fn(chat)
}

func (s *Shell) reportQueryError(err error) {
	switch {
	case errors.Is(err, session.ErrHistoryIndex):
		s.errorf("Error: no such history entry")
	case errors.Is(err, session.ErrBusy):
		s.errorf("Error: a query is already running")
	default:
		s.errorf("Error: %s", client.UserMessage(err, queryFallback))
	}
}

func (s *Shell) intArg(parts []string, usage string) (int, bool) {
	if len(parts) < 2 {
		s.errorf("%s", usage)
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		s.errorf("%s", usage)
		return 0, false
	}
	return n, true
}

func (s *Shell) errorf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.errOut, format+"\n", args...)
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".upload"),
		readline.PcItem(".schema"),
		readline.PcItem(".next"),
		readline.PcItem(".prev"),
		readline.PcItem(".page"),
		readline.PcItem(".history"),
		readline.PcItem(".rerun"),
		readline.PcItem(".quit"),
	)
}

func printHelp(w io.Writer) {
	help := `
Commands:
  .upload <file>  Upload a CSV or Excel file (once per session)
  .schema         Show the loaded table and its columns
  .next / .prev   Move through the result pages
  .page <n>       Jump to result page n
  .history        List past questions, newest first
  .rerun <n>      Ask history entry n again
  .help           Show this help message
  .quit / .exit   Exit

Anything else is sent as a question about the loaded table.
`
	_, _ = fmt.Fprintln(w, help)
}
