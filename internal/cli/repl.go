package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/cmccomb/pastrami/pkg/completion"
	"github.com/cmccomb/pastrami/pkg/session"
)

const (
	replPrompt      = "==> "
	replHistoryFile = "repl_history"
)

var helpText = `
REPL commands:
  :help              Show this help
  :packages          List capability packages and their status
  :use <ns> [...]    Enable exactly the named packages (resets script state)
  :quit              Exit the REPL
`

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive scripting session",
	Long: `Start an interactive scripting session against the shared engine instance.
Declared variables persist across inputs until the package set changes.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lg, err := initLogger(cfg, false)
	if err != nil {
		return err
	}
	defer lg.Close()

	manager, err := newManager(cfg, lg.GetZerolog())
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	fmt.Printf("pastrami %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.\n", version)
	fmt.Printf("packages: %s\n", strings.Join(manager.EnabledPackages(), ", "))

	_ = os.MkdirAll(cfg.DataDir, 0o755)
	histPath := filepath.Join(cfg.DataDir, replHistoryFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	ln.SetCompleter(func(line string) []string {
		return completeLine(manager.CompletionCatalog(), line)
	})

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(replPrompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			return err
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}

		if strings.HasPrefix(code, ":") {
			if quit := replCommand(manager, code); quit {
				return nil
			}
			ln.AppendHistory(line)
			continue
		}

		result := manager.Execute(session.ExecutionRequest{
			Script: line,
			Mode:   session.ModeREPL,
			OnOutput: func(out string) {
				fmt.Println(out)
			},
		})
		ln.AppendHistory(line)

		if store != nil {
			_ = store.Record(line, result, session.ModeREPL)
		}

		if result.Outcome != session.OutcomeSuccess {
			fmt.Fprintln(os.Stderr, red(result.ErrorMessage))
			continue
		}
		if result.HasValue {
			fmt.Println(blue(result.Value))
		}
	}
}

// replCommand handles a ":" directive; returns true when the REPL should exit
func replCommand(manager *session.Manager, code string) bool {
	fields := strings.Fields(code)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":help":
		fmt.Print(helpText)
	case ":packages":
		for _, desc := range manager.Descriptors() {
			mark := " "
			if desc.Selected {
				mark = "*"
			}
			fmt.Printf("  [%s] %-6s %s\n", mark, desc.Name, desc.Description)
		}
	case ":use":
		if err := manager.SetEnabledPackages(fields[1:]); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			break
		}
		fmt.Printf("packages: %s\n", strings.Join(manager.EnabledPackages(), ", "))
	default:
		fmt.Println("unknown command. Type :help for commands.")
	}
	return false
}

// completeLine completes the trailing identifier of the line against the
// completion catalog
func completeLine(catalog []string, line string) []string {
	start := len(line)
	for start > 0 {
		c := line[start-1]
		isIdent := c == '_' || c == ':' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isIdent {
			break
		}
		start--
	}

	query := line[start:]
	if query == "" {
		return nil
	}

	matches := completion.Match(catalog, query)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, line[:start]+m)
	}
	return out
}
