package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmccomb/pastrami/pkg/session"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a script once and exit",
	Long: `Execute a script in an ephemeral engine instance and exit.
Reads the script from the given file, or from stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lg, err := initLogger(cfg, false)
	if err != nil {
		return err
	}
	defer lg.Close()

	var src []byte
	if len(args) == 1 {
		src, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
	} else {
		src, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

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

	result := manager.Execute(session.ExecutionRequest{
		Script: string(src),
		Mode:   session.ModeOneShot,
		OnOutput: func(line string) {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		},
	})

	if store != nil {
		_ = store.Record(string(src), result, session.ModeOneShot)
	}

	if result.Outcome != session.OutcomeSuccess {
		return fmt.Errorf("%s", result.ErrorMessage)
	}
	if result.HasValue {
		fmt.Fprintln(cmd.OutOrStdout(), result.Value)
	}
	return nil
}
