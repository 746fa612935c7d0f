package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var packagesJSON bool

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "List capability packages",
	Long: `List the curated capability packages with their descriptions and whether
they are enabled by the current configuration.`,
	RunE: runPackages,
}

func init() {
	packagesCmd.Flags().BoolVar(&packagesJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(packagesCmd)
}

func runPackages(cmd *cobra.Command, args []string) error {
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

	descriptors := manager.Descriptors()

	if packagesJSON {
		data, err := json.MarshalIndent(descriptors, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, desc := range descriptors {
		mark := " "
		if desc.Selected {
			mark = "*"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %-6s %s\n", mark, desc.Name, desc.Description)
		fmt.Fprintf(cmd.OutOrStdout(), "           %s\n", desc.Repository)
	}
	return nil
}
