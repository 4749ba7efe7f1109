package main

import (
	"os"

	"github.com/ormasoftchile/unbox/pkg/schema"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var (
	flagForce      bool
	flagOptions    string
	flagPicker     bool
	flagKeepConfig bool
	flagQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "unbox <source> [destination]",
	Short: "Unpack a project template into a directory",
	Long: "unbox fetches a box — a project template from a local path or a git\n" +
		"repository — unpacks it into a directory, and customizes the result\n" +
		"according to the box's recipe.",
	Args:         cobra.RangeArgs(1, 2),
	RunE:         runUnbox,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version + " (" + commit + ")"
	rootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite existing files without asking")
	rootCmd.Flags().StringVarP(&flagOptions, "options", "o", "", "comma-separated recipe choices, in tree order")
	rootCmd.Flags().BoolVar(&flagPicker, "picker", false, "use the full-screen variant picker")
	rootCmd.Flags().BoolVar(&flagKeepConfig, "keep-box-config", false, "leave "+schema.ConfigFileName+" in the destination")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress the box's post-unbox message")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
