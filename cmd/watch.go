package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newWatchCmd returns the watch command, which skips the initial search and
// only reports entries that appear while it runs.
func newWatchCmd(v *viper.Viper) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [options] <fragment>",
		Short: "Report new files and directories whose name matches",
		Long: `Watch the tree below --path and print every new entry whose base name
contains <fragment>. New directories within --max-depth are watched as well.
Press Ctrl+C to exit.

Examples:
  ff watch .log --path /var/tmp
  ff watch report --file-type pdf --max-depth 1`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(v, cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, v, args[0], false, true)
		},
	}

	addSearchFlags(watchCmd.Flags())

	return watchCmd
}
