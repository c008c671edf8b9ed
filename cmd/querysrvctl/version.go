package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onepredict/lges-query-server/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the query server version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", version.Name, version.Current())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
