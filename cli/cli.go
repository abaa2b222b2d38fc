// TODO: refactor [RootCmd] to be a func
package main

import (
	"os"

	"github.com/spf13/cobra"

	"strengthgrid.dev/strength/cmd"
	"strengthgrid.dev/strength/internal/echo"
)

// RootCmd is the root command for the strength CLI
var RootCmd = &cobra.Command{
	Use:   "strength",
	Short: "Strength Grid scoring and odds toolkit",
	Long: echo.HeaderStyle().Render("Strength Grid") + "\n\n" +
		"A toolkit for computing football team-strength scores and on-demand\n" +
		"betting odds from collected form, rating, and market-value data.",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "path to config file")
	RootCmd.AddCommand(cmd.CollectCmd())
	RootCmd.AddCommand(cmd.DbCmd())
	RootCmd.AddCommand(cmd.CacheCmd())
	RootCmd.AddCommand(cmd.ServerCmd())
	RootCmd.AddCommand(cmd.StatusCmd())
	RootCmd.AddCommand(cmd.DeployCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
