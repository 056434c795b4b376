package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "pullback-trading",
	Short: "Low-volume pullback screening and backtesting service",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(screenCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
