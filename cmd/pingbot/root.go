package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pingbot",
	Short: "pingbot is a chat bot that pings users in Stack Exchange chat rooms",
	Long: `pingbot joins a Stack Exchange chat room as an observer or a participant,
watches room events and mentions users on request. Participants tag every
message they send with [auto] and announce when they join and leave.`,
	SilenceUsage: true,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}
