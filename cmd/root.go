// Package cmd defines the command line for the hotel chatbot: the HTTP server, a chat
// client, the room listing and the knowledge base builder.
package cmd

import (
	"fmt"
	"os"

	"laohotel/config"
	"laohotel/utils"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "laohotel",
	Short: "Lao-language hotel assistant for Vang Vieng",
	Long: `laohotel answers guest questions in Lao from a local knowledge base
and books hotel rooms through a short guided conversation.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadConfig()
		utils.InitializeLogger()
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(roomsCmd)
	rootCmd.AddCommand(kbCmd)
}
