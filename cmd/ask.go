package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"laohotel/config"
	"laohotel/services/conversation"
	"laohotel/utils"

	"github.com/spf13/cobra"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Chat with the assistant from the terminal",
	Long: `Runs one turn when a question is given, otherwise reads one message per
line from stdin until EOF or "exit". Booking conversations continue across
lines within the same session.`,
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "Session id to continue")
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := newApplication(cmd.Context(), config.AppConfig, utils.GetLogger())
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}
	defer app.Close()

	out := cmd.OutOrStdout()
	if len(args) > 0 {
		askOnce(cmd.Context(), app.orchestrator, out, strings.Join(args, " "), askSessionID)
		return nil
	}
	return chatLoop(cmd.Context(), app.orchestrator, cmd.InOrStdin(), out, askSessionID)
}

func askOnce(ctx context.Context, orch *conversation.Orchestrator, out io.Writer, text, sessionID string) string {
	answer := orch.Ask(ctx, text, sessionID)
	fmt.Fprintf(out, "%s\n[%s] session=%s\n", answer.Reply, answer.Source, answer.SessionID)
	return answer.SessionID
}

func chatLoop(ctx context.Context, orch *conversation.Orchestrator, in io.Reader, out io.Writer, sessionID string) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "exit", "quit":
			return nil
		default:
			sessionID = askOnce(ctx, orch, out, line, sessionID)
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}
