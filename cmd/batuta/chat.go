package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/batuta-io/batuta/internal/presentation/tui"
	"github.com/batuta-io/batuta/pkg/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts a REPL against the engine. Each line is classified, routed to
a workflow, and executed against the session's shared state. Type "exit"
or "quit" to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, _, err := buildEngine(cmd, domain.LifecycleHooks{})
		if err != nil {
			return err
		}

		sessionID, _ := cmd.Flags().GetString("session")
		if sessionID == "" {
			sessionID = fmt.Sprintf("cli-%d", time.Now().Unix())
		}
		userID, _ := cmd.Flags().GetString("user")

		interactive := term.IsTerminal(int(os.Stdout.Fd()))
		render := func(s string) string { return s }
		if interactive {
			tui.PrintBanner()
			fmt.Printf("Session %s. Type 'exit' to leave.\n\n", sessionID)
			render = tui.NewRenderer()
		}

		scanner := bufio.NewScanner(os.Stdin)
		for {
			if interactive {
				fmt.Print("> ")
			}
			if !scanner.Scan() {
				break
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if line == "exit" || line == "quit" {
				break
			}

			resp, err := engine.HandleMessage(cmd.Context(), sessionID, userID, line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				continue
			}

			if interactive {
				fmt.Printf("[%s / %s]\n", resp.Workflow, resp.Phase)
			}
			fmt.Println(render(resp.Reply))
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume (default: a fresh one)")
	chatCmd.Flags().StringP("user", "u", "", "User ID to attribute the session to")
}
