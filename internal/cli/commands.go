package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-bot/backend/internal/handler/health"
)

// newAskCmd creates the ask command
func newAskCmd(opts *rootOptions) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask the bot a question",
		Example: `  interviewctl ask "What's your #1 superpower?"
  interviewctl ask --session s1 What should we know about your life story`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Ask(cmd.Context(), strings.Join(args, " "), session)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printAnswer(out, "🤖 Candidate", res.Response)
			printField(out, "Session", res.SessionID)
			printField(out, "Outcome", res.Outcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (server uses \"default\" when empty)")
	return cmd
}

// newCancelCmd creates the cancel command
func newCancelCmd(opts *rootOptions) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the in-flight answer for a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Cancel(cmd.Context(), session)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Success {
				fmt.Fprintln(out, passStyle.Render("✅ "+res.Message))
			} else {
				fmt.Fprintln(out, warnStyle.Render("⚠️  "+res.Message))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (server uses \"default\" when empty)")
	return cmd
}

// newHealthCmd creates the health command
func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "🩺 "+rep.Message)
			printField(out, "Status", rep.Status)
			printField(out, "Version", rep.Version)
			printField(out, "Candidate", rep.CandidateName)
			printField(out, "AI", fmt.Sprintf("%s %s (%s)", rep.AIProvider, rep.AIModel, rep.AIStatus))
			printField(out, "API key", yesNo(rep.APIKeyConfigured))
			printField(out, "Memory", rep.MemoryStatus)
			printField(out, "Knowledge graph", rep.KnowledgeStatus)
			printField(out, "Audio", rep.AudioMethod)
			printField(out, "In flight", rep.InFlight)
			return nil
		},
	}
}

// newSummaryCmd creates the summary command
func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the conversation summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Summary(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !res.Success || res.Summary == nil {
				fmt.Fprintln(out, warnStyle.Render("⚠️  "+firstNonEmpty(res.Message, res.Error)))
				return nil
			}
			printSection(out, "🧠 Conversation")
			printField(out, "Summary", res.Summary.Summary)
			printField(out, "Questions", res.Summary.QuestionCount)
			if len(res.Summary.Topics) > 0 {
				printField(out, "Topics", strings.Join(res.Summary.Topics, ", "))
			}
			if res.Summary.SessionDuration != "" {
				printField(out, "Duration", res.Summary.SessionDuration)
			}
			return nil
		},
	}
}

// newClearCmd creates the clear command
func newClearCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the conversation memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().Clear(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Success {
				fmt.Fprintln(out, passStyle.Render("✅ "+res.Message))
			} else {
				fmt.Fprintln(out, warnStyle.Render("⚠️  "+firstNonEmpty(res.Message, res.Error)))
			}
			return nil
		},
	}
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "interviewctl v%s\n", health.Version)
			fmt.Fprintln(out, "Voice Interview Bot operator CLI")
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
