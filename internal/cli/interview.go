package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-bot/backend/internal/client"
)

// Asker returns the next interviewer question. io.EOF ends the interview.
type Asker func() (string, error)

func newInterviewCmd(opts *rootOptions) *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Hold an interactive interview in the terminal",
		Long:  `Prompt for questions and print the candidate's answers until you type "exit" or press Ctrl+C.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			out := cmd.OutOrStdout()

			p, err := c.Profile(cmd.Context())
			if err != nil {
				return err
			}
			printTitle(out, fmt.Sprintf("🎤 Interviewing %s (%s)", p.Name, p.Role))
			fmt.Fprintln(out, mutedStyle.Render(`Type "exit" to finish.`))

			return runInterview(cmd.Context(), c, session, promptQuestion, out)
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "Session id (server uses \"default\" when empty)")
	return cmd
}

func promptQuestion() (string, error) {
	var question string
	prompt := &survey.Input{
		Message: "Interviewer:",
		Help:    `Ask anything about the candidate. "exit" ends the interview.`,
	}

	err := survey.AskOne(prompt, &question)
	if errors.Is(err, terminal.InterruptErr) {
		return "", io.EOF
	}
	return question, err
}

// runInterview loops over ask until it reports io.EOF or an exit word.
// Failed requests are printed and the interview continues.
func runInterview(ctx context.Context, c *client.Client, session string, ask Asker, out io.Writer) error {
	asked := 0
	for {
		question, err := ask()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		question = strings.TrimSpace(question)
		switch strings.ToLower(question) {
		case "":
			continue
		case "exit", "quit", "bye":
			fmt.Fprintf(out, "Asked %d question(s). Goodbye!\n", asked)
			return nil
		}

		res, err := c.Ask(ctx, question, session)
		if err != nil {
			fmt.Fprintln(out, failStyle.Render("❌ "+err.Error()))
			continue
		}
		asked++
		printAnswer(out, "🤖 Candidate", res.Response)
	}

	fmt.Fprintf(out, "Asked %d question(s). Goodbye!\n", asked)
	return nil
}
