package cli

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/interview-bot/backend/internal/client"
)

type rootOptions struct {
	server  string
	timeout time.Duration
	envFile string
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.server, o.timeout)
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "interviewctl",
		Short: "interviewctl - operate the Voice Interview Bot",
		Long: `interviewctl checks a Voice Interview Bot setup and drives a running server:
ask questions, cancel answers, inspect health and conversation memory, or hold
an interactive interview from the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			if !cmd.Flags().Changed("server") {
				if v := os.Getenv("INTERVIEW_API_URL"); v != "" {
					opts.server = v
				}
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.server, "server", client.DefaultBaseURL, "Server base URL (env INTERVIEW_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "HTTP timeout")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Environment file to load")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newAskCmd(opts))
	rootCmd.AddCommand(newCancelCmd(opts))
	rootCmd.AddCommand(newHealthCmd(opts))
	rootCmd.AddCommand(newSummaryCmd(opts))
	rootCmd.AddCommand(newClearCmd(opts))
	rootCmd.AddCommand(newInterviewCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
