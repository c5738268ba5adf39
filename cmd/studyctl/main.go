package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/studydesk/core/pkg/client"
)

type globalOptions struct {
	server  string
	token   string
	timeout time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "studyctl: %v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	rootCommand := &cobra.Command{
		Use:           "studyctl",
		Short:         "Command line client for the studydesk API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringVar(&opts.server, "server", envOr("STUDYCTL_SERVER", "http://localhost:3333"), "server base URL")
	rootCommand.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("STUDYCTL_TOKEN"), "bearer token")
	rootCommand.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	rootCommand.AddCommand(
		newLoginCommand(opts),
		newRegisterCommand(opts),
		newNotesCommand(opts),
		newTagsCommand(opts),
		newTimerCommand(opts),
		newRemindersCommand(opts),
		newOverviewCommand(opts),
		newHealthCommand(opts),
	)
	return rootCommand
}

func (o *globalOptions) client() *client.Client {
	return client.New(client.Config{BaseURL: o.server, Token: o.token, Timeout: o.timeout})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
