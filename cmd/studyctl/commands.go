package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/studydesk/core/pkg/client"
)

func newLoginCommand(opts *globalOptions) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			if _, err := c.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Token())
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCommand(opts *globalOptions) *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			if _, err := c.Register(cmd.Context(), name, email, password); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Token())
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func newNotesCommand(opts *globalOptions) *cobra.Command {
	notesCmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage notes",
	}
	notesCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List notes, most recently modified first",
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := opts.client().Notes(cmd.Context())
				if err != nil {
					return err
				}
				return printNotes(cmd.OutOrStdout(), notes)
			},
		},
		&cobra.Command{
			Use:   "search <query>",
			Short: "Search note titles and content",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				notes, err := opts.client().SearchNotes(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printNotes(cmd.OutOrStdout(), notes)
			},
		},
		newNotesCreateCommand(opts),
		newNotesExportCommand(opts),
	)
	return notesCmd
}

func newNotesCreateCommand(opts *globalOptions) *cobra.Command {
	var title string
	var tags []string
	cmd := &cobra.Command{
		Use:   "create <content>",
		Short: "Create a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := client.NoteInput{Content: args[0], Tags: tags}
			if title != "" {
				in.Title = &title
			}
			n, err := opts.client().CreateNote(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n.ID)
			return err
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag name, repeatable")
	return cmd
}

func newNotesExportCommand(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Print a note as markdown or html",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := opts.client().ExportNote(cmd.Context(), args[0], format)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "markdown", "markdown or html")
	return cmd
}

func newTagsCommand(opts *globalOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := opts.client().Tags(cmd.Context(), all)
			if err != nil {
				return err
			}
			for _, t := range tags {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), t.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include tags not used by your notes")
	return cmd
}

func newTimerCommand(opts *globalOptions) *cobra.Command {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Record and summarize study time",
	}
	timerCmd.AddCommand(newTimerAddCommand(opts), newTimerSummaryCommand(opts))
	return timerCmd
}

func newTimerAddCommand(opts *globalOptions) *cobra.Command {
	var date, subject string
	cmd := &cobra.Command{
		Use:   "add <duration>",
		Short: "Add study time, e.g. 25m or 1500",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			var subj *string
			if subject != "" {
				subj = &subject
			}
			ts, err := opts.client().AddStudyTime(cmd.Context(), date, subj, seconds)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ts.Date, time.Duration(ts.Duration)*time.Second)
			return err
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&subject, "subject", "", "subject name")
	return cmd
}

func newTimerSummaryCommand(opts *globalOptions) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show study time per day and subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := opts.client().StudySummary(cmd.Context(), from, to)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range sum.Days {
				fmt.Fprintf(w, "%s\t%s\n", d.Date, time.Duration(d.Seconds)*time.Second)
			}
			for _, s := range sum.Subjects {
				fmt.Fprintf(w, "%s\t%s\n", s.Subject, time.Duration(s.Seconds)*time.Second)
			}
			fmt.Fprintf(w, "total\t%s\n", time.Duration(sum.Total)*time.Second)
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	return cmd
}

func newRemindersCommand(opts *globalOptions) *cobra.Command {
	remindersCmd := &cobra.Command{
		Use:   "reminders",
		Short: "Manage reminders",
	}
	remindersCmd.AddCommand(&cobra.Command{
		Use:   "pending",
		Short: "Print due reminders and mark them notified",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := opts.client().PendingReminders(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range items {
				fmt.Fprintf(w, "%s\t%s\n", r.ReminderTime.Local().Format(time.DateTime), r.Title)
			}
			return w.Flush()
		},
	})
	return remindersCmd
}

func newOverviewCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Print the dashboard overview as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := opts.client().Overview(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ov)
		},
	}
}

func newHealthCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := opts.client().Health(cmd.Context())
			if err != nil {
				return err
			}
			db := "up"
			if !h.Database {
				db = "down"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (database %s)\n", h.Status, db); err != nil {
				return err
			}
			if h.Status != "ok" {
				return fmt.Errorf("server is %s", h.Status)
			}
			return nil
		},
	}
}

func printNotes(out io.Writer, notes []client.Note) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, n := range notes {
		title := "(untitled)"
		if n.Title != nil && *n.Title != "" {
			title = *n.Title
		}
		names := make([]string, len(n.Tags))
		for i, t := range n.Tags {
			names[i] = t.Name
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, title, strings.Join(names, ","))
	}
	return w.Flush()
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseSeconds accepts a Go duration ("1h30m") or a plain number of seconds.
func parseSeconds(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("duration must not be negative")
		}
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must not be negative")
	}
	return int64(d / time.Second), nil
}
