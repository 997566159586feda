package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/service"
)

func subtrackerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtracker",
		Short: "Progress trackers shown on the Study/Work card",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List progress trackers",
		RunE: func(cmd *cobra.Command, args []string) error {
			subtrackers, err := a.subtrackers.List(cmd.Context())
			if err != nil {
				return err
			}
			for i, st := range subtrackers {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %-22s %g/%g %s (%.0f%%)\n",
					i+1, st.Name, st.Progress, st.Target, st.Unit, st.Ratio()*100)
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set [position] [progress]",
		Short: "Set the progress of a tracker",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			subtrackers, err := a.subtrackers.List(cmd.Context())
			if err != nil {
				return err
			}
			idx, err := parseIndex(args[0], len(subtrackers))
			if err != nil {
				return err
			}
			progress, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("progress must be a number: %w", err)
			}
			st, err := a.subtrackers.SetProgress(cmd.Context(), subtrackers[idx].ID, progress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %g/%g %s\n", st.Name, st.Progress, st.Target, st.Unit)
			return nil
		},
	}

	cmd.AddCommand(list, set)
	return cmd
}

func trackerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Hackathons, courses and projects",
	}

	list := &cobra.Command{
		Use:   "list [kind]",
		Short: "List tracker items, optionally for one kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := model.TrackerKinds()
			if len(args) == 1 {
				kind, err := model.ParseTrackerKind(args[0])
				if err != nil {
					return err
				}
				kinds = []model.TrackerKind{kind}
			}
			out := cmd.OutOrStdout()
			for _, kind := range kinds {
				items, err := a.trackers.Items(cmd.Context(), kind)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s:\n", kind.Title())
				if len(items) == 0 {
					fmt.Fprintln(out, "  (empty)")
				}
				for _, it := range items {
					fmt.Fprintf(out, "  %s  %-11s %-6s due %s  %s", it.ID, it.Status, it.Priority, it.Deadline, it.Name)
					if it.EstimatedTime != "" {
						fmt.Fprintf(out, " (~%s)", it.EstimatedTime)
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}

	var estimate, priority string
	add := &cobra.Command{
		Use:   "add [kind] [deadline] [name]",
		Short: "Add a hackathon, course or project",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseTrackerKind(args[0])
			if err != nil {
				return err
			}
			p, err := model.ParseTrackerPriority(priority)
			if err != nil {
				return err
			}
			item, err := a.trackers.AddItem(cmd.Context(), kind, service.TrackerItemInput{
				Name:          strings.Join(args[2:], " "),
				Deadline:      args[1],
				EstimatedTime: estimate,
				Priority:      p,
			})
			if err != nil {
				return err
			}
			if item == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: name and deadline are required.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", item.ID, kind.Title())
			return nil
		},
	}
	add.Flags().StringVarP(&estimate, "estimate", "e", "", "Estimated time, e.g. \"2 weeks\"")
	add.Flags().StringVarP(&priority, "priority", "p", string(model.TrackerPriorityMedium), "high, medium or low")

	status := &cobra.Command{
		Use:   "status [kind] [id] [not-started|in-progress|completed]",
		Short: "Change the status of a tracker item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := model.ParseTrackerKind(args[0])
			if err != nil {
				return err
			}
			st, err := model.ParseTrackerStatus(args[2])
			if err != nil {
				return err
			}
			item, err := a.trackers.SetItemStatus(cmd.Context(), kind, args[1], st)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", item.Name, item.Status)
			return nil
		},
	}

	cmd.AddCommand(list, add, status)
	return cmd
}

func contestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contest",
		Short: "Solved-question counters per coding platform",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			contests, err := a.trackers.Contests(cmd.Context())
			if err != nil {
				return err
			}
			for i, c := range contests {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %-12s %d", i+1, c.Platform, c.QuestionsCompleted)
				if ratio, ok := c.Ratio(); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "/%d (%.1f%%)", *c.TotalQuestions, ratio*100)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  updated %s\n", c.LastUpdated.In(a.cfg.Location).Format("2006-01-02"))
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set [position] [questions]",
		Short: "Record solved questions for a platform",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			contests, err := a.trackers.Contests(cmd.Context())
			if err != nil {
				return err
			}
			idx, err := parseIndex(args[0], len(contests))
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("questions must be a whole number: %w", err)
			}
			c, err := a.trackers.SetContestProgress(cmd.Context(), contests[idx].ID, n)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d questions\n", c.Platform, c.QuestionsCompleted)
			return nil
		},
	}

	cmd.AddCommand(list, set)
	return cmd
}
