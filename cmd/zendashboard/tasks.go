package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/service"
)

func statusCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the traffic-light status of every category",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := a.tasks.Statuses()
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), statuses)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Dashboard")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			for _, st := range statuses {
				fmt.Fprintf(out, "  %-8s %-12s %d/%d done, high %d/%d\n",
					strings.ToUpper(string(st.Status)), st.Category, st.Completed, st.Total,
					st.HighPriorityCompleted, st.HighPriorityTotal)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func taskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Add, list and toggle tasks",
	}
	cmd.AddCommand(taskAddCmd(a), taskListCmd(a), taskToggleCmd(a))
	return cmd
}

func taskAddCmd(a *app) *cobra.Command {
	var category, priority, frequency string
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a task to a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := model.ParseCategory(category)
			if err != nil {
				return err
			}
			p, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			f, err := model.ParseFrequency(frequency)
			if err != nil {
				return err
			}

			task, err := a.tasks.AddTask(cmd.Context(), service.TaskInput{
				Name:      strings.Join(args, " "),
				Priority:  p,
				Frequency: f,
				Category:  c,
			})
			if err != nil {
				return err
			}
			if task == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing added: the name is blank.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s, %s)\n", task.ID, task.Category, task.Priority, task.Frequency)
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryStudyWork), "Study/Work, Health, Social or Spiritual")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "High, Medium or Low")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", string(model.FrequencyOneTime), "One-time, Daily, Weekly or Monthly")
	return cmd
}

func taskListCmd(a *app) *cobra.Command {
	var category string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks := a.tasks.Tasks()
			if category != "" {
				c, err := model.ParseCategory(category)
				if err != nil {
					return err
				}
				tasks = a.tasks.TasksIn(c)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), tasks)
			}
			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}
			for _, t := range tasks {
				check := "[ ]"
				if t.Completed {
					check = "[x]"
				}
				fmt.Fprintf(out, "%s %s  %-10s %-6s %-8s %s\n", check, t.ID, t.Category, t.Priority, t.Frequency, t.Name)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list one category")
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func taskToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [id]",
		Short: "Mark a task done, or open again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.tasks.ToggleTask(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "open"
			if task.Completed {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", task.Name, state)
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// parseIndex turns a 1-based position from the command line into an index.
func parseIndex(raw string, n int) (int, error) {
	i, err := strconv.Atoi(raw)
	if err != nil || i < 1 || i > n {
		return 0, fmt.Errorf("%q is not a position between 1 and %d", raw, n)
	}
	return i - 1, nil
}
