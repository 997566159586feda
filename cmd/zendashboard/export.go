package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"zen-dashboard/internal/model"
	"zen-dashboard/internal/repository"
)

var knownSlots = []string{
	repository.TasksSlot,
	repository.SubtrackersSlot,
	repository.HackathonsSlot,
	repository.CoursesSlot,
	repository.ProjectsSlot,
	repository.ContestsSlot,
}

func exportCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print every stored slot as YAML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := a.slots.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			decoded := make(map[string]any, len(snapshot))
			for name, raw := range snapshot {
				var v any
				if err := json.Unmarshal([]byte(raw), &v); err != nil {
					return fmt.Errorf("slot %s: %w", name, err)
				}
				decoded[name] = v
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), decoded)
			case "yaml", "yml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(decoded); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or json")
	return cmd
}

// checkSlot decodes value into the type stored under name so a dump with the
// wrong shape is rejected before anything is written.
func checkSlot(name, value string) error {
	var err error
	switch name {
	case repository.TasksSlot:
		var tasks []model.Task
		if err = json.Unmarshal([]byte(value), &tasks); err == nil {
			for _, t := range tasks {
				if !t.Category.Valid() || !t.Priority.Valid() || !t.Frequency.Valid() {
					return fmt.Errorf("task %q: unknown category, priority or frequency", t.ID)
				}
			}
		}
	case repository.SubtrackersSlot:
		var subtrackers []model.Subtracker
		err = json.Unmarshal([]byte(value), &subtrackers)
	case repository.ContestsSlot:
		var contests []model.ContestTracker
		err = json.Unmarshal([]byte(value), &contests)
	default:
		var items []model.TrackerItem
		err = json.Unmarshal([]byte(value), &items)
	}
	return err
}

// importCmd loads a localStorage dump: a JSON object keyed by slot name whose
// values are either the stored JSON strings or the decoded values. Nothing is
// written unless every known slot in the dump decodes.
func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Replace stored slots from a JSON dump",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read dump: %w", err)
			}
			var dump map[string]json.RawMessage
			if err := json.Unmarshal(data, &dump); err != nil {
				return fmt.Errorf("parse dump: %w", err)
			}

			imported := 0
			accepted := make(map[string]string, len(dump))
			for name, raw := range dump {
				if !slices.Contains(knownSlots, name) {
					a.log.Warn("skip unknown slot", "slot", name)
					continue
				}
				value := string(raw)
				var s string
				if err := json.Unmarshal(raw, &s); err == nil {
					value = s
				}
				if err := checkSlot(name, value); err != nil {
					return fmt.Errorf("slot %s: %w", name, err)
				}
				accepted[name] = value
			}

			for _, name := range knownSlots {
				value, ok := accepted[name]
				if !ok {
					continue
				}
				if err := a.slots.Put(cmd.Context(), name, value); err != nil {
					return err
				}
				imported++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d slots\n", imported)
			return nil
		},
	}
}
