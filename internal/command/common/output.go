package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"teamTasks/internal/models/task"
	"teamTasks/internal/view"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

func outputFormat(cCtx *cli.Context) (string, error) {
	format := cCtx.String(paramOutput)
	switch format {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", errors.Errorf("unknown output format '%s'", format)
	}
}

func WriteTasks(cCtx *cli.Context, tasks []*task.Task) error {
	format, err := outputFormat(cCtx)
	if err != nil {
		return err
	}
	w := cCtx.App.Writer

	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatYAML:
		return writeYAML(w, tasks)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tTAGS\tSHARED WITH")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority, t.DueDate,
			strings.Join(t.Tags, ","), strings.Join(t.SharedWith, ","))
	}
	return errors.WithStack(tw.Flush())
}

func WriteTask(cCtx *cli.Context, t *task.Task) error {
	return WriteTasks(cCtx, []*task.Task{t})
}

func WriteStats(cCtx *cli.Context, stats view.Stats) error {
	format, err := outputFormat(cCtx)
	if err != nil {
		return err
	}
	w := cCtx.App.Writer

	switch format {
	case FormatJSON:
		return writeJSON(w, stats)
	case FormatYAML:
		return writeYAML(w, stats)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Completed\t%d\n", stats.Completed)
	fmt.Fprintf(tw, "In progress\t%d\n", stats.InProgress)
	fmt.Fprintf(tw, "Pending\t%d\n", stats.Pending)
	return errors.WithStack(tw.Flush())
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return errors.WithStack(encoder.Encode(v))
}

// yaml строится из json-представления, чтобы имена полей и формат дат совпадали
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.WithStack(err)
	}

	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return errors.WithStack(err)
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(generic); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(encoder.Close())
}
