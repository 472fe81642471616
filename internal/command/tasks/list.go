package tasks

import (
	"teamTasks/internal/app"
	"teamTasks/internal/command/common"
	"teamTasks/internal/view"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagStatus   = "status"
	flagPriority = "priority"
	flagSearch   = "search"
)

func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks, optionally filtered by status, priority and text",
		Flags: common.WithCommonFlags(
			&cli.StringFlag{
				Name:  flagStatus,
				Value: view.All,
				Usage: "Status filter (all, todo, in-progress, completed)",
			},
			&cli.StringFlag{
				Name:  flagPriority,
				Value: view.All,
				Usage: "Priority filter (all, low, medium, high)",
			},
			&cli.StringFlag{
				Name:  flagSearch,
				Usage: "Case-insensitive text searched in title and description",
			},
			common.OutputFlag(),
		),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			spec, err := view.ParseSpec(cCtx.String(flagStatus), cCtx.String(flagPriority), cCtx.String(flagSearch))
			if err != nil {
				return errors.WithStack(err)
			}

			return common.WriteTasks(cCtx, store.Service.Filter(cCtx.Context, spec))
		}),
	}
}

func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show task counts by status",
		Flags: common.WithCommonFlags(common.OutputFlag()),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			return common.WriteStats(cCtx, store.Service.Stats(cCtx.Context))
		}),
	}
}
