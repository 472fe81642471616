package tasks

import (
	"teamTasks/internal/app"
	"teamTasks/internal/command/common"
	"teamTasks/internal/models/task"
	"teamTasks/internal/service"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	flagTitle       = "title"
	flagDescription = "description"
	flagDue         = "due"
	flagTag         = "tag"
	flagShare       = "share"
)

func taskFlags(titleRequired bool) []cli.Flag {
	return common.WithCommonFlags(
		&cli.StringFlag{
			Name:     flagTitle,
			Aliases:  []string{"t"},
			Required: titleRequired,
			Usage:    "Task title",
		},
		&cli.StringFlag{
			Name:    flagDescription,
			Aliases: []string{"d"},
			Usage:   "Task description",
		},
		&cli.StringFlag{
			Name:  flagStatus,
			Usage: "Task status (todo, in-progress, completed)",
		},
		&cli.StringFlag{
			Name:  flagPriority,
			Usage: "Task priority (low, medium, high)",
		},
		&cli.StringFlag{
			Name:  flagDue,
			Usage: "Due date as YYYY-MM-DD, empty to clear",
		},
		&cli.StringSliceFlag{
			Name:  flagTag,
			Usage: "Tag, can be repeated",
		},
		&cli.StringSliceFlag{
			Name:  flagShare,
			Usage: "Address the task is shared with, can be repeated",
		},
		common.OutputFlag(),
	)
}

func AddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a task",
		Flags: taskFlags(true),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			dueDate, err := task.ParseDate(cCtx.String(flagDue))
			if err != nil {
				return errors.Wrap(err, "invalid due date")
			}

			in := task.Input{
				Title:       cCtx.String(flagTitle),
				Description: cCtx.String(flagDescription),
				Status:      task.Status(cCtx.String(flagStatus)),
				Priority:    task.Priority(cCtx.String(flagPriority)),
				DueDate:     dueDate,
				Tags:        cCtx.StringSlice(flagTag),
				SharedWith:  cCtx.StringSlice(flagShare),
			}
			if err := in.Validate(); err != nil {
				return errors.WithStack(err)
			}

			created, err := store.Service.Create(cCtx.Context, in)
			if err != nil {
				return errors.WithStack(err)
			}

			return common.WriteTask(cCtx, created)
		}),
	}
}

func UpdateCommand() *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Change the given fields of a task",
		ArgsUsage: "<id>",
		Flags:     taskFlags(false),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			args, err := requireArgs(cCtx, "id")
			if err != nil {
				return err
			}
			id := args[0]

			options, err := updateOptions(cCtx)
			if err != nil {
				return err
			}
			if len(options) == 0 {
				return errors.New("nothing to update, pass at least one field flag")
			}

			found, err := store.Service.Update(cCtx.Context, id, options...)
			if err != nil {
				return errors.WithStack(err)
			}
			if !found {
				return service.NewNotFound(id)
			}

			updated, err := store.Service.GetByID(cCtx.Context, id)
			if err != nil {
				return errors.WithStack(err)
			}
			return common.WriteTask(cCtx, updated)
		}),
	}
}

// updateOptions переводит только явно заданные флаги в опции обновления
func updateOptions(cCtx *cli.Context) ([]task.TaskOption, error) {
	var options []task.TaskOption

	if cCtx.IsSet(flagTitle) {
		if cCtx.String(flagTitle) == "" {
			return nil, errors.New("title cannot be empty")
		}
		options = append(options, task.WithTitle(cCtx.String(flagTitle)))
	}
	if cCtx.IsSet(flagDescription) {
		options = append(options, task.WithDescription(cCtx.String(flagDescription)))
	}
	if cCtx.IsSet(flagStatus) {
		status := task.Status(cCtx.String(flagStatus))
		if !status.Valid() {
			return nil, errors.Errorf("unknown status '%s'", status)
		}
		options = append(options, task.WithStatus(status))
	}
	if cCtx.IsSet(flagPriority) {
		priority := task.Priority(cCtx.String(flagPriority))
		if !priority.Valid() {
			return nil, errors.Errorf("unknown priority '%s'", priority)
		}
		options = append(options, task.WithPriority(priority))
	}
	if cCtx.IsSet(flagDue) {
		dueDate, err := task.ParseDate(cCtx.String(flagDue))
		if err != nil {
			return nil, errors.Wrap(err, "invalid due date")
		}
		options = append(options, task.WithDueDate(dueDate))
	}
	if cCtx.IsSet(flagTag) {
		options = append(options, task.WithTags(cCtx.StringSlice(flagTag)))
	}
	if cCtx.IsSet(flagShare) {
		options = append(options, task.WithSharedWith(cCtx.StringSlice(flagShare)))
	}

	return options, nil
}

func DeleteCommand() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		ArgsUsage: "<id>",
		Flags:     common.WithCommonFlags(),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			args, err := requireArgs(cCtx, "id")
			if err != nil {
				return err
			}

			return errors.WithStack(store.Service.Delete(cCtx.Context, args[0]))
		}),
	}
}
