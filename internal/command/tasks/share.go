package tasks

import (
	"fmt"
	"teamTasks/internal/app"
	"teamTasks/internal/command/common"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func ShareCommand() *cli.Command {
	return &cli.Command{
		Name:      "share",
		Usage:     "Share a task with an email address",
		ArgsUsage: "<id> <identifier>",
		Flags:     common.WithCommonFlags(),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			args, err := requireArgs(cCtx, "id", "identifier")
			if err != nil {
				return err
			}

			result, err := store.Service.Share(cCtx.Context, args[0], args[1])
			if err != nil {
				return errors.WithStack(err)
			}
			if err := result.Err(args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cCtx.App.Writer, "task %s shared with %s\n", args[0], args[1])
			return nil
		}),
	}
}

func UnshareCommand() *cli.Command {
	return &cli.Command{
		Name:      "unshare",
		Usage:     "Stop sharing a task with an email address",
		ArgsUsage: "<id> <identifier>",
		Flags:     common.WithCommonFlags(),
		Action: withStore(func(cCtx *cli.Context, store *app.Store) error {
			args, err := requireArgs(cCtx, "id", "identifier")
			if err != nil {
				return err
			}

			result, err := store.Service.Unshare(cCtx.Context, args[0], args[1])
			if err != nil {
				return errors.WithStack(err)
			}
			if err := result.Err(args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cCtx.App.Writer, "task %s is no longer shared with %s\n", args[0], args[1])
			return nil
		}),
	}
}
