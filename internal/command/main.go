package command

import (
	"fmt"
	"os"
	"sort"
	"teamTasks/internal/logger"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// NewApp собирает cli-приложение с общими флагами логирования и настроек
func NewApp(name string, usage string, commands ...*cli.Command) *cli.App {
	app := &cli.App{
		Name:     name,
		Usage:    usage,
		Commands: commands,
		Before: func(ctx *cli.Context) error {
			if err := logger.Init(ctx.Bool("debug"), ctx.String("log-level")); err != nil {
				return errors.Wrap(err, "could not initialize logger")
			}
			return nil
		},
		After: func(ctx *cli.Context) error {
			logger.Sync()
			return nil
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				EnvVars: []string{"TEAMTASKS_CONFIG"},
				Aliases: []string{"c"},
				Usage:   "configuration file to use",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Value:   false,
				EnvVars: []string{"TEAMTASKS_CLI_DEBUG"},
				Usage:   "Toggle debug mode",
			},
			&cli.StringFlag{
				Name:    "log-level",
				EnvVars: []string{"TEAMTASKS_CLI_LOG_LEVEL"},
				Usage:   "Set logging level",
				Value:   "warn",
			},
		},
	}

	app.ExitErrHandler = func(ctx *cli.Context, err error) {
		if err == nil {
			return
		}

		if !ctx.Bool("debug") {
			fmt.Fprintln(ctx.App.ErrWriter, "error:", err.Error())
		} else {
			fmt.Fprintf(ctx.App.ErrWriter, "error: %+v\n", err)
		}
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	sort.Sort(cli.CommandsByName(app.Commands))

	return app
}

func Main(name string, usage string, commands ...*cli.Command) {
	if err := NewApp(name, usage, commands...).Run(os.Args); err != nil {
		os.Exit(1)
	}
}
