package common

import (
	"teamTasks/internal/app"
	"teamTasks/internal/config"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	paramStorage = "storage"
	paramDataDir = "data-dir"
	paramOutput  = "output"
)

var (
	flagStorage = &cli.StringFlag{
		Name:    paramStorage,
		Aliases: []string{"s"},
		EnvVars: []string{"TEAMTASKS_STORAGE_TYPE"},
		Usage:   "Storage backend (file, memory, sqlite, postgres, redis)",
	}
	flagDataDir = &cli.StringFlag{
		Name:    paramDataDir,
		EnvVars: []string{"TEAMTASKS_STORAGE_FILE_DIR"},
		Usage:   "Directory of the file storage (defaults to the user config directory)",
	}
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagStorage,
		flagDataDir,
	}, flags...)
}

func OutputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    paramOutput,
		Aliases: []string{"o"},
		Value:   FormatTable,
		Usage:   "Output format (table, json, yaml)",
	}
}

// OpenStore читает настройки, применяет флаги командной строки и открывает хранилище задач
func OpenStore(cCtx *cli.Context) (*app.Store, error) {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if storageType := cCtx.String(paramStorage); storageType != "" {
		cfg.Storage.Type = storageType
	}
	if dir := cCtx.String(paramDataDir); dir != "" {
		cfg.Storage.File.Dir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	store, err := app.OpenStore(cCtx.Context, cfg.Storage)
	if err != nil {
		return nil, errors.Wrap(err, "could not open task store")
	}
	return store, nil
}
