package tasks

import (
	"teamTasks/internal/app"
	"teamTasks/internal/command/common"
	"teamTasks/internal/logger"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		ListCommand(),
		AddCommand(),
		UpdateCommand(),
		DeleteCommand(),
		ShareCommand(),
		UnshareCommand(),
		StatsCommand(),
	}
}

// withStore открывает хранилище на время выполнения команды
func withStore(fn func(cCtx *cli.Context, store *app.Store) error) cli.ActionFunc {
	return func(cCtx *cli.Context) error {
		store, err := common.OpenStore(cCtx)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("Storage: Ошибка закрытия хранилища", zap.Error(err))
			}
		}()

		return fn(cCtx, store)
	}
}

func requireArgs(cCtx *cli.Context, names ...string) ([]string, error) {
	if cCtx.NArg() != len(names) {
		return nil, errors.Errorf("expected %d argument(s): %v, got %d", len(names), names, cCtx.NArg())
	}
	return cCtx.Args().Slice(), nil
}
