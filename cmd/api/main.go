package main

import (
	"context"
	"fmt"
	"os"
	"teamTasks/internal/app"
	"teamTasks/internal/config"
	"teamTasks/internal/logger"

	gfshutdown "github.com/gelmium/graceful-shutdown"
)

func main() {
	cfg, err := config.Load(os.Getenv("TEAMTASKS_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "загрузка настроек:", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		logger.Error("Ошибка инициализации приложения", err)
		_ = a.Shutdown(context.Background())
		os.Exit(1)
	}

	go func() {
		if err := a.Run(ctx); err != nil {
			logger.Error("Приложение остановлено с ошибкой", err)
			_ = a.Shutdown(context.Background())
			os.Exit(1)
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				cancel()
				return a.Shutdown(ctx)
			},
		},
	)

	os.Exit(<-wait)
}
