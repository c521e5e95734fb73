package main

import (
	"os"

	"github.com/robfig/cron/v3"

	"github.com/anuj452005/excalidraw/internal/config"
	"github.com/anuj452005/excalidraw/internal/imagehost"
	"github.com/anuj452005/excalidraw/internal/logger"
	"github.com/anuj452005/excalidraw/internal/runner"
	"github.com/anuj452005/excalidraw/internal/server"
	"github.com/anuj452005/excalidraw/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Error("init logger", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("open database", err, map[string]any{"driver": cfg.DBDriver})
		os.Exit(1)
	}
	defer db.Close()

	users := storage.NewUserStore(db)
	pages := storage.NewPageStore(db)
	blocks := storage.NewBlockStore(db)

	srv := server.New(users, pages, blocks,
		runner.New(cfg.RunnerURL),
		imagehost.New(cfg.ImageURL, cfg.ImageKey),
		cfg.JWTSecret,
	)

	// Blocks whose page was deleted mid-request pile up quietly; sweep them
	// every night.
	sched := cron.New()
	sched.AddFunc("0 3 * * *", func() {
		n, err := blocks.DeleteOrphanBlocks()
		if err != nil {
			logger.Error("orphan sweep", err)
			return
		}
		if n > 0 {
			logger.Info("orphan sweep", map[string]any{"deleted": n})
		}
	})
	sched.Start()
	defer sched.Stop()

	logger.Info("starting server", map[string]any{"addr": cfg.ListenAddr, "driver": cfg.DBDriver})
	if err := srv.Start(cfg.ListenAddr); err != nil {
		logger.Error("server stopped", err)
		os.Exit(1)
	}
}
