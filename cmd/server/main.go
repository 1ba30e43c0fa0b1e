package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ayitek/borlette-pos/internal/appstate"
	"github.com/ayitek/borlette-pos/internal/draws"
	"github.com/ayitek/borlette-pos/internal/env"
	"github.com/ayitek/borlette-pos/internal/gateway"
	"github.com/ayitek/borlette-pos/internal/localdb"
	"github.com/ayitek/borlette-pos/internal/offlinecache"
	"github.com/ayitek/borlette-pos/internal/output"
	"github.com/ayitek/borlette-pos/internal/shared/logger"
	"github.com/ayitek/borlette-pos/internal/shared/paths"
	"github.com/ayitek/borlette-pos/internal/webserver"
	"go.uber.org/zap"
)

func main() {
	logger.Init(false)
	defer logger.Sync()

	logger.Info("Starting borlette-pos terminal")

	if err := paths.EnsureDataDirs(); err != nil {
		logger.Fatal("Failed to ensure data directories", zap.Error(err))
	}

	if _, err := localdb.SetupDB(paths.GetDBPath()); err != nil {
		logger.Fatal("Failed to setup database", zap.Error(err))
	}
	defer localdb.CloseDB()

	env.LoadEnv()
	if env.Value.DebugMode {
		logger.Init(true)
		logger.Info("Debug mode enabled")
	}

	if err := offlinecache.PurgePreviousVersions(); err != nil {
		logger.Warn("Failed to purge stale offline cache entries", zap.Error(err))
	}

	state := appstate.New()
	client := gateway.New(env.Value.BackendURL, state, func() string {
		if sess := state.Session(); sess != nil {
			return sess.Token
		}
		return ""
	})

	restoreSession(state, client)

	engine := draws.NewEngine(state, env.Value.Location())
	ticker := draws.NewTicker(engine, func(views []draws.DrawView) {
		webserver.BroadcastWSMessage("draw_board", views)
	})
	ticker.Start()

	output.InitializePrinter()

	webserver.Configure(state, client, engine)

	port := 8080
	if env.Value.ServerPort != 0 {
		port = env.Value.ServerPort
	}
	if err := webserver.StartWebServer(port); err != nil {
		logger.Fatal("Failed to start web server", zap.Error(err))
	}

	logger.Info("Terminal started",
		zap.Int("port", port),
		zap.String("ui", fmt.Sprintf("http://localhost:%d/", port)),
		zap.String("backend", env.Value.BackendURL))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")

	ticker.Stop()
	webserver.Shutdown()

	logger.Info("Shutdown complete")
}
