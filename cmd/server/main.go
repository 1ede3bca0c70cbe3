package main

import (
	"log"
	"net/http"
	"os"

	"github.com/kfiggins/pest-control-empire/internal/api"
	"github.com/kfiggins/pest-control-empire/internal/config"
	"github.com/kfiggins/pest-control-empire/internal/game"
	"github.com/kfiggins/pest-control-empire/internal/ops"
	"github.com/kfiggins/pest-control-empire/internal/telemetry"
)

func main() {
	cfg, err := config.Load("pestempire.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.FromEnv(cfg)

	logger := log.New(os.Stdout, "", log.LstdFlags)

	store, err := ops.OpenStore(cfg.Data.Dir, cfg.Data.SaveBackend)
	if err != nil {
		logger.Fatalf("open save store: %v", err)
	}
	defer ops.CloseStore(store)

	actionLog := telemetry.NewLog(cfg.Server.LogLimit)
	engine := game.New(cfg.Balance, cfg.Game.Seed, store, actionLog, logger)
	if err := engine.InitOrLoad(); err != nil {
		logger.Fatalf("init game: %v", err)
	}

	handler := api.New(engine, actionLog, store, logger)

	logger.Printf("listening on http://localhost%s (difficulty=%s, backend=%s)",
		cfg.Server.Addr, cfg.Game.Difficulty, cfg.Data.SaveBackend)
	logger.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
