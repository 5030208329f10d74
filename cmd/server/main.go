package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dentodent/content-api/internal/config"
	"github.com/dentodent/content-api/internal/router"
	"github.com/dentodent/content-api/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s storage: %v", cfg.StorageBackend, err)
	}

	r := router.Setup(st, cfg)

	log.Printf("content API listening on %s (backend=%s)", cfg.ListenAddr, cfg.StorageBackend)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

func openStore(cfg config.AppConfig) (store.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return store.NewMemory(), nil
	case config.BackendSQLite:
		return store.OpenSQLite(cfg.DatabasePath)
	default:
		return store.NewFile(cfg.DataDir, cfg.PublicDir)
	}
}
