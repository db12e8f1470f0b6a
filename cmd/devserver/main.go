package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dmskit/dmscli/internal/devserver"
	"github.com/dmskit/dmscli/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := &devserver.Config{}
	cfg.LoadDefaults()
	if v := os.Getenv("DEVSERVER_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("JWT_EXPIRES_IN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}

	logger, sync := logging.NewProductionZap()
	defer sync()

	srv, err := devserver.NewServer(cfg, devserver.NewStore(), logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger.Info(context.Background(), "listening", "addr", cfg.Addr, "admin", cfg.AdminEmail)
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
