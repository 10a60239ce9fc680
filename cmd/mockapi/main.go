package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"storepulse/internal/logging"
	"storepulse/internal/mockapi"
)

func main() {
	cfg := mockapi.LoadConfig()

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	srv := mockapi.NewServer(
		mockapi.WithSecret([]byte(cfg.Secret)),
		mockapi.WithServerLogger(logging.NewDefault(os.Stderr, level)),
	)

	log.Printf("mock backend listening on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, srv.Router()); err != nil {
		log.Fatalf("%v", err)
	}
}
