package main

import (
	"fmt"
	"os"

	"github.com/playmatatu/pitchviz/internal/admin"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/logging"
	"github.com/rs/zerolog/log"
)

// seed-admin prints the ADMIN_PASSWORD_HASH line for a password taken from
// ADMIN_PASSWORD or the first argument.
func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.Environment)

	password := os.Getenv("ADMIN_PASSWORD")
	if len(os.Args) > 1 {
		password = os.Args[1]
	}
	if password == "" {
		password = "change-me-in-production"
		log.Warn().Msg("using default admin password; set ADMIN_PASSWORD in production")
	}

	hashed, err := admin.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	fmt.Printf("ADMIN_PASSWORD_HASH='%s'\n", hashed)
}
