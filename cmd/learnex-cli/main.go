package main

import (
	"context"
	"fmt"
	"os"

	"github.com/caarlos0/env/v10"

	"github.com/greatochuko/fobeworkLMS/internal/client/api"
	"github.com/greatochuko/fobeworkLMS/internal/client/cli"
	"github.com/greatochuko/fobeworkLMS/internal/client/session"
	"github.com/greatochuko/fobeworkLMS/pkg/logger"
)

type config struct {
	APIBaseURL string `env:"LEARNEX_API_URL" envDefault:"http://localhost:8080"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"warn"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	log := logger.New("learnex-cli", cfg.LogLevel)

	client, err := api.New(cfg.APIBaseURL, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to build API client:", err)
		os.Exit(1)
	}

	store := session.NewStore(client.Session, log)
	app := cli.NewApp(client, store, log)
	app.Root(context.Background())
}
