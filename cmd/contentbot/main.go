package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/m3rciful/contentbot/core/cmd"
	"github.com/m3rciful/contentbot/internal/app"
	"github.com/m3rciful/contentbot/internal/config"
)

func main() {
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			a, err := app.Bootstrap(cfg.(*config.Config))
			if err != nil {
				return nil, err
			}
			return a, nil
		},
	})
	if err != nil {
		log.Fatal(err)
	}
}
