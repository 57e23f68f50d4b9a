package main

import (
	"context"
	"log"

	"github.com/guardianeye/guardianeye/internal/server"
	"github.com/guardianeye/guardianeye/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
