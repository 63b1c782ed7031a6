package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/marketplace/internal/app"
	"github.com/dmitrymomot/marketplace/pkg/logger"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		logger.New().Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}
