package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/storefront-backend/internal/app"
	"github.com/yungbote/storefront-backend/internal/platform/shutdown"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	ctx, stop := shutdown.NotifyContext(context.Background(), application.Log)
	defer stop()

	if err := application.Run(ctx); err != nil {
		application.Log.Error("server exited", "error", err)
		application.Close()
		os.Exit(1)
	}
	application.Log.Info("server stopped")
}
