package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/coursegen-backend/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to init app: %v\n", err)
		os.Exit(1)
	}

	err = a.Run(context.Background())
	if err != nil {
		a.Log.Error("server stopped with error", "error", err)
	}
	a.Close()
	if err != nil {
		os.Exit(1)
	}
}
