package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/aussiebroadwan/ageverif/internal/ageverif/app"
)

func main() {
	showVersion := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(app.BuildVersion)
		return
	}

	application, err := app.New(app.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize age verification service", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("age verification service stopped", "error", err)
		os.Exit(1)
	}
}
