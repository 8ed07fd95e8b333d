package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"dunearchive/internal/archive"
	"dunearchive/internal/batch"
	"dunearchive/internal/config"
)

func main() {
	configPath := flag.String("config", "", "Optional yaml config file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dunearchive [-config file] <command-file>")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(cfg.Storage.Workdir, 0o755); err != nil {
		log.Fatalf("Failed to create workdir: %v", err)
	}

	commands, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to open command file: %v", err)
	}
	defer commands.Close()

	eng, err := archive.Open(cfg.Storage.Workdir)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}

	runner, err := batch.NewRunner(eng, cfg.OutputPath(), cfg.LogPath())
	if err != nil {
		log.Fatalf("Failed to start batch run: %v", err)
	}

	if err := runner.Run(commands); err != nil {
		runner.Close()
		log.Fatalf("Error processing command file: %v", err)
	}
	if err := runner.Close(); err != nil {
		log.Fatalf("Error finishing batch run: %v", err)
	}
}
