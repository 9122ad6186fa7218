package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/streakboard/internal/mcp"
	"github.com/meltforce/streakboard/internal/peloton"
	"github.com/meltforce/streakboard/internal/summary"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	baseURL := flag.String("peloton-url", peloton.DefaultBaseURL, "Peloton API base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "per-call Peloton HTTP timeout")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("streakboard-mcp", Version)
		return
	}

	// Logs go to stderr — stdout carries the MCP stdio transport.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	client := peloton.New(*baseURL, *timeout)
	svc := summary.New(client, log)

	s := mcp.New(svc, Version, log)

	log.Info("streakboard-mcp serving on stdio", "peloton_url", *baseURL)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
