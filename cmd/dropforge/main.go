// Package main provides the entry point for the dropforge mint engine.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/mintlab/dropforge-go/pkg/backend"
	"github.com/mintlab/dropforge-go/pkg/config"
	"github.com/mintlab/dropforge-go/pkg/rpc"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to JSON config file")
	host := flag.String("host", "", "listen host (overrides config)")
	port := flag.Int("port", 0, "listen port (overrides config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("dropforge version %s\n", Version)
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadFromFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}

	engine, err := backend.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start engine: %v\n", err)
		os.Exit(1)
	}

	server := rpc.NewServer(engine)

	fmt.Println("dropforge - NFT Drop Simulation Engine")
	fmt.Printf("Version: %s\n", Version)
	fmt.Printf("Collection: %s (%s), max supply %d\n",
		cfg.Collection.Name, cfg.Collection.Symbol, cfg.Collection.MaxSupply)
	fmt.Println()
	fmt.Println("Available accounts (owner first):")
	for i, acc := range engine.Accounts() {
		fmt.Printf("  (%d) %s\n", i, acc.Address.Hex())
	}
	fmt.Println()
	fmt.Printf("Listening on http://%s\n", cfg.ServerAddr())

	if err := http.ListenAndServe(cfg.ServerAddr(), server); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
