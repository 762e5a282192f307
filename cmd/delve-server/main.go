// Delve-server plays dungeon games over WebSocket, one game per connection.
// Usage: delve-server [--version] [--config <file>] [--addr <host:port>]
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/nathoo/delvecore/config"
	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/server"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	configPath := config.DefaultPath
	var addr string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("delve-server %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--config", "--addr":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			if args[i] == "--config" {
				configPath = args[i+1]
			} else {
				addr = args[i+1]
			}
			i++
		default:
			fmt.Fprintf(os.Stderr, "Usage: delve-server [--version] [--config <file>] [--addr <host:port>]\n")
			os.Exit(1)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	srv := server.New(func(mode string) (*engine.Engine, error) {
		c := cfg
		if c.Seed == 0 {
			c.Seed = time.Now().UnixNano()
		}
		eng, warnings, err := c.NewEngine(mode)
		for _, w := range warnings {
			log.Printf("scenario warning: %s", w)
		}
		return eng, err
	})

	log.Printf("delve-server %s listening on %s", version, cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, srv.Handler()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
