// SKOOLACH is a text adventure: recover the AI components scattered through
// a corrupted machine, then defeat the virus in its lair.
// Usage: skoolach [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--history <db>] [game_directory]
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/skoolach/cli"
	"github.com/nathoo/skoolach/config"
	"github.com/nathoo/skoolach/engine"
	"github.com/nathoo/skoolach/engine/state"
	"github.com/nathoo/skoolach/games/skoolach"
	"github.com/nathoo/skoolach/loader"
	"github.com/nathoo/skoolach/store"
	"github.com/nathoo/skoolach/telemetry"
	"github.com/nathoo/skoolach/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: skoolach [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--history <db>] [game_directory]"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	trace := false
	var gameDir string
	var scriptFile string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("skoolach %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			cfg.Plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = flagValue(args, &i)
		case "--history":
			cfg.HistoryDB = flagValue(args, &i)
		case "--seed":
			seed, err := strconv.ParseInt(flagValue(args, &i), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed requires an integer\n")
				os.Exit(1)
			}
			cfg.Seed = seed
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}
	if gameDir != "" {
		cfg.GameDir = gameDir
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.Telemetry == config.TelemetryOTLP {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without tracing")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	defs, err := loadWorld(cfg.GameDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	eng := engine.New(defs)
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng.RNG = engine.NewRNG(seed)

	var history *store.EncounterRepo
	if cfg.HistoryDB != "" {
		db, err := store.NewDB(cfg.HistoryDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening history: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()
		history = &store.EncounterRepo{DB: db}
		eng.Recorder = history
	}

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		c := newCLI(eng, history, trace, seed)
		c.In = f
		c.EchoInput = true
		c.Run(ctx)
		return
	}

	// Use plain CLI if asked to or stdout is not a terminal.
	if cfg.Plain || !isTerminal() {
		newCLI(eng, history, trace, seed).Run(ctx)
		return
	}

	var battles tui.History
	if history != nil {
		battles = history
	}
	if err := tui.Run(ctx, eng, battles); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadWorld loads the world from dir, or the embedded one when dir is "".
func loadWorld(dir string) (*state.Defs, error) {
	if dir != "" {
		return loader.Load(dir)
	}
	return loader.LoadFS(skoolach.FS, ".")
}

func newCLI(eng *engine.Engine, history *store.EncounterRepo, trace bool, seed int64) *cli.CLI {
	c := cli.New(eng)
	c.Trace = trace
	if history != nil {
		c.History = history
	}
	if trace {
		fmt.Printf("[trace] Seed %d\n", seed)
	}
	return c
}

// flagValue consumes the argument after the flag at *i.
func flagValue(args []string, i *int) string {
	if *i+1 >= len(args) {
		fmt.Fprintf(os.Stderr, "%s requires a value\n%s\n", args[*i], usage)
		os.Exit(1)
	}
	*i++
	return args[*i]
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
