package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/idilsaglam/shoplist/internal/cli"
	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/store/jsonstore"
	"github.com/idilsaglam/shoplist/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Root flags (apply to every subcommand); they override the environment.
	groupPending := flag.Bool("group", false, "group ls output by pending/done")
	dataDir := flag.String("data-dir", cfg.DataDir, "directory holding "+jsonstore.FileName)
	theme := flag.String("theme", cfg.Theme, "output theme: classic, neon or mono")
	addr := flag.String("addr", cfg.Addr, "listen address for serve")
	debug := flag.Bool("debug", cfg.Debug, "enable debug logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if !ui.SetTheme(*theme) {
		slog.Warn("unknown theme, using classic", "theme", *theme, "known", ui.Themes)
	}

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group: *groupPending,
		Addr:  *addr,
		Store: jsonstore.New(*dataDir),
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
