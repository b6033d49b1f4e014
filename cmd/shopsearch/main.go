// Copyright 2025 The ShopSearch Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main runs the storefront search engine as an IPC server, an HTTP API,
a line-oriented CLI or an interactive TUI.

ShopSearch keeps a product catalog in memory and answers three kinds of
question about it: what to suggest while the shopper is still typing, which
products match a query plus the active filters, and how those results are
ordered. Keystrokes are debounced before suggestions are recomputed, so a
burst of typing costs one lookup.

# Usage

Start the msgpack IPC server with default settings:

	shopsearch

Serve the JSON API over HTTP:

	shopsearch -http

Try searches interactively:

	shopsearch -c
	shopsearch -t

Use a custom catalog and config, with debug logs:

	shopsearch -catalog ./data/catalog.toml -config ./config.toml -d

# Configuration

Settings come from built-in defaults, then a TOML file, then environment
variables (a .env file in the working directory is read first):

	[search]
	debounce_ms = 300
	suggest_cache_size = 256

	[catalog]
	source = "file"
	path = "data/catalog.toml"

	[history]
	provider = "static"
	recent = ["wireless earbuds", "kitchen organizer"]

The config file is created with defaults when it does not exist. A file that
fails to parse is recovered field by field where possible.

# Catalog

The catalog is read once at startup, either from a TOML file or, with
source = "postgres", from the categories and products tables reached through
DATABASE_URL. Use -export to write the loaded catalog back out as TOML.

# History

Recent and trending queries fill the suggestion list while the search box is
empty. They come from the config file or from Redis lists kept up to date as
shoppers submit searches.

# IPC Protocol

The server reads MessagePack requests from stdin and writes one response per
request to stdout:

	{"id": "r1", "op": "suggest", "q": "lamp"}
	{"id": "r1", "s": [{"k": "product", "w": "Desk Lamp"}], "c": 1, "t": 42}

	{"id": "r2", "op": "search", "q": "lamp", "f": {"sort": "price-low"}}

# Command Line Flags

	-config string
	    Path to a config file
	-catalog string
	    Catalog file, overrides the config
	-d  Toggle debug mode
	-c  Run the line-oriented CLI
	-t  Run the interactive TUI
	-http
	    Serve the HTTP API instead of IPC
	-export string
	    Write the loaded catalog to this TOML file and exit
	-version
	    Show current version
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bastiangx/shopsearch/internal/analytics"
	"github.com/bastiangx/shopsearch/internal/cli"
	"github.com/bastiangx/shopsearch/internal/httpapi"
	"github.com/bastiangx/shopsearch/internal/logger"
	pgstore "github.com/bastiangx/shopsearch/internal/store/postgres"
	"github.com/bastiangx/shopsearch/internal/tui"
	"github.com/bastiangx/shopsearch/internal/utils"
	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/clients"
	"github.com/bastiangx/shopsearch/pkg/closer"
	"github.com/bastiangx/shopsearch/pkg/config"
	"github.com/bastiangx/shopsearch/pkg/server"
	"github.com/bastiangx/shopsearch/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.3.0-beta"
	AppName = "shopsearch"
	gh      = "https://github.com/bastiangx/shopsearch"
)

// main wires the packages together; it does not implement search itself.
func main() {
	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to a config file")
	catalogPath := flag.String("catalog", "", "Catalog file, overrides the config")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run the line-oriented CLI")
	tuiMode := flag.Bool("t", false, "Run the interactive TUI")
	httpMode := flag.Bool("http", false, "Serve the HTTP API instead of IPC")
	exportPath := flag.String("export", "", "Write the loaded catalog to this TOML file and exit")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	config.LoadDotEnv()
	cfg, activeConfig, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	ipcMode := !*cliMode && !*tuiMode && !*httpMode && *exportPath == ""
	logger.Setup(*debugMode, cfg.Log.Level, ipcMode)
	if activeConfig != "" {
		log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(activeConfig))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := closer.NewCloser(0)
	defer shutdown(cl, cfg.Server.ShutdownTimeout())

	cat, err := loadCatalog(ctx, cfg, *catalogPath, cl)
	if err != nil {
		log.Errorf("Failed to load catalog: %v", err)
		shutdown(cl, cfg.Server.ShutdownTimeout())
		os.Exit(1)
	}

	if *exportPath != "" {
		if err := catalog.SaveFile(cat, *exportPath); err != nil {
			log.Errorf("Export failed: %v", err)
			shutdown(cl, cfg.Server.ShutdownTimeout())
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d products to %s\n", cat.Len(), *exportPath)
		return
	}

	provider, err := openHistory(ctx, cfg, cl)
	if err != nil {
		log.Warnf("History provider unavailable, using configured lists: %v", err)
		provider = analytics.NewStatic(cfg.History.Recent, cfg.History.Trending)
	}
	store := analytics.NewOverlay(provider)
	initial, err := analytics.Load(ctx, store)
	if err != nil {
		log.Warnf("Failed to read history: %v", err)
	}
	live := analytics.NewLive(initial)
	go analytics.Watch(ctx, store, cfg.History.RefreshInterval(), live.Set)

	suggester := suggest.NewGenerator(cat, suggest.WithCache(cfg.Search.SuggestCacheSize))

	switch {
	case *cliMode:
		err = runCLI(ctx, cfg, cat, store, live)
	case *tuiMode:
		recent, trending := live.Get()
		err = tui.Run(ctx, cat,
			tui.WithDelay(cfg.Search.Debounce()),
			tui.WithLimit(cfg.CLI.MaxResults),
			tui.WithHistory(recent, trending),
		)
	case *httpMode:
		err = runHTTP(ctx, cfg, cat, suggester, store, live, cl)
	default:
		srv := server.NewServer(cat, suggester,
			server.WithHistory(live.Get),
			server.WithRecorder(recordQuery(store, live)),
		)
		showStartupInfo(cat, "ipc", activeConfig)
		err = untilDone(ctx, func() error { return srv.Start(ctx) })
	}
	if err != nil && ctx.Err() == nil {
		log.Errorf("%s stopped: %v", AppName, err)
		shutdown(cl, cfg.Server.ShutdownTimeout())
		os.Exit(1)
	}
}

// loadCatalog reads the catalog from the configured source.
// The -catalog flag always means a file.
func loadCatalog(ctx context.Context, cfg *config.Config, flagPath string, cl *closer.Closer) (*catalog.Catalog, error) {
	if flagPath == "" && cfg.Catalog.Source == config.SourcePostgres {
		db, err := clients.ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		cl.Add(db.Close)
		return pgstore.NewCatalogSource(db.Pool).Load(ctx)
	}

	userPath := flagPath
	if userPath == "" {
		userPath = cfg.Catalog.Path
	}
	resolver, err := utils.NewPathResolver()
	if err != nil {
		return nil, err
	}
	log.Debug("Runtime", "info", resolver.GetRuntimeInfo())
	path, err := resolver.GetCatalogPath(userPath)
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", userPath, err)
	}
	log.Debugf("Using catalog at: %s", path)
	return catalog.NewFileSource(path).Load(ctx)
}

// openHistory returns the configured history provider.
func openHistory(ctx context.Context, cfg *config.Config, cl *closer.Closer) (analytics.Provider, error) {
	if cfg.History.Provider != config.ProviderRedis {
		return analytics.NewStatic(cfg.History.Recent, cfg.History.Trending), nil
	}
	client := clients.NewRedisClient(cfg.Redis)
	if err := client.Ping(ctx); err != nil {
		client.Close(ctx)
		return nil, err
	}
	cl.Add(client.Close)
	return analytics.NewRedisProvider(client, cfg.Redis), nil
}

func runCLI(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, store *analytics.Overlay, live *analytics.Live) error {
	log.SetReportTimestamp(false)
	h := cli.NewInputHandler(cat,
		cli.WithDelay(cfg.Search.Debounce()),
		cli.WithMaxResults(cfg.CLI.MaxResults),
		cli.WithDescriptions(cfg.CLI.ShowDescriptions),
		cli.WithHistory(func(ctx context.Context) ([]string, []string, error) {
			hist, err := analytics.Load(ctx, store)
			if err != nil {
				return nil, nil, err
			}
			live.Set(hist)
			return hist.Recent, hist.Trending, nil
		}),
		cli.WithRecorder(store.Record),
	)
	return untilDone(ctx, func() error { return h.Start(ctx, os.Stdin) })
}

// recordQuery remembers a submitted query and republishes the history so the
// next empty-box suggestion shows it.
func recordQuery(store *analytics.Overlay, live *analytics.Live) func(context.Context, string) error {
	return func(ctx context.Context, query string) error {
		if err := store.Record(ctx, query); err != nil {
			return err
		}
		h, err := analytics.Load(ctx, store)
		if err != nil {
			return err
		}
		live.Set(h)
		return nil
	}
}

// untilDone runs fn, returning early when ctx ends. fn may stay blocked on
// stdin; the process is about to exit anyway.
func untilDone(ctx context.Context, fn func() error) error {
	errCh := make(chan error, 1)
	go func() { errCh <- fn() }()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

func runHTTP(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, sg suggest.Suggester,
	store *analytics.Overlay, live *analytics.Live, cl *closer.Closer,
) error {
	handler := httpapi.NewSearchHandler(cat, sg,
		httpapi.WithHistory(live.Get),
		httpapi.WithRecorder(recordQuery(store, live)),
		httpapi.WithNewArrivals(cfg.Search.NewArrivals),
		httpapi.WithLogger(logger.ForFormat("http", cfg.Log.Format)),
	)
	srv := httpapi.NewServer(httpapi.Handler(handler), cfg.Server)
	cl.Add(srv.Stop)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()
	showStartupInfo(cat, "http "+srv.Addr(), "")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("Shutting down HTTP server")
		return nil
	}
}

// shutdown closes everything registered on cl within timeout.
func shutdown(cl *closer.Closer, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := cl.Close(ctx); err != nil {
		log.Errorf("Shutdown: %v", err)
	}
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ ShopSearch ] In-memory storefront search")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo prints what was loaded. It goes to stderr so IPC stdout stays clean.
func showStartupInfo(cat *catalog.Catalog, mode, configPath string) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, " ShopSearch ")
	fmt.Fprintln(os.Stderr, "============")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", os.Getpid())
	log.Infof("mode: %s", mode)
	log.Infof("catalog: %d products, %d categories", cat.Len(), len(cat.Categories()))
	if configPath != "" {
		log.Infof("config: ( %s )", configPath)
	}
	log.Info("status: ready")
	fmt.Fprintln(os.Stderr, "============")
	fmt.Fprintln(os.Stderr, "Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
