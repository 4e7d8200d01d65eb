package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/cardfilter/pkg/config"
	"github.com/umputun/cardfilter/pkg/eventloop"
	"github.com/umputun/cardfilter/pkg/filter"
	"github.com/umputun/cardfilter/pkg/hover"
	"github.com/umputun/cardfilter/pkg/identity"
	"github.com/umputun/cardfilter/pkg/page"
	"github.com/umputun/cardfilter/pkg/repository"
	"github.com/umputun/cardfilter/pkg/rules"
	"github.com/umputun/cardfilter/pkg/scheduler"
	"github.com/umputun/cardfilter/pkg/service"
	"github.com/umputun/cardfilter/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults apply if not set"`
	Page   string `short:"p" long:"page" env:"PAGE" required:"true" description:"host page HTML file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"panel listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database DSN, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)

	log.Printf("[INFO] starting cardfilter version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Storage.DSN = opts.DB
	}

	profile, err := regexp.Compile(cfg.Selectors.ProfilePattern)
	if err != nil {
		return fmt.Errorf("failed to compile profile pattern: %w", err)
	}

	doc, err := loadPage(opts.Page, cfg.Selectors)
	if err != nil {
		return err
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{DSN: cfg.Storage.DSN, MaxOpenConns: 1})
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close storage: %v", err)
		}
	}()

	store := rules.NewStore(repos.Setting, rules.Keys{Keywords: cfg.Storage.KeywordsKey, Authors: cfg.Storage.AuthorsKey})
	extractor := identity.New(identity.Selectors{
		Card:   cfg.Selectors.Card,
		Title:  cfg.Selectors.Title,
		Owner:  cfg.Selectors.Owner,
		Author: cfg.Selectors.Author,
	}, profile)
	engine := filter.New(doc, extractor, store)

	loop := eventloop.New(256)
	observer := scheduler.New(loop, doc, engine, scheduler.Config{
		InitialDelay: cfg.Timing.InitialDelay,
		Debounce:     cfg.Timing.Debounce,
	})
	advisor := hover.New(loop, doc, extractor, store, engine, hover.Config{
		Dwell:       cfg.Timing.Dwell,
		Grace:       cfg.Timing.Grace,
		AutoDismiss: cfg.Timing.AutoDismiss,
		Notice:      cfg.Timing.Notice,
		ProfileHost: cfg.Selectors.ProfileHost,
	})
	svc := service.NewFilterService(store, engine, extractor)
	srv := server.New(cfg, server.Deps{Filter: svc, Page: doc, Advisor: advisor, Loop: loop}, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return loop.Run(gctx) })

	cards, err := start(ctx, loop, store, observer, doc)
	if err != nil {
		return fmt.Errorf("failed to start observer: %w", err)
	}
	log.Printf("[INFO] page %s loaded with %d cards", opts.Page, cards)

	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// start loads persisted rules and arms the observer on the loop, returning the number of cards on the page
func start(ctx context.Context, loop *eventloop.Loop, store *rules.Store, observer *scheduler.Observer, doc *page.Document) (int, error) {
	var cards int
	err := loop.Do(ctx, func() {
		store.Load(ctx)
		observer.Start()
		cards = doc.Cards().Length()
	})
	return cards, err
}

func loadPage(path string, sel config.SelectorsConfig) (*page.Document, error) {
	fh, err := os.Open(path) //nolint:gosec // page path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer fh.Close()

	doc, err := page.Parse(fh, page.Selectors{
		Card:         sel.Card,
		Title:        sel.Title,
		Owner:        sel.Owner,
		Author:       sel.Author,
		Container:    sel.Container,
		TooltipClass: sel.TooltipClass,
		NoticeClass:  sel.NoticeClass,
		Noise:        sel.Noise,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	return doc, nil
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
