package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	errs "errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/DaanHessen/castaway/internal/console"
	"github.com/DaanHessen/castaway/internal/engine"
	"github.com/DaanHessen/castaway/internal/game"
	"github.com/DaanHessen/castaway/internal/store"
	"github.com/DaanHessen/castaway/internal/ui"
	"github.com/DaanHessen/castaway/internal/util"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// .env is optional
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens.
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logf := log.New(stderr, "", log.LstdFlags).Printf

	cfg, err := util.LoadConfig()
	if err != nil {
		logf("%v", err)
		return 1
	}
	fs := flag.NewFlagSet("castaway", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Seed, "seed", cfg.Seed, "Run seed string (optional; random if omitted)")
	fs.StringVar(&cfg.Save, "save", cfg.Save, "Save location: file.json, file.yaml, sqlite:<path> or postgres://...")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "TUI theme: "+strings.Join(ui.ThemeNames(), "|"))
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Use the plain line console instead of the TUI")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "castaway [--seed s] [--save location] [--plain] [--theme name] | migrate up|down [DSN] | version\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		if errs.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	args := fs.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Fprintln(stdout, "castaway", version)
			return 0
		case "migrate":
			if err := runMigrate(args[1:], cfg.Save, stdout); err != nil {
				logf("migrate: %v", err)
				return 1
			}
			return 0
		default:
			fs.Usage()
			return 2
		}
	}

	logger, closeLog, err := util.OpenLogger(cfg)
	if err != nil {
		logf("%v", err)
		return 1
	}
	defer closeLog()

	seedText := strings.TrimSpace(cfg.Seed)
	if seedText == "" {
		if seedText, err = generateSeed(); err != nil {
			logf("failed to generate seed: %v", err)
			return 1
		}
	}
	seed, err := engine.NewRunSeed(seedText)
	if err != nil {
		logf("%v", err)
		return 1
	}
	logger.Info("starting", "version", version, "seed", seedText, "save", cfg.Save)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if store.IsPostgres(cfg.Save) {
		if err := migrateUp(ctx, cfg.Save); err != nil {
			logf("migrations failed: %v", err)
			return 1
		}
	}
	st, err := store.Open(ctx, cfg.Save)
	if err != nil {
		logf("failed to open save store: %v", err)
		return 1
	}
	defer st.Close()

	runner := game.NewRunner(st, seed, game.WithLogger(logger))
	if cfg.Plain {
		fmt.Fprintf(stdout, "Run seed: %s\n", seedText)
		err = console.New(runner, stdin, stdout).Run(ctx)
	} else {
		err = ui.Run(ctx, runner, cfg.Theme)
	}
	if err != nil {
		logger.Error("exit", "err", err)
		logf("%v", err)
		return 1
	}
	logger.Info("exit")
	return 0
}

func runMigrate(args []string, save string, stdout io.Writer) error {
	if len(args) < 1 {
		return errs.New("migrate requires 'up' or 'down'")
	}
	dsn := save
	if len(args) > 1 {
		dsn = args[1]
	}
	if !store.IsPostgres(dsn) {
		return errs.New("migrate needs a postgres:// DSN (argument or --save)")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		return err
	}
	switch args[0] {
	case "up":
		if err := migrator.Up(ctx); err != nil && !errs.Is(err, store.ErrNoChange) {
			return err
		}
		fmt.Fprintln(stdout, "Migrations applied")
	case "down":
		if err := migrator.Down(ctx); err != nil && !errs.Is(err, store.ErrNoChange) {
			return err
		}
		fmt.Fprintln(stdout, "Migrations rolled back")
	default:
		return errs.New("unknown migrate action; use up|down")
	}
	return nil
}

func migrateUp(ctx context.Context, dsn string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	mig, err := store.NewMigrator(dsn)
	if err != nil {
		return err
	}
	if err := mig.Up(ctx); err != nil && !errs.Is(err, store.ErrNoChange) {
		return err
	}
	return nil
}

func generateSeed() (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
