// Command chess is an interactive shell for playing and archiving games
// under the full rules of chess.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hailam/chessrules/internal/game"
	"github.com/hailam/chessrules/internal/shell"
	"github.com/hailam/chessrules/internal/storage"
)

var (
	dbDir      = flag.String("db", "", "game archive directory (default: $CHESS_DB or the user data dir)")
	memory     = flag.Bool("memory", false, "keep the archive in memory only")
	startFEN   = flag.String("fen", "", "start from this position")
	debug      = flag.Bool("debug", false, "verbose development logging")
	noColor    = flag.Bool("no-color", false, "disable colored output")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not create logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Error("exiting", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(logger *zap.Logger) error {
	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", zap.String("path", profilePath))
	}

	store, err := openStorage(logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := []shell.Option{
		shell.WithStorage(store),
		shell.WithLogger(logger),
		shell.WithColor(!*noColor && os.Getenv("NO_COLOR") == ""),
	}
	sh := shell.New(os.Stdin, os.Stdout, opts...)

	if *startFEN != "" {
		g, err := game.FromFEN(*startFEN, game.WithLogger(logger))
		if err != nil {
			return err
		}
		sh.SetGame(g)
	}
	return sh.Run()
}

// openStorage picks the archive location: -db, then $CHESS_DB, then the
// platform data directory.
func openStorage(logger *zap.Logger) (*storage.Storage, error) {
	opts := []storage.Option{storage.WithLogger(logger)}
	if *memory {
		return storage.OpenInMemory(opts...)
	}

	dir := *dbDir
	if dir == "" {
		dir = os.Getenv("CHESS_DB")
	}
	if dir == "" {
		return storage.NewStorage(opts...)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	logger.Debug("database directory", zap.String("dir", dir))
	return storage.Open(dir, opts...)
}

// newLogger builds a development logger for -debug and a quiet production
// logger otherwise.
func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}
