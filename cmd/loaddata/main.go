// Command loaddata imports ingredients from a CSV or JSON file or URL.
//
// Usage:
//
//	loaddata [-clean] [-format csv|json] <path-or-url>
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-dz/foodgram/internal/config"
	"github.com/matt-dz/foodgram/internal/http"
	"github.com/matt-dz/foodgram/internal/ingredients"
	"github.com/matt-dz/foodgram/internal/log"
	"github.com/matt-dz/foodgram/internal/setup"
)

func main() {
	clean := flag.Bool("clean", false, "delete existing ingredients before loading")
	format := flag.String("format", "", "input format (csv or json); inferred from the source when empty")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-clean] [-format csv|json] <path-or-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	source := flag.Arg(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conf, err := config.LoadConfig()
	if err != nil {
		log.New(nil).Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := log.New(&slog.HandlerOptions{Level: log.LevelForEnv(conf.Env)})

	inputFormat := ingredients.Format(*format)
	if inputFormat == "" {
		inputFormat, err = ingredients.FormatFromSource(source)
		if err != nil {
			logger.Error("failed to infer input format", slog.Any("error", err))
			os.Exit(1)
		}
	}

	data, err := ingredients.Read(ctx, source, http.New(http.DefaultConfig(logger)))
	if err != nil {
		logger.Error("failed to read ingredients", slog.String("source", source), slog.Any("error", err))
		os.Exit(1)
	}
	items, err := ingredients.Parse(data, inputFormat)
	if err != nil {
		logger.Error("failed to parse ingredients", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := setup.Database(ctx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	result, err := ingredients.Load(ctx, db, items, *clean)
	if err != nil {
		logger.Error("failed to load ingredients", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("loaded ingredients",
		slog.Int("read", result.Read),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped),
		slog.Int64("deleted", result.Deleted))
}
