package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/patternpath/pagepatch/internal/adapters/driven/config/file"
	"github.com/patternpath/pagepatch/internal/adapters/driven/storage/filesystem"
	"github.com/patternpath/pagepatch/internal/adapters/driving/cli"
	"github.com/patternpath/pagepatch/internal/core/domain"
	"github.com/patternpath/pagepatch/internal/core/ports/driving"
	"github.com/patternpath/pagepatch/internal/core/services"
	"github.com/patternpath/pagepatch/internal/extractors/rows"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetApp(&cli.App{
		LoadConfig:      loadConfig,
		WriteConfig:     file.WriteConfig,
		LoadDescriptors: file.LoadDescriptors,
		NewDriver:       newDriver,
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (domain.Config, error) {
	store, err := file.NewConfigStore(path)
	if err != nil {
		return domain.Config{}, err
	}
	return store.Resolve()
}

// newDriver wires the adapters into the batch driver.
func newDriver(cfg domain.Config) (driving.BatchDriver, error) {
	corpus := filesystem.NewCorpusStore(cfg.CorpusDir)
	artifacts := filesystem.NewArtifactStore(cfg.DataDir)
	rewriter := services.NewPageRewriter(rows.New(""), artifacts, cfg.DataImportPrefix, cfg.AssetsPrefix)
	generator := services.NewGenerator(services.DefaultTemplateLiterals(), cfg.DataImportPrefix)
	return services.NewBatch(cfg, corpus, artifacts, rewriter, generator), nil
}
