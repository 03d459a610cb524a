package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/recipe-planner/internal/config"
	"github.com/vladimiradmaev/recipe-planner/internal/importer"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/repository"
	"github.com/vladimiradmaev/recipe-planner/internal/services"
)

func main() {
	store := flag.String("store", "", "store whose catalogue is replaced")
	file := flag.String("file", "", "path to an HTML price sheet")
	dryRun := flag.Bool("dry-run", false, "parse the sheet and print products without saving")
	flag.Parse()

	if *store == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "usage: import-prices -store <name> -file <sheet.html> [-dry-run]")
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	if err := logger.InitWithConfig(cfg.Logger.LoggerSettings()); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sheet, err := readSheet(*file)
	if err != nil {
		logger.Fatal("Failed to read price sheet", "error", err)
	}
	for _, skipped := range sheet.Skipped {
		logger.Warn("Skipping price sheet row", "row", skipped.Row, "reason", skipped.Reason)
	}

	if *dryRun {
		for _, p := range sheet.Products {
			fmt.Printf("%s\t%g %s\t%d\n", p.Name, p.SizeValue, p.SizeUnit, p.PriceCents)
		}
		return
	}

	repo, closeStore, err := repository.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", "error", err)
	}
	defer closeStore()

	imported, err := services.NewPriceService(repo).ImportStoreProducts(ctx, *store, sheet.Products)
	if err != nil {
		logger.Error("Import failed", "store", *store, "error", err)
		os.Exit(1)
	}
	logger.Info("Price sheet imported", "store", *store, "products", imported, "skipped", len(sheet.Skipped))
}

func readSheet(file string) (importer.Sheet, error) {
	f, err := os.Open(file)
	if err != nil {
		return importer.Sheet{}, err
	}
	defer f.Close()
	return importer.ParsePriceSheet(f)
}
