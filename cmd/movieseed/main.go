package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"moviecatalog/errs"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/storage"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

var cli struct {
	File   string `arg:"" type:"existingfile" help:"CSV file with a header row naming name, year and rating columns."`
	Limit  int    `help:"Stop after this many imported rows (0 imports everything)." default:"0"`
	DryRun bool   `help:"Validate rows without writing them to the store." name:"dry-run"`
}

// movieAdder is the part of movie.Service an import needs.
type movieAdder interface {
	AddMovie(ctx context.Context, m movie.Movie) (movie.Movie, error)
}

type storeCloser interface {
	Close(ctx context.Context) error
}

func closeStore(ctx context.Context, store storeCloser, lg *zap.SugaredLogger) {
	if err := store.Close(ctx); err != nil {
		lg.Errorw("movie store close failed", "error", err)
	}
}

// summary counts what happened to each data row of the CSV.
type summary struct {
	Imported int
	Skipped  int
}

func main() {
	kong.Parse(&cli,
		kong.Name("movieseed"),
		kong.Description("Bulk import movies from a CSV file into the configured store."),
		kong.UsageOnError(),
	)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	lg, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	file, err := os.Open(cli.File)
	if err != nil {
		lg.Fatalw("cannot open csv", "file", cli.File, "error", err)
	}
	defer file.Close()

	ctx := context.Background()

	var svc movieAdder = dryRunService{}
	if !cli.DryRun {
		backend, err := storage.Open(ctx, cfg)
		if err != nil {
			lg.Fatalw("cannot open movie store", "driver", cfg.StoreDriver, "error", err)
		}
		defer closeStore(ctx, backend, lg)
		svc = movie.NewUsecase(backend.Movies)
	}

	sum, err := importMovies(ctx, svc, file, cli.Limit, lg)
	if err != nil {
		lg.Fatalw("import failed", "imported", sum.Imported, "skipped", sum.Skipped, "error", err)
	}

	lg.Infow("import completed", "imported", sum.Imported, "skipped", sum.Skipped, "dry_run", cli.DryRun)
}

// importMovies reads CSV rows from r and adds each through svc. Rows the
// catalog rejects as invalid are skipped; any other error aborts the import.
func importMovies(ctx context.Context, svc movieAdder, r io.Reader, limit int, lg *zap.SugaredLogger) (summary, error) {
	var sum summary

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	cols, err := parseMovieCSVHeader(reader)
	if err != nil {
		return sum, err
	}

	line := 1
	for limit <= 0 || sum.Imported < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return sum, fmt.Errorf("read line %d: %w", line, err)
		}

		m, ok := cols.movie(record)
		if !ok {
			lg.Warnw("skipping short row", "line", line)
			sum.Skipped++
			continue
		}

		if _, err := svc.AddMovie(ctx, m); err != nil {
			if errs.ErrorCode(err) == errs.EINVALID {
				lg.Warnw("skipping invalid row", "line", line, "reason", errs.ErrorMessage(err))
				sum.Skipped++
				continue
			}
			return sum, fmt.Errorf("add movie on line %d: %w", line, err)
		}
		sum.Imported++
	}

	return sum, nil
}

type movieColumns struct {
	name, year, rating int
}

func parseMovieCSVHeader(reader *csv.Reader) (movieColumns, error) {
	header, err := reader.Read()
	if err != nil {
		return movieColumns{}, fmt.Errorf("read header: %w", err)
	}

	cols := movieColumns{name: -1, year: -1, rating: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "name", "title":
			cols.name = i
		case "year":
			cols.year = i
		case "rating":
			cols.rating = i
		}
	}
	if cols.name == -1 || cols.year == -1 || cols.rating == -1 {
		return movieColumns{}, errors.New("missing required columns in csv header")
	}

	return cols, nil
}

func (c movieColumns) movie(record []string) (movie.Movie, bool) {
	if c.name >= len(record) || c.year >= len(record) || c.rating >= len(record) {
		return movie.Movie{}, false
	}
	return movie.Movie{
		Name:   record[c.name],
		Year:   record[c.year],
		Rating: record[c.rating],
	}, true
}

// dryRunService validates movies the same way the catalog does and stores
// nothing.
type dryRunService struct{}

func (dryRunService) AddMovie(_ context.Context, m movie.Movie) (movie.Movie, error) {
	m = m.Normalize()
	return m, m.Validate()
}
