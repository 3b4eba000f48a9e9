// Package storage opens the movie repository selected by STORE_DRIVER and
// owns the lifetime of its connection.
package storage

import (
	"context"
	"fmt"
	"moviecatalog/dynamodb"
	"moviecatalog/mongo"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMongo    = "mongo"
	DriverDynamoDB = "dynamodb"
	DriverPostgres = "postgres"
)

// Repository is a movie repository that can also report store health.
type Repository interface {
	movie.Repository
	Ping(ctx context.Context) error
}

type Backend struct {
	Driver string
	Movies Repository

	close func(ctx context.Context) error
}

// Close releases the underlying connection. It is safe to call on a nil
// Backend.
func (b *Backend) Close(ctx context.Context) error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close(ctx)
}

func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	switch driver {
	case DriverMongo:
		return openMongo(ctx, cfg)
	case DriverDynamoDB:
		return openDynamoDB(ctx, cfg)
	case DriverPostgres:
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config) (*Backend, error) {
	store, err := mongo.NewStore(ctx, mongo.Options{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: time.Duration(cfg.Mongo.ConnectTimeout) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	return &Backend{
		Driver: DriverMongo,
		Movies: mongo.NewMovieRepository(store, cfg.Mongo.Collection),
		close:  store.Close,
	}, nil
}

func openDynamoDB(ctx context.Context, cfg *config.Config) (*Backend, error) {
	client, err := dynamodb.NewClient(ctx, dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	})
	if err != nil {
		return nil, err
	}

	if cfg.DynamoDB.CreateTable {
		if err := dynamodb.EnsureMovieTable(ctx, client, cfg.DynamoDB.MoviesTable); err != nil {
			return nil, err
		}
	}

	repo := dynamodb.NewMovieRepository(client, cfg.DynamoDB.MoviesTable)
	if err := repo.Ping(ctx); err != nil {
		return nil, err
	}

	return &Backend{
		Driver: DriverDynamoDB,
		Movies: repo,
	}, nil
}

func openPostgres(cfg *config.Config) (*Backend, error) {
	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: open connection: %w", err)
	}

	return &Backend{
		Driver: DriverPostgres,
		Movies: postgres.NewMovieRepository(db),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}
