package mongo

import (
	"context"
	"errors"
	"fmt"
	"moviecatalog/movie"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type Options struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store owns the client and its connection pool. It is created once at
// startup, shared by every repository, and closed on shutdown.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to the deployment and verifies it with a ping against
// the primary.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	uri := strings.TrimSpace(opts.URI)
	if uri == "" {
		return nil, errors.New("mongo: uri is required")
	}
	database := strings.TrimSpace(opts.Database)
	if database == "" {
		return nil, errors.New("mongo: database name is required")
	}

	clientOpts := options.Client().ApplyURI(uri)
	if opts.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(opts.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(opts.ConnectTimeout)
	}

	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return movie.ErrStoreNotReady
	}
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo: disconnect: %w", err)
	}
	return nil
}

func (s *Store) collection(name string) *mongo.Collection {
	if s == nil || s.db == nil || strings.TrimSpace(name) == "" {
		return nil
	}
	return s.db.Collection(name)
}
