package mongo

import (
	"context"
	"fmt"
	"moviecatalog/movie"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type movieDocument struct {
	ID     bson.ObjectID `bson:"_id,omitempty"`
	Name   string        `bson:"name"`
	Year   string        `bson:"year"`
	Rating string        `bson:"rating"`
}

// MovieRepository implements movie.Repository on a single collection.
type MovieRepository struct {
	store *Store
	coll  *mongo.Collection
}

func NewMovieRepository(s *Store, collection string) *MovieRepository {
	return &MovieRepository{
		store: s,
		coll:  s.collection(collection),
	}
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := r.ready(); err != nil {
		return movie.Movie{}, err
	}

	doc := movieDocument{
		Name:   m.Name,
		Year:   m.Year,
		Rating: m.Rating,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("mongo: insert movie: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return movie.Movie{}, fmt.Errorf("mongo: insert movie: unexpected id type %T", res.InsertedID)
	}
	doc.ID = id

	return toMovie(doc), nil
}

// AllMovies returns every movie in insertion order. ObjectIDs lead with their
// creation time so sorting on _id is enough.
func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("mongo: find movies: %w", err)
	}

	var docs []movieDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decode movies: %w", err)
	}

	movies := make([]movie.Movie, len(docs))
	for i, doc := range docs {
		movies[i] = toMovie(doc)
	}
	return movies, nil
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, movie.ErrInvalidID
	}
	if err := r.ready(); err != nil {
		return 0, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return 0, fmt.Errorf("mongo: delete movie: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *MovieRepository) Ping(ctx context.Context) error {
	if err := r.ready(); err != nil {
		return err
	}
	return r.store.Ping(ctx)
}

func (r *MovieRepository) ready() error {
	if r == nil || r.coll == nil {
		return movie.ErrStoreNotReady
	}
	return nil
}

func toMovie(doc movieDocument) movie.Movie {
	return movie.Movie{
		ID:     doc.ID.Hex(),
		Name:   doc.Name,
		Year:   doc.Year,
		Rating: doc.Rating,
	}
}
