package postgres

import (
	"context"
	"fmt"
	"moviecatalog/movie"
	"strconv"

	"gorm.io/gorm"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Name   string `gorm:"not null"`
	Year   string `gorm:"not null"`
	Rating string `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) CreateMovie(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if r.db == nil {
		return movie.Movie{}, movie.ErrStoreNotReady
	}

	model := MovieModel{
		Name:   m.Name,
		Year:   m.Year,
		Rating: m.Rating,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movie.Movie{}, fmt.Errorf("postgres: insert movie: %w", err)
	}
	return toMovie(model), nil
}

func (r *MovieRepository) AllMovies(ctx context.Context) ([]movie.Movie, error) {
	if r.db == nil {
		return nil, movie.ErrStoreNotReady
	}

	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("postgres: select movies: %w", err)
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = toMovie(model)
	}
	return movies, nil
}

func (r *MovieRepository) DeleteMovie(ctx context.Context, id string) (int64, error) {
	key, err := strconv.ParseInt(id, 10, 64)
	if err != nil || key <= 0 {
		return 0, movie.ErrInvalidID
	}
	if r.db == nil {
		return 0, movie.ErrStoreNotReady
	}

	res := r.db.WithContext(ctx).Delete(&MovieModel{}, key)
	if res.Error != nil {
		return 0, fmt.Errorf("postgres: delete movie: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *MovieRepository) Ping(ctx context.Context) error {
	if r.db == nil {
		return movie.ErrStoreNotReady
	}

	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("postgres: get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

func toMovie(model MovieModel) movie.Movie {
	return movie.Movie{
		ID:     strconv.FormatUint(model.ID, 10),
		Name:   model.Name,
		Year:   model.Year,
		Rating: model.Rating,
	}
}
