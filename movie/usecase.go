package movie

import (
	"context"
	"strings"
)

type Service interface {
	AddMovie(ctx context.Context, m Movie) (Movie, error)
	ListMovies(ctx context.Context) ([]Movie, error)
	DeleteMovie(ctx context.Context, id string) (DeleteResult, error)
}

// Repository is implemented by every backing store. CreateMovie returns the
// record with its store-assigned ID. DeleteMovie returns ErrInvalidID when id
// is not in the store's identifier format and the number of removed records
// otherwise.
type Repository interface {
	CreateMovie(ctx context.Context, m Movie) (Movie, error)
	AllMovies(ctx context.Context) ([]Movie, error)
	DeleteMovie(ctx context.Context, id string) (int64, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) AddMovie(ctx context.Context, m Movie) (Movie, error) {
	m = m.Normalize()
	if err := m.Validate(); err != nil {
		return Movie{}, err
	}
	m.ID = ""
	return uc.r.CreateMovie(ctx, m)
}

func (uc *Usecase) ListMovies(ctx context.Context) ([]Movie, error) {
	movies, err := uc.r.AllMovies(ctx)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []Movie{}
	}
	return movies, nil
}

func (uc *Usecase) DeleteMovie(ctx context.Context, id string) (DeleteResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DeleteResult{}, ErrIDRequired
	}

	n, err := uc.r.DeleteMovie(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: n}, nil
}
