package httpserver

import (
	"moviecatalog/movie"
)

type AddMovieRequest struct {
	Name   string `json:"name" validate:"required,notblank"`
	Year   string `json:"year" validate:"required,notblank,year"`
	Rating string `json:"rating" validate:"required,notblank,rating"`
}

func (r AddMovieRequest) ToMovie() movie.Movie {
	return movie.Movie{
		Name:   r.Name,
		Year:   r.Year,
		Rating: r.Rating,
	}
}

type DeleteMovieRequest struct {
	ID string `json:"id" validate:"required,notblank"`
}
