package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

var errInvalidBody = errs.Errorf(errs.EINVALID, "invalid request body")

// RegisterMovieRoutes mounts the full catalog API on g.
func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.POST("/movies", s.handleAddMovie)
	g.GET("/movies/stream", s.handleListMovies)
	g.POST("/delete", s.handleDeleteMovie)
}

// RegisterStandaloneMovieRoutes mounts the read and delete endpoints without
// the /api prefix, for deployments where a proxy strips it.
func (s *Server) RegisterStandaloneMovieRoutes(g *echo.Group) {
	g.GET("/movies/stream", s.handleListMovies)
	g.POST("/delete", s.handleDeleteMovie)
}

// handleAddMovie godoc
// @Summary Create Movie
// @Description Add a movie to the catalog
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body AddMovieRequest true "Movie Data"
// @Success 201 {object} CreateMovieResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleAddMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req AddMovieRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.MovieService.AddMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, CreateMovieResponse{
		Message: "Movie added successfully",
		Movie:   created,
	})
}

// handleListMovies godoc
// @Summary List Movies
// @Description Get every movie in insertion order
// @Tags movies
// @Produce json
// @Success 200 {array} movie.Movie
// @Failure 500 {object} APIResponse
// @Router /api/movies/stream [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	movies, err := s.MovieService.ListMovies(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movies)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Delete a movie by id, reporting how many records were removed
// @Tags movies
// @Accept json
// @Produce json
// @Param request body DeleteMovieRequest true "Movie ID"
// @Success 200 {object} DeleteMovieResponse
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/delete [post]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}

	var req DeleteMovieRequest
	if err := c.Bind(&req); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := s.MovieService.DeleteMovie(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	message := "Movie deleted successfully"
	if result.DeletedCount == 0 {
		message = "No movie matched the given id"
	}
	return c.JSON(http.StatusOK, DeleteMovieResponse{
		Message: message,
		Result:  result,
	})
}
