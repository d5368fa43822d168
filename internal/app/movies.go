package app

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/showtime-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

type MovieRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Genre       string          `json:"genre" validate:"required,max=255"`
	Duration    int             `json:"duration" validate:"required,gt=0"`
	Rating      decimal.Decimal `json:"rating" validate:"gte=0,lte=10"`
	ReleaseYear int             `json:"releaseYear" validate:"required,gte=1888"`
}

type MovieResponse struct {
	Id          int64           `json:"id"`
	Title       string          `json:"title"`
	Genre       string          `json:"genre"`
	Duration    int             `json:"duration"`
	Rating      decimal.Decimal `json:"rating"`
	ReleaseYear int             `json:"releaseYear"`
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := app.movieRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		resp[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req MovieRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := domain.Movie{
		Title:       req.Title,
		Genre:       req.Genre,
		Duration:    req.Duration,
		Rating:      req.Rating,
		ReleaseYear: req.ReleaseYear,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		if errors.Is(err, domain.ErrMovieAlreadyExists) {
			app.conflictResponse(w, r, err.Error())
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toMovieResponse(&movie)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateMovie replaces the catalog attributes of the movie identified by
// title. Showtimes referencing the movie keep their validity: past schedule
// decisions are not re-checked retroactively.
func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "movieTitle")

	var req MovieRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	movie.Title = req.Title
	movie.Genre = req.Genre
	movie.Duration = req.Duration
	movie.Rating = req.Rating
	movie.ReleaseYear = req.ReleaseYear

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			app.conflictResponse(w, r, err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toMovieResponse(movie)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteMovie removes a movie by title. Its showtimes, and their bookings,
// go with it at the storage layer.
func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "movieTitle")

	err := app.movieRepo.DeleteByTitle(r.Context(), title)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		Duration:    movie.Duration,
		Rating:      movie.Rating,
		ReleaseYear: movie.ReleaseYear,
	}
}
