package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/metinatakli/showtime-booking-system/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateShowtimeRequest struct {
	MovieId   int64           `json:"movieId" validate:"required,gt=0"`
	Theater   string          `json:"theater" validate:"required,max=255"`
	StartTime time.Time       `json:"startTime" validate:"required"`
	EndTime   time.Time       `json:"endTime" validate:"required"`
	Price     decimal.Decimal `json:"price" validate:"required,gt=0"`
}

type UpdateShowtimeRequest struct {
	MovieId   *int64           `json:"movieId" validate:"omitempty,gt=0"`
	Theater   *string          `json:"theater" validate:"omitempty,max=255"`
	StartTime *time.Time       `json:"startTime"`
	EndTime   *time.Time       `json:"endTime"`
	Price     *decimal.Decimal `json:"price" validate:"omitempty,gt=0"`
}

type ShowtimeResponse struct {
	Id        int64           `json:"id"`
	MovieId   int64           `json:"movieId"`
	Theater   string          `json:"theater"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Price     decimal.Decimal `json:"price"`
}

func (app *Application) GetShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShowtimeNotFound) {
			app.notFoundMessageResponse(w, r, err.Error())
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toShowtimeResponse(showtime)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req CreateShowtimeRequest

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

	showtime := domain.Showtime{
		MovieID:   req.MovieId,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}

	err = app.showtimeRepo.Schedule(r.Context(), &showtime)
	if err != nil {
		app.scheduleErrorResponse(w, r, err)
		return
	}

	resp := toShowtimeResponse(&showtime)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateShowtimeRequest

	err = app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	patch := domain.ShowtimePatch{
		MovieID:   req.MovieId,
		Theater:   req.Theater,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}

	showtime, err := app.showtimeRepo.Update(r.Context(), id, patch)
	if err != nil {
		app.scheduleErrorResponse(w, r, err)
		return
	}

	resp := toShowtimeResponse(showtime)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.showtimeRepo.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShowtimeNotFound) {
			app.notFoundMessageResponse(w, r, err.Error())
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// scheduleErrorResponse maps the scheduling error taxonomy onto HTTP statuses.
// Anything unclassified is logged and surfaced generically.
func (app *Application) scheduleErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrDurationTooShort),
		errors.Is(err, domain.ErrBeforeRelease),
		errors.Is(err, domain.ErrInvalidReference):
		app.badRequestResponse(w, r, err)

	case errors.Is(err, domain.ErrMovieNotFound),
		errors.Is(err, domain.ErrShowtimeNotFound):
		app.notFoundMessageResponse(w, r, err.Error())

	case errors.Is(err, domain.ErrScheduleConflict):
		app.metrics.scheduleConflicts.Add(r.Context(), 1)
		app.conflictResponse(w, r, err.Error())

	default:
		app.serverErrorResponse(w, r, err)
	}
}

func toShowtimeResponse(showtime *domain.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		Id:        showtime.ID,
		MovieId:   showtime.MovieID,
		Theater:   showtime.Theater,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Price:     showtime.Price,
	}
}
