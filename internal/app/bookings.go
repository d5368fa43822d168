package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/showtime-booking-system/internal/domain"
)

type BookSeatRequest struct {
	ShowtimeId int64     `json:"showtimeId" validate:"required,gt=0"`
	SeatNumber int       `json:"seatNumber" validate:"required,gt=0"`
	UserId     uuid.UUID `json:"userId" validate:"required"`
}

type BookingResponse struct {
	BookingId  uuid.UUID `json:"bookingId"`
	ShowtimeId int64     `json:"showtimeId"`
	SeatNumber int       `json:"seatNumber"`
	UserId     uuid.UUID `json:"userId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (app *Application) BookSeat(w http.ResponseWriter, r *http.Request) {
	var req BookSeatRequest

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

	booking := domain.Booking{
		ShowtimeID: req.ShowtimeId,
		SeatNumber: req.SeatNumber,
		UserID:     req.UserId,
	}

	err = app.bookingRepo.Create(r.Context(), &booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			app.metrics.seatConflicts.Add(r.Context(), 1)
			app.conflictResponse(w, r, err.Error())
		case errors.Is(err, domain.ErrInvalidReference):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := toBookingResponse(&booking)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookingRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp[i] = toBookingResponse(booking)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingId:  booking.ID,
		ShowtimeId: booking.ShowtimeID,
		SeatNumber: booking.SeatNumber,
		UserId:     booking.UserID,
		CreatedAt:  booking.CreatedAt,
	}
}
