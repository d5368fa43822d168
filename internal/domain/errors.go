package domain

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrMovieAlreadyExists = errors.New("a movie with this title already exists")
	ErrMovieNotFound      = errors.New("movie with the provided id was not found")
	ErrShowtimeNotFound   = errors.New("showtime not found")
	ErrScheduleConflict   = errors.New("at the requested time there is already a showtime scheduled in this theater")
	ErrSeatAlreadyBooked  = errors.New("seat already booked for this showtime")
	ErrInvalidReference   = errors.New("referenced record does not exist")

	ErrInvalidRange     = errors.New("start time must be before end time")
	ErrDurationTooShort = errors.New("showtime duration is too short for this movie")
	ErrBeforeRelease    = errors.New("showtime cannot be scheduled before the movie's release year")
)
