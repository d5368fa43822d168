package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID        int64
	MovieID   int64
	Theater   string
	StartTime time.Time
	EndTime   time.Time
	Price     decimal.Decimal
}

// ShowtimePatch carries the fields of a partial showtime update. A nil field
// keeps the current value.
type ShowtimePatch struct {
	MovieID   *int64
	Theater   *string
	StartTime *time.Time
	EndTime   *time.Time
	Price     *decimal.Decimal
}

// TouchesSchedule reports whether the patch changes any field that can
// introduce a scheduling conflict. A price-only update never triggers
// re-validation or an overlap re-check.
func (p ShowtimePatch) TouchesSchedule() bool {
	return p.MovieID != nil || p.Theater != nil || p.StartTime != nil || p.EndTime != nil
}

// ApplyTo merges the patch onto a full row image.
func (p ShowtimePatch) ApplyTo(s *Showtime) {
	if p.MovieID != nil {
		s.MovieID = *p.MovieID
	}
	if p.Theater != nil {
		s.Theater = *p.Theater
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
}

// ValidateSchedule runs the showtime rule chain in a fixed order and returns
// the first violation: time ordering, movie existence, duration sufficiency,
// release-year constraint. Callers pass a nil movie when the lookup found no
// row; the range check still wins over ErrMovieNotFound in that case.
func ValidateSchedule(movie *Movie, startTime, endTime time.Time) error {
	if !startTime.Before(endTime) {
		return ErrInvalidRange
	}
	if movie == nil {
		return ErrMovieNotFound
	}
	if endTime.Sub(startTime) < time.Duration(movie.Duration)*time.Minute {
		return ErrDurationTooShort
	}
	if startTime.Year() < movie.ReleaseYear {
		return ErrBeforeRelease
	}
	return nil
}

type ShowtimeRepository interface {
	GetById(ctx context.Context, id int64) (*Showtime, error)
	Schedule(ctx context.Context, showtime *Showtime) error
	Update(ctx context.Context, id int64, patch ShowtimePatch) (*Showtime, error)
	Delete(ctx context.Context, id int64) error
}
