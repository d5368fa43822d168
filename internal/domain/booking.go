package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID         uuid.UUID
	ShowtimeID int64
	SeatNumber int
	UserID     uuid.UUID
	CreatedAt  time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetAll(ctx context.Context) ([]*Booking, error)
}
