package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Movie struct {
	ID          int64
	Title       string
	Genre       string
	Duration    int
	Rating      decimal.Decimal
	ReleaseYear int
	CreatedAt   time.Time
	Version     int
}

type MovieRepository interface {
	GetAll(ctx context.Context) ([]*Movie, error)
	GetById(ctx context.Context, id int64) (*Movie, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
	Create(ctx context.Context, movie *Movie) error
	Update(ctx context.Context, movie *Movie) error
	DeleteByTitle(ctx context.Context, title string) error
}
