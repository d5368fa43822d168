package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking-system/internal/domain"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking without any availability pre-check. The unique
// constraint on (showtime_id, seat_number) is the sole arbiter of the race
// between two bookings for the same seat; the insert succeeds or fails
// atomically, so no explicit transaction or lock is needed here.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (showtime_id, seat_number, user_id)
		VALUES ($1, $2, $3)
		RETURNING booking_id, created_at
	`

	err := p.db.QueryRow(
		ctx,
		query,
		booking.ShowtimeID,
		booking.SeatNumber,
		booking.UserID).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return domain.ErrSeatAlreadyBooked
			case pgerrcode.ForeignKeyViolation:
				return domain.ErrInvalidReference
			}
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `
		SELECT booking_id, showtime_id, seat_number, user_id, created_at
		FROM bookings
		ORDER BY created_at
	`

	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []*domain.Booking{}

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&booking.ID,
			&booking.ShowtimeID,
			&booking.SeatNumber,
			&booking.UserID,
			&booking.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		bookings = append(bookings, &booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
