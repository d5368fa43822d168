package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/showtime-booking-system/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetById(ctx context.Context, id int64) (*domain.Showtime, error) {
	query := `
		SELECT id, movie_id, theater, start_time, end_time, price
		FROM showtimes
		WHERE id = $1
	`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.Theater,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShowtimeNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

// Schedule validates the showtime and inserts it. The movie read, the overlap
// count and the insert all run on one serializable snapshot: two concurrent
// schedules for the same theater and range must not both observe a zero
// overlap count.
func (p *PostgresShowtimeRepository) Schedule(ctx context.Context, showtime *domain.Showtime) error {
	// Reject an inverted range before opening a transaction.
	if !showtime.StartTime.Before(showtime.EndTime) {
		return domain.ErrInvalidRange
	}

	return runSerializable(ctx, p.db, func(tx pgx.Tx) error {
		movie, err := getMovieSchedule(ctx, tx, showtime.MovieID)
		if err != nil {
			return err
		}

		err = domain.ValidateSchedule(movie, showtime.StartTime, showtime.EndTime)
		if err != nil {
			return err
		}

		overlaps, err := countOverlapping(ctx, tx, showtime.Theater, showtime.StartTime, showtime.EndTime, 0)
		if err != nil {
			return err
		}

		if overlaps > 0 {
			return domain.ErrScheduleConflict
		}

		query := `
			INSERT INTO showtimes (movie_id, theater, start_time, end_time, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		err = tx.QueryRow(
			ctx,
			query,
			showtime.MovieID,
			showtime.Theater,
			showtime.StartTime,
			showtime.EndTime,
			showtime.Price).Scan(&showtime.ID)

		if err != nil {
			// The movie can be deleted between the validation read and the
			// insert; the foreign key is the final arbiter.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return domain.ErrInvalidReference
			}

			return err
		}

		return nil
	})
}

// Update locks the target row exclusively, merges the patch onto the current
// row image and persists the full row. Validation and the overlap re-check
// only run when a scheduling field changed; the row excludes itself from the
// overlap count so an unchanged range never conflicts with itself.
func (p *PostgresShowtimeRepository) Update(ctx context.Context, id int64, patch domain.ShowtimePatch) (*domain.Showtime, error) {
	var updated domain.Showtime

	err := runSerializable(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, movie_id, theater, start_time, end_time, price
			FROM showtimes
			WHERE id = $1
			FOR UPDATE
		`

		var current domain.Showtime

		err := tx.QueryRow(ctx, query, id).Scan(
			&current.ID,
			&current.MovieID,
			&current.Theater,
			&current.StartTime,
			&current.EndTime,
			&current.Price,
		)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrShowtimeNotFound
			}

			return err
		}

		merged := current
		patch.ApplyTo(&merged)

		if patch.TouchesSchedule() {
			movie, err := getMovieSchedule(ctx, tx, merged.MovieID)
			if err != nil {
				return err
			}

			err = domain.ValidateSchedule(movie, merged.StartTime, merged.EndTime)
			if err != nil {
				return err
			}

			overlaps, err := countOverlapping(ctx, tx, merged.Theater, merged.StartTime, merged.EndTime, merged.ID)
			if err != nil {
				return err
			}

			if overlaps > 0 {
				return domain.ErrScheduleConflict
			}
		}

		updateQuery := `
			UPDATE showtimes
			SET movie_id = $1, theater = $2, start_time = $3, end_time = $4, price = $5
			WHERE id = $6
		`

		_, err = tx.Exec(
			ctx,
			updateQuery,
			merged.MovieID,
			merged.Theater,
			merged.StartTime,
			merged.EndTime,
			merged.Price,
			merged.ID,
		)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
				return domain.ErrInvalidReference
			}

			return err
		}

		updated = merged

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (p *PostgresShowtimeRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM showtimes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrShowtimeNotFound
	}

	return nil
}

// countOverlapping counts the showtimes in a theater whose interval conflicts
// with [startTime, endTime] under the closed-boundary policy: two intervals
// conflict when s1 <= e2 AND e1 >= s2, so a showtime ending exactly when
// another starts is rejected. excludeID omits one row from the count (a row
// being updated must not conflict with itself); ids start at 1, so 0 means no
// exclusion. It must run on the caller's transaction so the count and the
// subsequent write share a snapshot.
func countOverlapping(ctx context.Context, tx pgx.Tx, theater string, startTime, endTime time.Time, excludeID int64) (int, error) {
	query := `
		SELECT count(*)
		FROM showtimes
		WHERE theater = $1
			AND start_time <= $3
			AND end_time >= $2
			AND id != $4
	`

	var count int

	err := tx.QueryRow(ctx, query, theater, startTime, endTime, excludeID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// getMovieSchedule reads the movie attributes the validation chain needs,
// on the caller's transaction. A missing movie returns (nil, nil) so that
// ValidateSchedule can report it in chain order.
func getMovieSchedule(ctx context.Context, tx pgx.Tx, movieID int64) (*domain.Movie, error) {
	query := `
		SELECT id, duration, release_year
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := tx.QueryRow(ctx, query, movieID).Scan(&movie.ID, &movie.Duration, &movie.ReleaseYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &movie, nil
}
