package integration_test

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type BookingsSuite struct {
	BaseSuite
}

func TestBookingsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(BookingsSuite))
}

func (s *BookingsSuite) TestBookSeat() {
	movieId := s.seedMovie("Whiplash", 90, 2014)
	showtimeId := s.seedShowtime(movieId, "Theater A", "2025-03-10T10:00:00Z", "2025-03-10T11:30:00Z")

	s.Run("books a free seat", func() {
		body := fmt.Sprintf(
			`{"showtimeId": %d, "seatNumber": 15, "userId": "84438967-f68f-4fa0-b620-0f08217e76af"}`,
			showtimeId)

		res := s.doRequest(http.MethodPost, "/bookings", body)
		defer res.Body.Close()

		s.Equal(http.StatusOK, res.StatusCode)

		var booking struct {
			BookingId uuid.UUID `json:"bookingId"`
		}
		decodeBody(s.T(), res.Body, &booking)
		s.NotEqual(uuid.Nil, booking.BookingId)
	})

	s.Run("rejects the same seat for another user", func() {
		body := fmt.Sprintf(
			`{"showtimeId": %d, "seatNumber": 15, "userId": "16a4ba1c-2c5c-47f8-9cb0-6a77d3bb872e"}`,
			showtimeId)

		res := s.doRequest(http.MethodPost, "/bookings", body)
		defer res.Body.Close()

		s.Equal(http.StatusConflict, res.StatusCode)
	})

	s.Run("allows the same seat number for another showtime", func() {
		otherId := s.seedShowtime(movieId, "Theater B", "2025-03-10T10:00:00Z", "2025-03-10T11:30:00Z")

		body := fmt.Sprintf(
			`{"showtimeId": %d, "seatNumber": 15, "userId": "16a4ba1c-2c5c-47f8-9cb0-6a77d3bb872e"}`,
			otherId)

		res := s.doRequest(http.MethodPost, "/bookings", body)
		defer res.Body.Close()

		s.Equal(http.StatusOK, res.StatusCode)
	})

	s.Run("rejects a booking for a missing showtime", func() {
		body := `{"showtimeId": 999, "seatNumber": 15, "userId": "84438967-f68f-4fa0-b620-0f08217e76af"}`

		res := s.doRequest(http.MethodPost, "/bookings", body)
		defer res.Body.Close()

		s.Equal(http.StatusBadRequest, res.StatusCode)
	})
}

// TestConcurrentBookingsOneWinner pins the exclusive-reservation guarantee:
// of N concurrent bookings for the same (showtime, seat) pair, exactly one
// must win and the rest must observe a seat conflict.
func (s *BookingsSuite) TestConcurrentBookingsOneWinner() {
	movieId := s.seedMovie("Whiplash", 90, 2014)
	showtimeId := s.seedShowtime(movieId, "Theater A", "2025-03-10T10:00:00Z", "2025-03-10T11:30:00Z")

	const workers = 10

	statuses := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			body := fmt.Sprintf(
				`{"showtimeId": %d, "seatNumber": 7, "userId": %q}`,
				showtimeId, uuid.NewString())

			res, err := http.Post(s.server.URL+"/bookings", "application/json", strings.NewReader(body))
			if err != nil {
				return
			}
			defer res.Body.Close()

			statuses[i] = res.StatusCode
		}(i)
	}
	wg.Wait()

	booked, conflicted := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusOK:
			booked++
		case http.StatusConflict:
			conflicted++
		default:
			s.Failf("unexpected status", "got %d", status)
		}
	}

	s.Equal(1, booked)
	s.Equal(workers-1, conflicted)
}

func (s *BookingsSuite) TestListBookings() {
	movieId := s.seedMovie("Whiplash", 90, 2014)
	showtimeId := s.seedShowtime(movieId, "Theater A", "2025-03-10T10:00:00Z", "2025-03-10T11:30:00Z")

	for seat := 1; seat <= 3; seat++ {
		body := fmt.Sprintf(
			`{"showtimeId": %d, "seatNumber": %d, "userId": %q}`,
			showtimeId, seat, uuid.NewString())

		res := s.doRequest(http.MethodPost, "/bookings", body)
		res.Body.Close()
		s.Require().Equal(http.StatusOK, res.StatusCode)
	}

	res := s.doRequest(http.MethodGet, "/bookings", "")
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)

	var bookings []struct {
		SeatNumber int `json:"seatNumber"`
	}
	decodeBody(s.T(), res.Body, &bookings)
	s.Len(bookings, 3)
}
