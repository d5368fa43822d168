package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func (s *BaseSuite) doRequest(method, path string, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := s.server.Client().Do(req)
	s.Require().NoError(err)

	return res
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt" || k == "bookingId"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func decodeBody(t *testing.T, body io.Reader, dst any) {
	require.NoError(t, json.NewDecoder(body).Decode(dst))
}

// seedMovie creates a movie through the API and returns its id.
func (s *BaseSuite) seedMovie(title string, duration, releaseYear int) int64 {
	body := fmt.Sprintf(
		`{"title": %q, "genre": "Drama", "duration": %d, "rating": 8.5, "releaseYear": %d}`,
		title, duration, releaseYear)

	res := s.doRequest(http.MethodPost, "/movies", body)
	defer res.Body.Close()
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	var movie struct {
		Id int64 `json:"id"`
	}
	decodeBody(s.T(), res.Body, &movie)

	return movie.Id
}

// seedShowtime creates a showtime through the API and returns its id.
func (s *BaseSuite) seedShowtime(movieId int64, theater, startTime, endTime string) int64 {
	body := fmt.Sprintf(
		`{"movieId": %d, "theater": %q, "startTime": %q, "endTime": %q, "price": 20.20}`,
		movieId, theater, startTime, endTime)

	res := s.doRequest(http.MethodPost, "/showtimes", body)
	defer res.Body.Close()
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	var showtime struct {
		Id int64 `json:"id"`
	}
	decodeBody(s.T(), res.Body, &showtime)

	return showtime.Id
}
