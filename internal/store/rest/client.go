// Package rest consumes the reservation and telemetry HTTP API. It is the
// client-side counterpart of transport/http and maps wire-level failures onto
// the store error taxonomy.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tarikokc/RATE/internal/domain"
	"github.com/Tarikokc/RATE/internal/store"
)

const dateParamLayout = "2006-01-02"

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient targets baseURL (e.g. "http://localhost:5000"). A nil httpClient
// falls back to a client with a default timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) ListRooms(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if err := c.getJSON(ctx, "/api/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *Client) List(ctx context.Context, filter store.ReservationFilter) ([]domain.Reservation, error) {
	params := url.Values{}
	if filter.RoomID != uuid.Nil {
		params.Set("room_id", filter.RoomID.String())
	}
	if !filter.Date.IsZero() {
		params.Set("date", filter.Date.Format(dateParamLayout))
	}

	var reservations []domain.Reservation
	if err := c.getJSON(ctx, "/api/reservations", params, &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

func (c *Client) Create(ctx context.Context, res domain.Reservation) (domain.Reservation, error) {
	body, err := json.Marshal(res)
	if err != nil {
		return domain.Reservation{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reservations", bytes.NewReader(body))
	if err != nil {
		return domain.Reservation{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Reservation{}, store.Unavailablef("create reservation: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return domain.Reservation{}, statusError(resp)
	}

	var created domain.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.Reservation{}, fmt.Errorf("decode created reservation: %w", err)
	}
	return created, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/reservations/"+id.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return store.Unavailablef("delete reservation: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return nil
}

// LatestMeasurement returns the most recent sensor sample, or
// store.ErrNotFound when none has been recorded yet.
func (c *Client) LatestMeasurement(ctx context.Context) (domain.Measurement, error) {
	var m domain.Measurement
	if err := c.getJSON(ctx, "/api/last", nil, &m); err != nil {
		return domain.Measurement{}, err
	}
	return m, nil
}

func (c *Client) AllMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	var ms []domain.Measurement
	if err := c.getJSON(ctx, "/api/all", nil, &ms); err != nil {
		return nil, err
	}
	return ms, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return store.Unavailablef("get %s: %v", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))

	var body errorBody
	_ = json.Unmarshal(raw, &body)
	msg := strings.TrimSpace(body.Error)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return store.ErrNotFound
	case http.StatusConflict:
		return &store.ConflictError{Message: msg}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return fmt.Errorf("%s: %s", resp.Status, msg)
}
