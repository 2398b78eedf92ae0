// Package api implements the remote record store contract over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mlenoir/octogym-cli/internal/domain"
	"github.com/mlenoir/octogym-cli/internal/ports"
)

const maxResponseBytes = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ ports.RecordService = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

type credentialsPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type workoutPayload struct {
	ID              int    `json:"id"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	Date            string `json:"date"`
}

type draftPayload struct {
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration_minutes"`
	Intensity       string  `json:"intensity"`
	Date            *string `json:"date"`
}

type detailPayload struct {
	Detail string `json:"detail"`
}

func (c *Client) Register(ctx context.Context, email, password string) error {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/register", "", credentialsPayload{Email: email, Password: password})
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		kind := domain.ErrConflict
		if status == http.StatusUnprocessableEntity {
			kind = domain.ErrValidation
		}
		return remoteError(status, body, kind)
	}

	return nil
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/auth/login-json", "", credentialsPayload{Email: email, Password: password})
	if err != nil {
		return "", err
	}

	if status == http.StatusUnauthorized {
		return "", remoteError(status, body, domain.ErrInvalidCredentials)
	}
	if status < 200 || status > 299 {
		return "", remoteError(status, body, nil)
	}

	var token tokenPayload
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if strings.TrimSpace(token.AccessToken) == "" {
		return "", errors.New("login response missing access_token")
	}

	return token.AccessToken, nil
}

func (c *Client) ListWorkouts(ctx context.Context, token string) ([]domain.Workout, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/workouts", token, nil)
	if err != nil {
		return nil, err
	}
	if err := checkWorkoutStatus(status, body); err != nil {
		return nil, err
	}

	var payload []workoutPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode workouts response: %w", err)
	}

	records := make([]domain.Workout, 0, len(payload))
	for _, entry := range payload {
		records = append(records, fromPayload(entry))
	}

	return records, nil
}

func (c *Client) CreateWorkout(ctx context.Context, token string, draft domain.WorkoutDraft) (domain.Workout, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/workouts", token, toDraftPayload(draft))
	if err != nil {
		return domain.Workout{}, err
	}
	if err := checkWorkoutStatus(status, body); err != nil {
		return domain.Workout{}, err
	}

	return decodeWorkout(body)
}

func (c *Client) UpdateWorkout(ctx context.Context, token string, id domain.WorkoutID, draft domain.WorkoutDraft) (domain.Workout, error) {
	status, body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/workouts/%d", id), token, toDraftPayload(draft))
	if err != nil {
		return domain.Workout{}, err
	}
	if err := checkWorkoutStatus(status, body); err != nil {
		return domain.Workout{}, err
	}

	return decodeWorkout(body)
}

func (c *Client) DeleteWorkout(ctx context.Context, token string, id domain.WorkoutID) error {
	status, body, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/workouts/%d", id), token, nil)
	if err != nil {
		return err
	}

	return checkWorkoutStatus(status, body)
}

func (c *Client) do(ctx context.Context, method, path, token string, payload any) (int, []byte, error) {
	var requestBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		requestBody = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, requestBody)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("perform request: %w", errors.Join(domain.ErrNetwork, err))
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", errors.Join(domain.ErrNetwork, err))
	}

	return response.StatusCode, body, nil
}

func checkWorkoutStatus(status int, body []byte) error {
	if status == http.StatusUnauthorized {
		return remoteError(status, body, domain.ErrUnauthorized)
	}
	if status < 200 || status > 299 {
		return remoteError(status, body, nil)
	}
	return nil
}

func remoteError(status int, body []byte, kind error) error {
	return &domain.RemoteError{
		StatusCode: status,
		Detail:     decodeDetail(body),
		Kind:       kind,
	}
}

// decodeDetail pulls the server's detail message out of an error body; it
// falls back to the raw body for non-JSON responses.
func decodeDetail(body []byte) string {
	var payload detailPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return strings.TrimSpace(string(body))
}

func decodeWorkout(body []byte) (domain.Workout, error) {
	var payload workoutPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Workout{}, fmt.Errorf("decode workout response: %w", err)
	}
	return fromPayload(payload), nil
}

func fromPayload(payload workoutPayload) domain.Workout {
	return domain.Workout{
		ID:              domain.WorkoutID(payload.ID),
		Type:            payload.Type,
		DurationMinutes: payload.DurationMinutes,
		Intensity:       payload.Intensity,
		Date:            payload.Date,
	}
}

func toDraftPayload(draft domain.WorkoutDraft) draftPayload {
	payload := draftPayload{
		Type:            draft.Type,
		DurationMinutes: draft.DurationMinutes,
		Intensity:       draft.Intensity,
	}
	if draft.Date != "" {
		date := draft.Date
		payload.Date = &date
	}
	return payload
}
