// Package testsupport hosts an in-memory record store mirroring the OctoGym
// backend contract, for CLI and end-to-end tests.
package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Workout struct {
	ID              int    `json:"id"`
	Type            string `json:"type"`
	DurationMinutes int    `json:"duration_minutes"`
	Intensity       string `json:"intensity"`
	Date            string `json:"date"`
}

type workoutDraft struct {
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration_minutes"`
	Intensity       string  `json:"intensity"`
	Date            *string `json:"date"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecordStore is an httptest-backed stand-in for the remote record store.
type RecordStore struct {
	Server *httptest.Server

	mu      sync.Mutex
	users   map[string]string
	tokens  map[string]string
	records map[string][]Workout
	nextID  int
}

func NewRecordStore() *RecordStore {
	store := &RecordStore{
		users:   map[string]string{},
		tokens:  map[string]string{},
		records: map[string][]Workout{},
		nextID:  1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/auth/register", store.handleRegister)
	mux.HandleFunc("/auth/login-json", store.handleLogin)
	mux.HandleFunc("/workouts", store.handleWorkouts)
	mux.HandleFunc("/workouts/", store.handleWorkoutByID)

	store.Server = httptest.NewServer(mux)
	return store
}

func (s *RecordStore) URL() string {
	return s.Server.URL
}

func (s *RecordStore) Close() {
	s.Server.Close()
}

// RevokeTokens invalidates every issued token, simulating credential expiry.
func (s *RecordStore) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = map[string]string{}
}

// Seed installs records for a user directly, bypassing the HTTP surface.
func (s *RecordStore) Seed(email string, records ...Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, record := range records {
		if record.ID >= s.nextID {
			s.nextID = record.ID + 1
		}
	}
	s.records[email] = append(s.records[email], records...)
}

func (s *RecordStore) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[body.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered.")
		return
	}
	s.users[body.Email] = body.Password
	writeJSON(w, http.StatusCreated, map[string]any{"id": len(s.users), "email": body.Email, "workouts": []Workout{}})
}

func (s *RecordStore) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.users[body.Email]; !ok || stored != body.Password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect email or password.")
		return
	}

	token := fmt.Sprintf("token-%s-%d", body.Email, len(s.tokens))
	s.tokens[token] = body.Email
	writeJSON(w, http.StatusOK, map[string]string{"access_token": token, "token_type": "bearer"})
}

func (s *RecordStore) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")

	s.mu.Lock()
	email, ok := s.tokens[token]
	s.mu.Unlock()
	if header == "" || token == header || !ok {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials.")
		return "", false
	}

	return email, true
}

func (s *RecordStore) handleWorkouts(w http.ResponseWriter, r *http.Request) {
	email, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		records := append([]Workout(nil), s.records[email]...)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, records)
	case http.MethodPost:
		var draft workoutDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body.")
			return
		}

		date := time.Now().Format("2006-01-02")
		if draft.Date != nil && *draft.Date != "" {
			date = *draft.Date
		}

		s.mu.Lock()
		created := Workout{
			ID:              s.nextID,
			Type:            draft.Type,
			DurationMinutes: draft.DurationMinutes,
			Intensity:       draft.Intensity,
			Date:            date,
		}
		s.nextID++
		s.records[email] = append(s.records[email], created)
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, created)
	default:
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func (s *RecordStore) handleWorkoutByID(w http.ResponseWriter, r *http.Request) {
	email, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/workouts/"))
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid workout id.")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var draft workoutDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body.")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for i, record := range s.records[email] {
			if record.ID != id {
				continue
			}
			record.Type = draft.Type
			record.DurationMinutes = draft.DurationMinutes
			record.Intensity = draft.Intensity
			if draft.Date != nil && *draft.Date != "" {
				record.Date = *draft.Date
			}
			s.records[email][i] = record
			writeJSON(w, http.StatusOK, record)
			return
		}
		writeDetail(w, http.StatusNotFound, "Workout not found.")
	case http.MethodDelete:
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, record := range s.records[email] {
			if record.ID != id {
				continue
			}
			s.records[email] = append(s.records[email][:i], s.records[email][i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"detail": "Workout deleted"})
			return
		}
		writeDetail(w, http.StatusNotFound, "Workout not found.")
	default:
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
