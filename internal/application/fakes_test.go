package application

import (
	"context"
	"errors"
	"sync"

	"github.com/mlenoir/octogym-cli/internal/domain"
)

// fakeRecordService is an in-memory stand-in for the remote record store.
// records is the server-side collection; workout calls succeed only for the
// currently issued token.
type fakeRecordService struct {
	mu       sync.Mutex
	calls    map[string]int
	users    map[string]string
	token    string
	records  []domain.Workout
	nextID   int
	failWith map[string]error

	// updateGate, when set, blocks UpdateWorkout until released so tests can
	// interleave mutations deterministically.
	updateGate    chan struct{}
	updateStarted chan struct{}
}

func newFakeRecordService() *fakeRecordService {
	return &fakeRecordService{
		calls:    map[string]int{},
		users:    map[string]string{},
		failWith: map[string]error{},
		nextID:   1,
	}
}

func (f *fakeRecordService) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.failWith[op]
}

func (f *fakeRecordService) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeRecordService) seed(records ...domain.Workout) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, records...)
	for _, r := range records {
		if int(r.ID) >= f.nextID {
			f.nextID = int(r.ID) + 1
		}
	}
}

func (f *fakeRecordService) expireToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
}

func (f *fakeRecordService) checkToken(token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if token == "" || token != f.token {
		return &domain.RemoteError{StatusCode: 401, Detail: "Could not validate credentials.", Kind: domain.ErrUnauthorized}
	}
	return nil
}

func (f *fakeRecordService) Register(_ context.Context, email, password string) error {
	if err := f.record("register"); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[email]; exists {
		return &domain.RemoteError{StatusCode: 400, Detail: "Email already registered.", Kind: domain.ErrConflict}
	}
	f.users[email] = password
	return nil
}

func (f *fakeRecordService) Login(_ context.Context, email, password string) (string, error) {
	if err := f.record("login"); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if stored, ok := f.users[email]; !ok || stored != password {
		return "", &domain.RemoteError{StatusCode: 401, Detail: "Incorrect email or password.", Kind: domain.ErrInvalidCredentials}
	}
	f.token = "token-" + email
	return f.token, nil
}

func (f *fakeRecordService) ListWorkouts(_ context.Context, token string) ([]domain.Workout, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	if err := f.checkToken(token); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Workout, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRecordService) CreateWorkout(_ context.Context, token string, draft domain.WorkoutDraft) (domain.Workout, error) {
	if err := f.record("create"); err != nil {
		return domain.Workout{}, err
	}
	if err := f.checkToken(token); err != nil {
		return domain.Workout{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	date := draft.Date
	if date == "" {
		date = "2026-03-14"
	}
	created := domain.Workout{
		ID:              domain.WorkoutID(f.nextID),
		Type:            draft.Type,
		DurationMinutes: draft.DurationMinutes,
		Intensity:       draft.Intensity,
		Date:            date,
	}
	f.nextID++
	f.records = append(f.records, created)
	return created, nil
}

func (f *fakeRecordService) UpdateWorkout(_ context.Context, token string, id domain.WorkoutID, draft domain.WorkoutDraft) (domain.Workout, error) {
	if err := f.record("update"); err != nil {
		return domain.Workout{}, err
	}
	if err := f.checkToken(token); err != nil {
		return domain.Workout{}, err
	}

	f.mu.Lock()
	var updated domain.Workout
	found := false
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Type = draft.Type
			f.records[i].DurationMinutes = draft.DurationMinutes
			f.records[i].Intensity = draft.Intensity
			if draft.Date != "" {
				f.records[i].Date = draft.Date
			}
			updated = f.records[i]
			found = true
			break
		}
	}
	f.mu.Unlock()

	if !found {
		return domain.Workout{}, &domain.RemoteError{StatusCode: 404, Detail: "Workout not found."}
	}

	// The server has already applied the update; the gate only delays the
	// response reaching the client.
	if f.updateStarted != nil {
		f.updateStarted <- struct{}{}
	}
	if f.updateGate != nil {
		<-f.updateGate
	}

	return updated, nil
}

func (f *fakeRecordService) DeleteWorkout(_ context.Context, token string, id domain.WorkoutID) error {
	if err := f.record("delete"); err != nil {
		return err
	}
	if err := f.checkToken(token); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return &domain.RemoteError{StatusCode: 404, Detail: "Workout not found."}
}

// fakeCredentialStore keeps the persisted session in memory.
type fakeCredentialStore struct {
	mu      sync.Mutex
	session domain.Session
	saveErr error
	loadErr error
	clears  int
}

func (f *fakeCredentialStore) Load(context.Context) (domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return domain.Session{}, f.loadErr
	}
	return f.session, nil
}

func (f *fakeCredentialStore) Save(_ context.Context, session domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.session = session
	return nil
}

func (f *fakeCredentialStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.session = domain.Session{}
	return nil
}

func (f *fakeCredentialStore) persisted() domain.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

var errBoom = errors.New("boom")
