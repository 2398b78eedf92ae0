package ports

import (
	"context"

	"github.com/mlenoir/octogym-cli/internal/domain"
)

// CredentialStore persists the session credential across process restarts.
// Load returns a zero session when nothing is persisted.
type CredentialStore interface {
	Load(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Clear(ctx context.Context) error
}

// PreferenceStore keeps small display preferences alongside the credential.
type PreferenceStore interface {
	Theme(ctx context.Context) (string, error)
	SetTheme(ctx context.Context, theme string) error
}
