package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	apiclient "github.com/mlenoir/octogym-cli/internal/adapters/api"
	credstore "github.com/mlenoir/octogym-cli/internal/adapters/credstore/toml"
	statsadapter "github.com/mlenoir/octogym-cli/internal/adapters/render/stats"
	"github.com/mlenoir/octogym-cli/internal/analytics"
	"github.com/mlenoir/octogym-cli/internal/application"
	"github.com/mlenoir/octogym-cli/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	session       *application.SessionManager
	store         *application.WorkoutStore
	prefs         ports.PreferenceStore
	statsRenderer func(analytics.Snapshot, statsadapter.RenderOptions) (string, error)
	now           func() time.Time
}

func wireApp() (*app, error) {
	creds, err := credstore.NewStore(viper.New())
	if err != nil {
		return nil, fmt.Errorf("wire credential store: %w", err)
	}

	client := apiclient.NewClient(
		envOrDefault("OG_API_BASE_URL", "http://127.0.0.1:8000"),
		http.DefaultClient,
	)

	session := application.NewSessionManager(client, creds)
	store := application.NewWorkoutStore(client, session, ports.SystemClock{})

	if err := session.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("restore persisted session: %w", err)
	}

	return &app{
		session:       session,
		store:         store,
		prefs:         creds,
		statsRenderer: statsadapter.Render,
		now:           time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
