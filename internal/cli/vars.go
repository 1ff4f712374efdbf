package cli

import (
	"fmt"
	"time"

	"github.com/valter-silva-au/cyber-warrior/internal/core"
	"github.com/valter-silva-au/cyber-warrior/internal/observability"
	"github.com/valter-silva-au/cyber-warrior/internal/storage"
	"go.uber.org/zap"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath       string
	Session        *core.Session
	CatalogStore   storage.CatalogStore
	CatalogErr     error
	HelperInterval time.Duration
	Logger         *zap.Logger
)

// Observability service instances, set during app initialization in app.go.
var (
	EventLog    observability.EventLog
	MetricsCalc observability.MetricsCalculator
)

func logger() *zap.Logger {
	if Logger == nil {
		return zap.NewNop()
	}
	return Logger
}

// catalogSession returns the session for commands that read the catalog.
// It fails while the catalog file is unusable.
func catalogSession() (*core.Session, error) {
	if Session == nil {
		return nil, fmt.Errorf("session not initialized")
	}
	if CatalogErr != nil {
		return nil, fmt.Errorf("%w (fix the file or run 'cw missions init --force')", CatalogErr)
	}
	return Session, nil
}
