// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/draw/flow"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/requestmeta"
)

// Machines resolves the draw machine owned by a browser session.
type Machines interface {
	Machine(sessionID string) (*flow.Machine, error)
}

// Dependencies carries shared services and settings for modules.
type Dependencies struct {
	Machines     Machines
	Limits       draw.Limits
	RevealStep   time.Duration
	SchemePolicy requestmeta.SchemePolicy
	CORSOrigins  []string
	Logger       logrus.FieldLogger
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
