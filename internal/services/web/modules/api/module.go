// Package api exposes a stateless JSON endpoint for performing draws.
package api

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/louisbranch/luckydraw/internal/draw"
	"github.com/louisbranch/luckydraw/internal/random"
	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

// SourceFactory returns a fresh random source for one draw.
type SourceFactory func() draw.Source

// Module provides the JSON draw API.
type Module struct {
	newSource SourceFactory
}

// New returns an API module drawing from crypto-seeded sources.
func New() Module {
	return NewWithSource(random.NewSource)
}

// NewWithSource returns an API module with an explicit source factory.
func NewWithSource(factory SourceFactory) Module {
	if factory == nil {
		factory = random.NewSource
	}
	return Module{newSource: factory}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "api" }

// Mount wires the API routes. Cross-origin access is only granted to the
// configured origins; with none configured no CORS headers are emitted.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, handlers{deps: deps, newSource: m.newSource})
	var handler http.Handler = mux
	if len(deps.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: deps.CORSOrigins,
			AllowedMethods: []string{http.MethodPost},
			AllowedHeaders: []string{"Content-Type"},
			MaxAge:         600,
		}).Handler(mux)
	}
	return module.Mount{Prefix: routepath.APIPrefix, Handler: handler}, nil
}
