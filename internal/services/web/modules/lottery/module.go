// Package lottery serves the draw form, the winners grid and the reset action.
package lottery

import (
	"fmt"
	"net/http"

	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

// Module provides the browser draw flow mounted at the site root.
type Module struct{}

// New returns the lottery module.
func New() Module {
	return Module{}
}

// ID returns a stable module identifier.
func (Module) ID() string { return "lottery" }

// Mount wires the lottery routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Machines == nil {
		return module.Mount{}, fmt.Errorf("lottery: session machines are required")
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.Root, Handler: mux}, nil
}
