// Package modules defines the web module registry.
package modules

import (
	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	"github.com/louisbranch/luckydraw/internal/services/web/modules/api"
	"github.com/louisbranch/luckydraw/internal/services/web/modules/lottery"
)

// Module aliases the module interface contract.
type Module = module.Module

// DefaultPageModules returns the browser-facing modules.
func DefaultPageModules() []Module {
	return []Module{
		lottery.New(),
	}
}

// DefaultAPIModules returns the JSON API modules.
func DefaultAPIModules() []Module {
	return []Module{
		api.New(),
	}
}
