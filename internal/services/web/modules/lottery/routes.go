package lottery

import (
	"net/http"

	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Root+"{$}", h.handleIndex)

	mux.HandleFunc(http.MethodPost+" "+routepath.Draw, h.handleDraw)
	mux.HandleFunc(http.MethodGet+" "+routepath.Draw, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodPost+" "+routepath.Reset, h.handleReset)
	mux.HandleFunc(http.MethodGet+" "+routepath.Reset, httpx.MethodNotAllowed(http.MethodPost))

	mux.HandleFunc(http.MethodGet+" /{rest...}", h.handleNotFound)
}
