package api

import (
	"net/http"

	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
	"github.com/louisbranch/luckydraw/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodPost+" "+routepath.APIDraws, h.handleCreateDraw)
	mux.HandleFunc(http.MethodGet+" "+routepath.APIDraws, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.APIPrefix+"{rest...}", h.handleNotFound)
}
