package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/louisbranch/luckydraw/internal/draw"
	module "github.com/louisbranch/luckydraw/internal/services/web/module"
	"github.com/louisbranch/luckydraw/internal/services/web/platform/httpx"
)

const maxBodyBytes = 4 << 10

type handlers struct {
	deps      module.Dependencies
	newSource SourceFactory
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

func (h handlers) handleCreateDraw(w http.ResponseWriter, r *http.Request) {
	var req draw.Request
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		_ = httpx.WriteJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := draw.Draw(req, h.deps.Limits, h.newSource())
	if err != nil {
		var validation *draw.ValidationError
		if errors.As(err, &validation) {
			_ = httpx.WriteJSON(w, http.StatusBadRequest, errorResponse{
				Error: validation.Message,
				Field: string(validation.Field),
				Rule:  string(validation.Rule),
			})
			return
		}
		h.logger().WithError(err).WithField("request_id", httpx.RequestIDFrom(r)).Error("api draw failed")
		_ = httpx.WriteJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	h.logger().WithFields(logrus.Fields{
		"start":         req.Start,
		"end":           req.End,
		"winners_count": req.WinnersCount,
		"request_id":    httpx.RequestIDFrom(r),
	}).Debug("api draw completed")
	_ = httpx.WriteJSON(w, http.StatusOK, result)
}

func (h handlers) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSONError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

func (h handlers) logger() logrus.FieldLogger {
	if h.deps.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.deps.Logger
}
