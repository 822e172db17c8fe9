package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/logger"
)

// HealthStatus is the /healthz body.
type HealthStatus struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	Connected        bool       `json:"connected"`
	CommandsReceived int64      `json:"commands_received"`
	LastCommandTime  *time.Time `json:"last_command_time,omitempty"`
}

// ReadyStatus is the /readyz body.
type ReadyStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// VersionInfo is the /version body.
type VersionInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"go_version"`
}

// DropResult is the forced-drop body.
type DropResult struct {
	Game   string `json:"game"`
	Guild  string `json:"guild"`
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	handled, last := s.probe.Handled()
	body := HealthStatus{
		Status:           StatusHealthy,
		Uptime:           s.probe.Uptime().Round(time.Second).String(),
		Connected:        s.probe.Connected(),
		CommandsReceived: handled,
	}
	if !last.IsZero() {
		body.LastCommandTime = &last
	}

	status := http.StatusOK
	if !body.Connected {
		body.Status = StatusDegraded
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, body)
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			logger.FromContext(ctx).Error(domain.ErrMsgStoreUnavailable, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, ReadyStatus{Status: StatusNotReady, Message: domain.ErrMsgStoreUnavailable})
			return
		}
	}
	respondJSON(w, http.StatusOK, ReadyStatus{Status: StatusReady})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionInfo{
		Version:     s.cfg.Version,
		Environment: s.cfg.Environment,
		GoVersion:   runtime.Version(),
	})
}

func (s *Server) handleForceDrop(w http.ResponseWriter, r *http.Request) {
	game := domain.Game(chi.URLParam(r, "game"))
	guildID := chi.URLParam(r, "guildID")

	result, err := s.dropper.DropNow(r.Context(), game, guildID)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: ErrMsgUnknownGame})
		return
	case err != nil:
		logger.FromContext(r.Context()).Error(LogMsgForcedDrop, "game", game, "guild_id", guildID, "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	logger.FromContext(r.Context()).Info(LogMsgForcedDrop, "game", game, "guild_id", guildID, "result", result)
	respondJSON(w, http.StatusOK, DropResult{Game: string(game), Guild: guildID, Result: result})
}
