package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"riskbattle/config"
	"riskbattle/engine"
	"riskbattle/game"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Server runs battles on request. Every request gets its own battle, seed and
// players; nothing is shared between requests.
type Server struct {
	defaults config.Config
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

func New(defaults config.Config) *Server {
	return &Server{
		defaults: defaults,
		logger:   log.With().Str("component", "server").Logger(),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/battles", s.handleBattle).Methods(http.MethodPost)
	r.HandleFunc("/battles/stream", s.handleStream).Methods(http.MethodGet)
	return r
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info().Msgf("starting battle server on %s ...", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBattle decodes config overrides from the body and returns the result.
func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	cfg := s.defaults
	cfg.Seed = 0
	if r.ContentLength != 0 {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	// A battle stopped at the round limit is still a result, with outcome in_progress
	result, err := s.play(cfg, nil)
	if err != nil && !errors.Is(err, engine.ErrRoundLimit) {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type streamMessage struct {
	Type   string         `json:"type"`
	Event  *game.Event    `json:"event,omitempty"`
	Result *engine.Result `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// handleStream plays a battle configured by query parameters and pushes every
// event over a websocket, followed by the result.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.queryConfig(r)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// The battle runs on this goroutine, so writes never overlap
	var writeErr error
	observer := game.ObserverFunc(func(e game.Event) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(streamMessage{Type: "event", Event: &e})
	})

	result, err := s.play(cfg, observer)
	if writeErr != nil {
		s.logger.Warn().Err(writeErr).Msg("stream client went away")
		return
	}
	msg := streamMessage{Type: "result", Result: &result}
	if err != nil {
		msg = streamMessage{Type: "error", Error: err.Error()}
		if errors.Is(err, engine.ErrRoundLimit) {
			msg.Result = &result
		}
	}
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn().Err(err).Msg("failed to send battle result")
		return
	}
	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) queryConfig(r *http.Request) (config.Config, error) {
	cfg := s.defaults
	cfg.Seed = 0
	q := r.URL.Query()
	ints := map[string]*int{
		"budget":          &cfg.Budget,
		"max_siege_units": &cfg.MaxSiegeUnits,
		"max_rounds":      &cfg.MaxRounds,
	}
	for key, target := range ints {
		if v := q.Get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return cfg, errors.New(key + " must be an integer")
			}
			*target = n
		}
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, errors.New("seed must be an unsigned integer")
		}
		cfg.Seed = seed
	}
	if v := q.Get("initiator"); v != "" {
		cfg.Initiator = v
	}
	if v := q.Get("responder"); v != "" {
		cfg.Responder = v
	}
	return cfg, cfg.Validate()
}

func (s *Server) play(cfg config.Config, observer game.Observer) (engine.Result, error) {
	battle, err := engine.NewBattle(cfg, engine.WithObserver(observer), engine.WithLogger(s.logger.Level(zerolog.WarnLevel)))
	if err != nil {
		return engine.Result{}, err
	}
	result, err := battle.Run()
	s.logger.Info().Uint64("seed", result.Seed).Int("rounds", result.Rounds).Msgf("battle finished: %s", result.Outcome)
	return result, err
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrInvalidBudget),
		errors.Is(err, config.ErrInvalidSiegeCap),
		errors.Is(err, config.ErrInvalidMaxRounds),
		errors.Is(err, config.ErrInvalidNames):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.logger.Error().Err(err).Msg("battle failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
