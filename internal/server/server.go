package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"catchup/controller"

	"github.com/julienschmidt/httprouter"
)

const interactionTimeout = 5 * time.Second

// Server exposes the registered feeds over HTTP.
type Server struct {
	feeds *controller.Registry
	addr  string
}

func New(feeds *controller.Registry, addr string) *Server {
	return &Server{feeds: feeds, addr: addr}
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()
	r.GET("/healthz", s.health)
	r.GET("/feeds", s.listFeeds)
	r.GET("/feeds/:name", s.getFeed)
	r.POST("/feeds/:name/items/:index/:action", s.interact)
	return logRequests(r)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("server: listening", "addr", s.addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type feedResponse struct {
	Feed  string           `json:"feed"`
	Items []controller.Row `json:"items"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listFeeds(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	respondJSON(w, http.StatusOK, map[string][]string{"feeds": s.feeds.Names()})
}

func (s *Server) getFeed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	f, slots, ok := s.load(r.Context(), w, ps.ByName("name"))
	if !ok {
		return
	}
	defer controller.CloseAll(slots)
	rows := make([]controller.Row, len(slots))
	for i, sl := range slots {
		rows[i] = sl.Row()
	}
	respondJSON(w, http.StatusOK, feedResponse{Feed: f.Name(), Items: rows})
}

// interact replays a click on one row: open, comments or summarize.
func (s *Server) interact(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	idx, err := strconv.Atoi(ps.ByName("index"))
	if err != nil || idx < 0 {
		respondError(w, http.StatusBadRequest, "invalid item index")
		return
	}
	// dispatch outlives the request
	_, slots, ok := s.load(context.WithoutCancel(r.Context()), w, ps.ByName("name"))
	if !ok {
		return
	}
	defer controller.CloseAll(slots)
	if idx >= len(slots) {
		respondError(w, http.StatusNotFound, "item index out of range")
		return
	}
	slot := slots[idx]

	var delivered bool
	switch ps.ByName("action") {
	case "open":
		delivered = slot.Click(interactionTimeout)
	case "comments":
		delivered = slot.CommentClick(interactionTimeout)
	case "summarize":
		delivered = slot.LongClick(interactionTimeout)
	default:
		respondError(w, http.StatusBadRequest, "unknown action")
		return
	}
	if !delivered {
		respondError(w, http.StatusConflict, "item does not support this action")
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "dispatched"})
}

func (s *Server) load(ctx context.Context, w http.ResponseWriter, name string) (controller.Feed, []*controller.RowSlot, bool) {
	f, err := s.feeds.Get(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return nil, nil, false
	}
	slots, err := f.Load(ctx)
	if err != nil {
		slog.Error("server: load feed failed", "feed", f.Name(), "error", err)
		respondError(w, http.StatusBadGateway, "failed to load feed")
		return nil, nil, false
	}
	return f, slots, true
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"failed to marshal response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(b)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("server: request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start).Round(time.Millisecond))
	})
}
