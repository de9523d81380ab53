// Package web serves the browser widget and its small JSON API.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sadopc/hozoor/internal/daylog"
	"github.com/sadopc/hozoor/internal/tracker"
)

//go:embed page.html
var pageHTML []byte

// Server exposes the presence tracker over HTTP. The widget page polls
// the API once a second; quitting the page shuts the whole process down.
type Server struct {
	tracker *tracker.Tracker
	addr    string

	srv *http.Server
	ln  net.Listener

	done     chan struct{}
	quitOnce sync.Once
}

func New(tr *tracker.Tracker, addr string) *Server {
	s := &Server{
		tracker: tr,
		addr:    addr,
		done:    make(chan struct{}),
	}
	s.srv = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route table. Split out so tests can drive the
// API without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/toggle", s.handleToggle)
	mux.HandleFunc("/api/total", s.handleTotal)
	mux.HandleFunc("/api/quit", s.handleQuit)
	return mux
}

// Start binds the listen address and serves in the background.
// With a ":0" address the real port is available via URL afterwards.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.ln = ln

	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "web server: %v\n", err)
		}
	}()
	return nil
}

// URL returns the address the server is reachable at. Only valid
// after Start.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Done is closed once a quit request has been handled.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(pageHTML)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.writeState(w)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	want := r.URL.Query().Get("state")
	if want != "on" && want != "off" {
		http.Error(w, `state must be "on" or "off"`, http.StatusBadRequest)
		return
	}

	// Level-triggered: the tracker flips only when the desired state
	// differs, under one lock, so a stale page refresh or a racing
	// duplicate request never closes or doubles a session.
	if _, err := s.tracker.Set(want == "on"); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeState(w)
}

func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	total, err := s.tracker.TodayTotal()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	total += s.tracker.Elapsed()

	writeJSON(w, map[string]any{
		"total":         daylog.FormatHM(total),
		"total_seconds": int64(total.Seconds()),
	})
}

func (s *Server) handleQuit(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.Shutdown(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"ok": true})

	s.quitOnce.Do(func() {
		close(s.done)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			s.srv.Shutdown(ctx)
		}()
	})
}

func (s *Server) writeState(w http.ResponseWriter) {
	elapsed := s.tracker.Elapsed()
	writeJSON(w, map[string]any{
		"active":          s.tracker.Active(),
		"elapsed":         daylog.FormatDuration(elapsed),
		"elapsed_seconds": int64(elapsed.Seconds()),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(v)
}
