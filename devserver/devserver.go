// Package devserver serves the emulator page and its assets during
// development and relays browser diagnostics back to the terminal.
package devserver

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const RelayPath = "/.log"

type Options struct {
	// Root holds index.html, the wasm loader, the native module and the
	// boot assets.
	Root   fs.FS
	Logger *slog.Logger
}

type Server struct {
	root     fs.FS
	log      *slog.Logger
	upgrader websocket.Upgrader
	mux      *http.ServeMux
}

func New(opts Options) *Server {
	s := &Server{
		root: opts.Root,
		log:  opts.Logger,
		upgrader: websocket.Upgrader{
			// the relay only ever talks to pages served from here
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		mux: http.NewServeMux(),
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.mux.Handle(RelayPath, http.HandlerFunc(s.relay))
	s.mux.Handle("/", http.HandlerFunc(s.static))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loggerMiddleware(s.log, s.mux).ServeHTTP(w, r)
}

func loggerMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start))
	})
}

func (s *Server) static(w http.ResponseWriter, r *http.Request) {
	// SharedArrayBuffer in the native module needs cross-origin isolation
	w.Header().Add("Cross-Origin-Opener-Policy", "same-origin")
	w.Header().Add("Cross-Origin-Embedder-Policy", "require-corp")
	if strings.HasSuffix(r.URL.Path, ".wasm") {
		w.Header().Set("Content-Type", "application/wasm")
	}
	http.FileServerFS(s.root).ServeHTTP(w, r)
}

// relay logs each text message from the page as one diagnostic line.
func (s *Server) relay(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("relay upgrade", "err", err)
		return
	}
	defer conn.Close()

	log := s.log.With("remote", r.RemoteAddr)
	for {
		typ, msg, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("relay closed", "err", err)
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		for _, line := range strings.Split(strings.TrimRight(string(msg), "\n"), "\n") {
			if line == "" {
				continue
			}
			log.Log(r.Context(), lineLevel(line), line)
		}
	}
}

// lineLevel reads the level column of a line written by the page's log
// handler ("15:04:05.000 ERROR pkg: msg"). Runtime stderr lines carry an
// "Error: " prefix instead.
func lineLevel(line string) slog.Level {
	if strings.Contains(line, "Error: ") {
		return slog.LevelError
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return slog.LevelInfo
	}
	if _, err := time.Parse("15:04:05.000", fields[0]); err != nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(fields[1])); err != nil {
		return slog.LevelInfo
	}
	return level
}
