// Package httpserv is the liveness surface: a static "running" page, a
// health probe, and the current pairing code rendered as a scannable PNG.
package httpserv

import (
	"log/slog"
	"net/http"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"ledgerbot/internal/pairing"
)

const qrImageSize = 300

type Server struct {
	http.Server
	pairing *pairing.Cell
}

func New(addr string, cell *pairing.Cell) *Server {
	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:           addr,
			Handler:        mux,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 16,
		},
		pairing: cell,
	}

	mux.HandleFunc("/", withRequestLog(s.handleRoot))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/qr", withRequestLog(s.handleQR))
	return s
}

// withRequestLog logs request completion with method, path and duration.
func withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)
		slog.InfoContext(r.Context(), "Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds())
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	_, _ = w.Write([]byte("ledgerbot is running"))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	code, ok := s.pairing.Current()
	if !ok {
		http.Error(w, "No pairing code available.", http.StatusNotFound)
		return
	}
	png, err := qrcode.Encode(code, qrcode.Medium, qrImageSize)
	if err != nil {
		slog.ErrorContext(r.Context(), "QR encoding failed", "error", err)
		http.Error(w, "Failed to generate QR code image.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}
