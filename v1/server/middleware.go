package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/negroni"
)

// basicAuth guards the /api routes. Credentials are compared in
// constant time; failures get a 401 with a WWW-Authenticate challenge.
// Nothing from the Authorization header is ever logged.
func (s *Server) basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Username == "" && s.cfg.Password == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if !ok || !s.checkCredentials(user, pass) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Login Required"`)
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) checkCredentials(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(s.cfg.Password)) == 1
	return userOK && passOK
}

// requestLogging logs one line per handled request.
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		s.logInfo("request handled", nil, map[string]interface{}{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		})
	})
}

// requestMetrics records the request counter and duration histogram.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)
		s.metrics.IncrementRequests(statusClass(ww.Status()))
		s.metrics.RecordRequestDuration(start, r.URL.Path)
	})
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// tracing opens a span per request, continuing the caller's trace when
// the request carries W3C trace context headers.
func (s *Server) tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.tracer == nil {
			next.ServeHTTP(w, r)
			return
		}

		// Propagator carrier keys are lowercase.
		headers := make(map[string]string, len(r.Header))
		for key, values := range r.Header {
			if len(values) > 0 {
				headers[strings.ToLower(key)] = values[0]
			}
		}

		ctx := s.tracer.SetCarrierOnContext(r.Context(), headers)
		ctx, span := s.tracer.StartSpan(ctx, r.Method+" "+r.URL.Path)
		defer span.End()
		s.tracer.SetAttributes(span, map[string]interface{}{
			"http.method": r.Method,
			"http.target": r.URL.Path,
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
