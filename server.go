package nlsql

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/response"
)

// ServeHTTP implements http.Handler.
func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// buildMux assembles the route table and middleware chain.
func (s *Service) buildMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handler.HandleHealth)
	mux.HandleFunc("/parse", s.handler.HandleParse)
	mux.HandleFunc("/validate", s.handler.HandleValidate)
	mux.HandleFunc("/queries/supported", s.handler.HandleSupportedQueries)
	mux.HandleFunc("/products", s.handler.HandleProducts)
	mux.HandleFunc("/products/categories", s.handler.HandleCategories)
	mux.HandleFunc("/products/search", s.handler.HandleSearch)
	mux.HandleFunc("/stats", s.handler.HandleStats)
	mux.HandleFunc("/vocabulary", s.handler.HandleVocabulary)

	var h http.Handler = mux
	h = requestIDMiddleware(h)
	h = observability.ServerTimingMiddleware(s.obs)(h)
	h = observability.HTTPMiddleware(s.obs)(h)
	return h
}

// handleRoot serves the health document on "/" and 404s everything else so
// unknown paths do not fall through to the health check.
func (s *Service) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		if err := response.WriteError(w, http.StatusNotFound, "not_found", "unknown path"); err != nil {
			s.logger.Error("writing error response", "error", err)
		}
		return
	}
	s.handler.HandleHealth(w, r)
}

// requestIDMiddleware stamps every response with a correlation ID, keeping
// the client's value when supplied.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(response.HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(response.HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}
