// Package handlers implements the REST endpoints of the stock query
// service. Handlers are thin: parsing and translation live in nlquery,
// persistence in storage.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/samuelhany-cpu/NL-TO-SQL/internal/nlquery"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/response"
	"github.com/samuelhany-cpu/NL-TO-SQL/internal/storage"
)

// Version reported by the health endpoint.
const Version = "1.0.0"

// Handler serves every endpoint of the service.
type Handler struct {
	pipeline *nlquery.Pipeline
	store    *storage.Manager
	logger   *slog.Logger
	obs      *observability.Config
}

// New creates a handler over the given pipeline and storage manager.
func New(pipeline *nlquery.Pipeline, store *storage.Manager, logger *slog.Logger, obs *observability.Config) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if obs == nil {
		obs = observability.NewConfig()
	}
	return &Handler{pipeline: pipeline, store: store, logger: logger, obs: obs}
}

// ParseRequest is the body of POST /parse.
type ParseRequest struct {
	Query string `json:"query"`
	// Execute runs the generated statements against storage. Defaults to
	// true when omitted.
	Execute *bool `json:"execute,omitempty"`
	// IncludeTree adds the text rendering of each segment's AST.
	IncludeTree bool `json:"include_tree,omitempty"`
}

// ParseResponse is the body returned by POST /parse.
type ParseResponse struct {
	Success  bool            `json:"success"`
	Query    string          `json:"query"`
	Segments []ParsedSegment `json:"segments"`
}

// ParsedSegment is the per-segment view of a pipeline result.
type ParsedSegment struct {
	Text          string                    `json:"text"`
	CorrectedText string                    `json:"corrected_text,omitempty"`
	Suggestions   map[string]string         `json:"suggestions,omitempty"`
	SQL           []string                  `json:"sql,omitempty"`
	Tree          *nlquery.Tree             `json:"tree,omitempty"`
	TextTree      string                    `json:"text_tree,omitempty"`
	Results       []nlquery.ExecutionResult `json:"results,omitempty"`
	Error         string                    `json:"error,omitempty"`
}

// HandleParse handles POST /parse.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON")
		return
	}
	if req.Query == "" {
		h.writeError(w, http.StatusBadRequest, "missing_query", "query is required")
		return
	}

	ctx, span := h.obs.Tracer().StartParse(r.Context(), req.Query)
	defer span.End()

	started := time.Now()
	timing := observability.StartServerTiming(ctx, "parse")
	var exec nlquery.Executor
	if req.Execute == nil || *req.Execute {
		exec = h.store
	}
	result := h.pipeline.Run(ctx, req.Query, exec)
	timing.Stop()
	observability.SetParseOutcome(span, len(result.Segments), result.Success)

	metrics := h.obs.Metrics()
	metrics.RecordParse(ctx, len(result.Segments), result.Success)
	metrics.RecordRequestDuration(ctx, time.Since(started))
	for _, segment := range result.Segments {
		if len(segment.Suggestions) > 0 {
			metrics.RecordCorrection(ctx)
		}
		if segment.Error != "" {
			metrics.RecordSegmentError(ctx)
		}
	}
	h.logger.Info("query parsed",
		"query", req.Query,
		"segments", len(result.Segments),
		"success", result.Success,
	)

	resp := ParseResponse{Success: result.Success, Query: result.Query}
	for _, segment := range result.Segments {
		parsed := ParsedSegment{
			Text:          segment.Text,
			CorrectedText: segment.CorrectedText,
			Suggestions:   segment.Suggestions,
			Tree:          segment.Tree,
			Results:       segment.Results,
			Error:         segment.Error,
		}
		for _, stmt := range segment.SQL {
			parsed.SQL = append(parsed.SQL, stmt.Render())
		}
		if req.IncludeTree && segment.Tree != nil {
			parsed.TextTree = nlquery.RenderTextTree(segment.Tree)
		}
		resp.Segments = append(resp.Segments, parsed)
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// ValidateRequest is the body of POST /validate.
type ValidateRequest struct {
	Query string `json:"query"`
}

// ValidateResponse is the body returned by POST /validate. It reports
// whether the query parses without running anything against storage.
type ValidateResponse struct {
	Query                string            `json:"query"`
	IsValid              bool              `json:"is_valid"`
	QueryTypes           []string          `json:"query_types,omitempty"`
	Errors               []string          `json:"errors,omitempty"`
	CorrectionsSuggested bool              `json:"corrections_suggested"`
	Suggestions          map[string]string `json:"suggestions,omitempty"`
	SQLGenerated         bool              `json:"sql_generated"`
}

// HandleValidate handles POST /validate. Validation is a dry run: the query
// goes through the full pipeline but no statement is executed.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "request body must be JSON")
		return
	}
	if req.Query == "" {
		h.writeError(w, http.StatusBadRequest, "missing_query", "query is required")
		return
	}

	ctx, span := h.obs.Tracer().StartParse(r.Context(), req.Query)
	defer span.End()

	result := h.pipeline.Run(ctx, req.Query, nil)
	observability.SetParseOutcome(span, len(result.Segments), result.Success)

	resp := ValidateResponse{
		Query:        result.Query,
		IsValid:      result.Success,
		SQLGenerated: len(result.Statements()) > 0,
	}
	for _, segment := range result.Segments {
		if segment.Tree != nil {
			resp.QueryTypes = append(resp.QueryTypes, segment.Tree.Type)
		}
		if segment.Error != "" {
			resp.Errors = append(resp.Errors, segment.Error)
		}
		if len(segment.Suggestions) > 0 {
			resp.CorrectionsSuggested = true
			if resp.Suggestions == nil {
				resp.Suggestions = make(map[string]string)
			}
			for from, to := range segment.Suggestions {
				resp.Suggestions[from] = to
			}
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// SupportedQueriesResponse is the body of GET /queries/supported.
type SupportedQueriesResponse struct {
	QueryTypes        []string              `json:"query_types"`
	Examples          map[string][]string   `json:"examples"`
	SupportedProducts []nlquery.ProductType `json:"supported_products"`
}

// queryExamples groups one example question set per grammar production.
var queryExamples = map[string][]string{
	"quantity_queries": {
		"How many TVs do we have?",
		"How many units of item TV-1234 in the store?",
		"How many mobiles we have?",
		"Can you tell me how many laptops we have?",
	},
	"list_queries": {
		"Show all products",
		"List all items",
		"What products are available?",
	},
	"availability_queries": {
		"What is available?",
		"Show available products",
	},
	"low_stock_queries": {
		"What products are low?",
		"Show low stock",
		"What products are out of stock?",
	},
	"comparison_queries": {
		"Show products less than 10",
		"Show products more than 50",
	},
	"compound_queries": {
		"How many TVs we have ? How many phones we have ?",
		"Show all products and also show low stock",
	},
}

// HandleSupportedQueries handles GET /queries/supported.
func (h *Handler) HandleSupportedQueries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	types := make([]string, 0, len(queryExamples))
	for name := range queryExamples {
		types = append(types, name)
	}
	sort.Strings(types)

	h.writeJSON(w, http.StatusOK, SupportedQueriesResponse{
		QueryTypes:        types,
		Examples:          queryExamples,
		SupportedProducts: h.pipeline.Translator().Products(),
	})
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// HandleHealth handles GET /health and GET /.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "nl-to-sql",
		Version: Version,
	})
}

// ProductsResponse is the body of GET /products.
type ProductsResponse struct {
	Products   []storage.StockItem `json:"products"`
	TotalCount int                 `json:"total_count"`
}

// HandleProducts handles GET /products.
func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	products, err := h.store.AllProducts(r.Context())
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ProductsResponse{Products: products, TotalCount: len(products)})
}

// HandleCategories handles GET /products/categories.
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	categories, err := h.store.Categories(r.Context())
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

// HandleSearch handles GET /products/search?q=term.
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	term := r.URL.Query().Get("q")
	if term == "" {
		h.writeError(w, http.StatusBadRequest, "missing_term", "q is required")
		return
	}
	results, err := h.store.SearchProducts(r.Context(), term)
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"results": results, "count": len(results)})
}

// HandleStats handles GET /stats.
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		h.writeStorageError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// HandleVocabulary handles GET /vocabulary.
func (h *Handler) HandleVocabulary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	vocab := h.pipeline.Corrector().Vocabulary()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"vocabulary": vocab.Words(),
		"stats":      vocab.Stats(),
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	if err := response.WriteJSON(w, status, v); err != nil {
		h.logger.Error("writing response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	if err := response.WriteError(w, status, code, message); err != nil {
		h.logger.Error("writing error response", "error", err)
	}
}

func (h *Handler) writeStorageError(w http.ResponseWriter, err error) {
	h.logger.Error("storage query failed", "error", err)
	h.writeError(w, http.StatusInternalServerError, "storage_error", err.Error())
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed string) {
	w.Header().Set("Allow", allowed)
	//nolint:errcheck
	response.WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
}
