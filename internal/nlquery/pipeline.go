package nlquery

import (
	"context"
	"log/slog"

	"github.com/samuelhany-cpu/NL-TO-SQL/internal/observability"
)

// Row is one result row from the execution collaborator, keyed by column.
type Row map[string]any

// Executor runs one generated statement against a storage backend. The
// pipeline itself performs no I/O; connection management, schema and
// concurrency discipline are entirely the executor's concern.
type Executor interface {
	Execute(ctx context.Context, stmt Statement) ([]Row, error)
}

// ExecutionResult is the outcome of running one statement.
type ExecutionResult struct {
	SQL   string `json:"sql"`
	Rows  []Row  `json:"rows,omitempty"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// SegmentResult is the per-segment outcome of the pipeline.
type SegmentResult struct {
	Text          string            `json:"text"`
	CorrectedText string            `json:"corrected_text,omitempty"`
	Suggestions   map[string]string `json:"suggestions,omitempty"`
	AST           Node              `json:"-"`
	Tree          *Tree             `json:"tree,omitempty"`
	SQL           []Statement       `json:"sql,omitempty"`
	Results       []ExecutionResult `json:"results,omitempty"`
	Error         string            `json:"error,omitempty"`
}

// Result is the aggregate outcome for one input query. Success is true iff
// at least one segment produced an AST; a mix of succeeded and failed
// segments is the documented best-effort contract.
type Result struct {
	Query    string          `json:"query"`
	Success  bool            `json:"success"`
	Segments []SegmentResult `json:"segments"`
}

// Statements returns every generated statement across segments, in order.
func (r *Result) Statements() []Statement {
	var statements []Statement
	for _, segment := range r.Segments {
		statements = append(statements, segment.SQL...)
	}
	return statements
}

// Pipeline composes splitter, parser, corrector and translator. All of its
// configuration is immutable after construction, so one Pipeline is safe for
// concurrent use.
type Pipeline struct {
	corrector  *Corrector
	translator *Translator
	cache      *segmentCache
	logger     *slog.Logger
	tracer     *observability.Tracer
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithVocabulary replaces the default correction vocabulary.
func WithVocabulary(vocab *Vocabulary) PipelineOption {
	return func(p *Pipeline) {
		p.corrector = NewCorrector(vocab)
	}
}

// WithPredicateTable replaces the default product predicate table.
func WithPredicateTable(table PredicateTable) PipelineOption {
	return func(p *Pipeline) {
		p.translator = NewTranslator(table)
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithTracer sets the tracer used for per-segment and correction spans. A
// nil tracer disables tracing.
func WithTracer(tracer *observability.Tracer) PipelineOption {
	return func(p *Pipeline) {
		if tracer == nil {
			tracer = observability.NewNoopTracer()
		}
		p.tracer = tracer
	}
}

// WithCacheSize sets the segment cache capacity. A size of 0 disables the
// cache.
func WithCacheSize(size int) PipelineOption {
	return func(p *Pipeline) {
		if size <= 0 {
			p.cache = nil
			return
		}
		p.cache = newSegmentCache(size)
	}
}

const defaultCacheSize = 256

// NewPipeline constructs a pipeline with the default vocabulary, predicate
// table and cache size.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		corrector:  NewCorrector(DefaultVocabulary()),
		translator: NewTranslator(nil),
		cache:      newSegmentCache(defaultCacheSize),
		logger:     slog.Default(),
		tracer:     observability.NewNoopTracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Corrector exposes the pipeline's corrector for the vocabulary admin API.
func (p *Pipeline) Corrector() *Corrector {
	return p.corrector
}

// Translator exposes the pipeline's translator for the capability API.
func (p *Pipeline) Translator() *Translator {
	return p.translator
}

// Run processes one raw query: split into segments, parse each with a
// single corrective retry, translate, and optionally execute through exec.
// Segment order in the result matches split order. Failures stay local to
// their segment.
func (p *Pipeline) Run(ctx context.Context, query string, exec Executor) *Result {
	result := &Result{Query: query}

	for _, segment := range SplitSegments(query) {
		segResult := p.runSegment(ctx, segment)

		if segResult.AST != nil {
			result.Success = true
			if exec != nil {
				segResult.Results = p.execute(ctx, exec, segResult.SQL)
			}
		}

		result.Segments = append(result.Segments, segResult)
	}

	return result
}

// runSegment parses and translates one segment, consulting the cache first.
func (p *Pipeline) runSegment(ctx context.Context, segment string) SegmentResult {
	ctx, span := p.tracer.StartSegment(ctx, segment)
	defer span.End()

	if p.cache != nil {
		if entry, ok := p.cache.get(segment); ok {
			return p.segmentResult(segment, entry)
		}
	}

	entry := &cachedSegment{}
	ast, err := ParseSegment(segment)
	if err != nil {
		// One corrective retry on the fuzzy-corrected text, then give up.
		_, corrSpan := p.tracer.StartCorrection(ctx, segment)
		suggestions, corrected := p.corrector.Suggest(segment)
		corrSpan.End()
		if corrected != "" {
			entry.suggestions = suggestions
			if retried, retryErr := ParseSegment(corrected); retryErr == nil {
				ast = retried
				entry.correctedText = corrected
				err = nil
				observability.MarkCorrected(span)
			}
		}
	}

	if err != nil {
		entry.err = err
		observability.RecordError(span, err)
		p.logger.Debug("segment parse failed", "segment", segment, "error", err)
	} else {
		entry.ast = ast
		entry.statements = p.translator.Translate(ast)
	}

	if p.cache != nil {
		p.cache.put(segment, entry)
	}
	return p.segmentResult(segment, entry)
}

func (p *Pipeline) segmentResult(segment string, entry *cachedSegment) SegmentResult {
	segResult := SegmentResult{
		Text:          segment,
		CorrectedText: entry.correctedText,
		Suggestions:   entry.suggestions,
		AST:           entry.ast,
		SQL:           entry.statements,
	}
	if entry.ast != nil {
		segResult.Tree = entry.ast.Tree()
	}
	if entry.err != nil {
		segResult.Error = entry.err.Error()
	}
	return segResult
}

// execute runs each statement, recording per-statement rows or failure. A
// failed statement never aborts its siblings.
func (p *Pipeline) execute(ctx context.Context, exec Executor, statements []Statement) []ExecutionResult {
	results := make([]ExecutionResult, 0, len(statements))
	for _, stmt := range statements {
		execResult := ExecutionResult{SQL: stmt.Render()}
		rows, err := exec.Execute(ctx, stmt)
		if err != nil {
			execResult.Error = err.Error()
			p.logger.Warn("statement execution failed", "sql", stmt.SQL, "error", err)
		} else {
			execResult.Rows = rows
			execResult.Count = len(rows)
		}
		results = append(results, execResult)
	}
	return results
}
