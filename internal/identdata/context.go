// Package identdata holds mzIdentML content as a graph of live entities.
// String id references of the file are resolved once, while the graph is
// built, into Go pointers. Rebuild recreates the canonical lists (the
// single deduplicated list per entity kind) from what the analysis results
// actually reference.
package identdata

import (
	"context"
	"log/slog"

	"github.com/524D/mzidtool/internal/cv"
	"github.com/524D/mzidtool/internal/metrics"
)

// Context is shared by every entity of one document. It holds the CV
// translator and, while a document is being built, the id registry that
// references are resolved against.
type Context struct {
	translator *cv.Translator
	logger     *slog.Logger
	ids        map[string]map[string]any // kind -> id -> entity
}

// NewContext creates a document context. Both arguments may be nil.
func NewContext(tr *cv.Translator, logger *slog.Logger) *Context {
	if tr == nil {
		tr = cv.NewTranslator(nil)
	}
	return &Context{
		translator: tr,
		logger:     logger,
		ids:        make(map[string]map[string]any),
	}
}

// Translator returns the CV translator, nil for a nil context
func (c *Context) Translator() *cv.Translator {
	if c == nil {
		return nil
	}
	return c.translator
}

// Logger never returns nil
func (c *Context) Logger() *slog.Logger {
	if c == nil || c.logger == nil {
		return discardLogger
	}
	return c.logger
}

// Term resolves a document-local cvRef/accession pair. A nil context
// resolves nothing and returns "".
func (c *Context) Term(cvRef, accession string) cv.TermID {
	if c == nil {
		return ""
	}
	return c.translator.Resolve(cvRef, accession)
}

func (c *Context) register(kind, id string, e any) {
	if c == nil || id == "" {
		return
	}
	m, ok := c.ids[kind]
	if !ok {
		m = make(map[string]any)
		c.ids[kind] = m
	}
	m[id] = e
}

// forget drops the id registry once a document is completely built
func (c *Context) forget() {
	if c != nil {
		c.ids = make(map[string]map[string]any)
	}
}

// lookup resolves id to a previously registered entity of the given kind.
// An empty id is an absent optional reference. An id that is not
// registered is dangling: it is logged, counted, and the zero value is
// returned so that the rest of the document stays usable.
func lookup[T any](c *Context, kind, id string) T {
	var zero T
	if c == nil || id == "" {
		return zero
	}
	if e, ok := c.ids[kind][id]; ok {
		if t, ok := e.(T); ok {
			return t
		}
	}
	metrics.DanglingReferences.WithLabelValues(kind).Inc()
	c.Logger().Debug("dangling reference", slog.String("kind", kind), slog.String("id", id))
	return zero
}

var discardLogger = slog.New(discardHandler{})

// discardHandler drops all records
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// base is embedded in every entity
type base struct {
	ctx *Context
}

// Context returns the document context the entity belongs to
func (b *base) Context() *Context {
	return b.ctx
}
