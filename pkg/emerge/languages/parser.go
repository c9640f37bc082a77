package languages

import (
	"errors"

	"github.com/glato/emerge/pkg/emerge/config"
	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/scan"
	"github.com/glato/emerge/pkg/emerge/stats"
)

// ErrUnsupported is the sentinel a Parser's ParseEntities returns when
// the language does not support entity extraction, replacing the
// source's NotImplementedError with a plain value per spec.md §9.
var ErrUnsupported = errors.New("entity extraction unsupported for this parser")

// Context is everything a parser needs beyond the single file it is
// working on: the analysis-scoped configuration, the result store
// (shared across all parsers in one analysis), the filesystem graph
// built by the walker (consulted by the Go parser, per spec.md
// invariant 3), and the statistics counter.
type Context struct {
	Analysis *config.Analysis
	Store    *result.Store
	FS       *scan.FilesystemGraph
	Stats    *stats.Statistics
}

// Parser is the capability interface spec.md §9 calls for, replacing
// the source's AbstractParser tower. ParseFile always runs; ParseEntities
// and PostProcess are no-ops (or return ErrUnsupported) for languages
// that don't need them.
type Parser interface {
	// Name identifies the parser, used for logging and statistics.
	Name() string
	// Language returns the grammar this parser implements.
	Language() result.Language

	// ParseFile extracts one FileResult from a single scanned file and
	// stores it in ctx.Store. It may also perform first-pass import
	// resolution if the language doesn't need a second pass.
	ParseFile(ctx *Context, fileName, fullPath string, content string) error

	// ParseEntities performs a third pass, after every parser's
	// PostProcess has run, over ctx.Store's FileResults already produced
	// by this parser's ParseFile, extracting EntityResult objects.
	// Returns ErrUnsupported if the language has no entity concept
	// (spec.md §4.2: only Java/Kotlin/Swift/Groovy do).
	ParseEntities(ctx *Context) error

	// PostProcess runs as a second pass, after every parser's ParseFile
	// has completed but before any parser's ParseEntities runs, used
	// when import resolution needs the full file-level result set (Go:
	// directory-membership resolution; Swift: file-to-file import
	// inference from entity-name token co-occurrence, computed from raw
	// tokens since no EntityResults exist yet at this point). A no-op
	// for most languages.
	PostProcess(ctx *Context) error
}
