// Package testing provides test fixture helpers for the emerge engine.
//
// Retargeted from the teacher's CozoDB row-seeding idiom
// (kraklabs-cie/internal/testing: SetupTestBackend/InsertTestFunction/
// InsertTestFile) to building in-memory result.Store fixtures: rather
// than seeding rows in an embedded database, these helpers construct
// FileResult/EntityResult values and register them directly with a
// result.Store, for tests that exercise the metric engine or graph
// builders without running a full parser over real files.
package testing

import (
	"testing"

	"github.com/glato/emerge/pkg/emerge/result"
)

// NewFileResult builds a FileResult with the given unique name, language,
// and import dependencies, registering it with store and returning it.
//
// Example:
//
//	f := testing.NewFileResult(t, store, "proj/main.go", result.LangGo, "proj/lib/x.go")
func NewFileResult(t *testing.T, store *result.Store, uniqueName string, lang result.Language, dependencies ...string) *result.FileResult {
	t.Helper()

	f := result.NewFileResult(uniqueName)
	f.ScannedLanguage = lang
	f.ScannedImportDependencies = dependencies
	store.Put(f)
	return f
}

// NewEntityResult builds an EntityResult under parentUniqueName,
// registering it with store and returning it.
func NewEntityResult(t *testing.T, store *result.Store, uniqueName, entityName, parentUniqueName string, lang result.Language) *result.EntityResult {
	t.Helper()

	e := result.NewEntityResult(uniqueName, entityName, parentUniqueName)
	e.ScannedLanguage = lang
	store.Put(e)
	return e
}

// WithInheritance sets e's inheritance dependencies and returns e, for
// chaining onto NewEntityResult at a call site.
func WithInheritance(e *result.EntityResult, dependencies ...string) *result.EntityResult {
	e.ScannedInheritanceDependencies = dependencies
	return e
}

// SeedAnalysis populates store with a small multi-file fixture: each
// entry in files maps a unique file name to the unique names of files
// it depends on. It returns the created FileResults in map iteration
// order (not defined), for tests that need a ready-made file-dependency graph
// without hand-writing every FileResult.
//
// Example:
//
//	files := testing.SeedAnalysis(t, store, map[string][]string{
//	    "proj/main.go": {"proj/lib/x.go"},
//	    "proj/lib/x.go": nil,
//	})
func SeedAnalysis(t *testing.T, store *result.Store, files map[string][]string) []*result.FileResult {
	t.Helper()

	out := make([]*result.FileResult, 0, len(files))
	for name, deps := range files {
		out = append(out, NewFileResult(t, store, name, result.LangGo, deps...))
	}
	return out
}
