package result

// Result is the tagged union spec.md §9's Design Notes call for,
// replacing the source's dynamic dispatch across result subclasses:
// Result = File(FileResult) | Entity(EntityResult). isResult is
// unexported so only *FileResult and *EntityResult can implement it.
type Result interface {
	UniqueName() string
	Metrics() map[string]any
	isResult()
}

// FileResult is the per-file extracted record (spec.md §3).
type FileResult struct {
	// UniqueNameValue is the stable identifier: the file's path
	// relative to the parent of the analysis root, e.g. "proj/src/foo.js".
	// Used as the graph-node key.
	UniqueNameValue string

	AbsoluteName              string
	DisplayName                string
	ScannedFileName             string
	ModuleName                   string
	RelativeFilePathToAnalysis   string
	AbsoluteDirPath              string
	RelativeAnalysisPath         string

	ScannedLanguage Language

	// ScannedTokens is the ordered token sequence after preprocessing.
	ScannedTokens []string

	// PreprocessedSource is the whitespace-joined, comment-stripped
	// form used by grammars that are easier to write against flat text.
	PreprocessedSource string

	// ScannedImportDependencies is the ordered set of unique-name
	// strings the file depends on. Targets may not exist as a Result.
	ScannedImportDependencies []string

	// MetricsValue is written only by the metric engine after creation.
	MetricsValue map[string]any
}

func (f *FileResult) UniqueName() string         { return f.UniqueNameValue }
func (f *FileResult) Metrics() map[string]any    { return f.MetricsValue }
func (f *FileResult) isResult()                  {}

// EntityResult is the per-class/struct/protocol/interface extracted
// record (spec.md §3). It carries a non-owning back-reference to its
// parent file modeled as an index (ParentUniqueName), resolved through
// the Store rather than an owning pointer, per spec.md §9's guidance
// on breaking the source's parent-reference cycle.
type EntityResult struct {
	UniqueNameValue string

	EntityName string
	ModuleName string

	// ParentUniqueName is the unique_name of the FileResult this entity
	// was extracted from, resolved through the Store.
	ParentUniqueName string

	ScannedLanguage Language
	ScannedTokens   []string
	PreprocessedSource string

	ScannedImportDependencies        []string
	ScannedInheritanceDependencies   []string

	MetricsValue map[string]any
}

func (e *EntityResult) UniqueName() string      { return e.UniqueNameValue }
func (e *EntityResult) Metrics() map[string]any { return e.MetricsValue }
func (e *EntityResult) isResult()               {}

// NewFileResult returns a FileResult with its metrics map initialized.
func NewFileResult(uniqueName string) *FileResult {
	return &FileResult{UniqueNameValue: uniqueName, MetricsValue: make(map[string]any)}
}

// NewEntityResult returns an EntityResult with its metrics map initialized.
func NewEntityResult(uniqueName, entityName, parentUniqueName string) *EntityResult {
	return &EntityResult{
		UniqueNameValue:  uniqueName,
		EntityName:       entityName,
		ParentUniqueName: parentUniqueName,
		MetricsValue:     make(map[string]any),
	}
}
