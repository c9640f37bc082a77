// Package config holds the declarative configuration types described
// in spec.md §6.1. Loading these from a file and a CLI front end are
// explicitly out of core scope; these are the data types a caller
// (a future config loader, a test, or cmd/emerge) populates to drive
// one or more analyses.
//
// YAML struct tags are carried because the ambient stack keeps
// gopkg.in/yaml.v3 (see SPEC_FULL.md AMBIENT STACK), even though this
// package itself never reads a file from disk.
package config

// Project is the top-level declarative configuration: a project name,
// a log level, and one or more analyses to run.
type Project struct {
	Name      string     `yaml:"project_name"`
	LogLevel  string     `yaml:"log_level"`
	Analyses  []Analysis `yaml:"analyses"`
}

// Analysis declares one scan: where to look, what to permit/ignore,
// what import aliases to apply, and which metric/graph tokens to
// register for the file scan and/or the entity scan.
type Analysis struct {
	Name string `yaml:"analysis_name"`

	SourceDirectory string `yaml:"source_directory"`

	OnlyPermitLanguages  []string `yaml:"only_permit_languages"`
	OnlyPermitExtensions []string `yaml:"only_permit_file_extensions"`

	// OnlyPermitFilesMatchingAbsolutePath is an optional allow-list; if
	// non-empty, only files whose absolute path is present here are
	// scanned at all. It is applied in addition to the language/extension
	// permit lists: a listed file must still pass those.
	OnlyPermitFilesMatchingAbsolutePath []string `yaml:"only_permit_files_matching_absolute_path"`

	IgnoreDirectoriesContaining []string `yaml:"ignore_directories_containing"`
	IgnoreFilesContaining       []string `yaml:"ignore_files_containing"`
	IgnoreDependenciesContaining []string `yaml:"ignore_dependencies_containing"`
	IgnoreEntitiesContaining    []string `yaml:"ignore_entities_containing"`

	// ImportAliases maps a substring appearing in a raw dependency
	// string to its replacement, applied before path resolution (e.g.
	// JavaScript/TypeScript `{"@app": "src"}`).
	ImportAliases map[string]string `yaml:"import_aliases"`

	FileScanMetrics   []string `yaml:"file_scan,omitempty"`
	EntityScanMetrics []string `yaml:"entity_scan,omitempty"`

	Export ExportBlock `yaml:"export"`
}

// ExportBlock is a placeholder carrying only what an exporter needs to
// know to exist; exporters themselves are out of core scope (spec.md §1).
type ExportBlock struct {
	Directory string `yaml:"directory"`
}

// Metric config tokens recognized in FileScanMetrics/EntityScanMetrics,
// per spec.md §6.1's table.
const (
	TokenNumberOfMethods  = "number_of_methods"
	TokenSourceLinesOfCode = "source_lines_of_code"
	TokenDependencyGraph  = "dependency_graph"
	TokenInheritanceGraph = "inheritance_graph"
	TokenCompleteGraph    = "complete_graph"
	TokenFanInOut         = "fan_in_out"
	TokenLouvainModularity = "louvain_modularity"
	TokenTFIDF            = "tfidf"
)

// HasFileToken reports whether tok is registered for the file scan.
func (a *Analysis) HasFileToken(tok string) bool {
	return contains(a.FileScanMetrics, tok)
}

// HasEntityToken reports whether tok is registered for the entity scan.
func (a *Analysis) HasEntityToken(tok string) bool {
	return contains(a.EntityScanMetrics, tok)
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
