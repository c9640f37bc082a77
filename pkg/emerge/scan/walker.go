// Package scan implements the filesystem walker (spec.md §4.3,
// component D) that builds the FilesystemGraph: a directed tree of
// directories and files with file content attached, used both as the
// FILESYSTEM GraphRepresentation and as the Go parser's
// directory-membership lookup table.
//
// The traversal shape (filepath.WalkDir, skip pruning, symlink
// handling) is adapted from the teacher's pkg/ingestion/repo_loader.go;
// the ignore/allow semantics (substring containment, case-insensitive)
// are grounded on original_source/emerge/files.py and
// emerge/languages/abstractparser.py's ignore-list helpers, reused
// here for directories and files rather than just dependencies.
package scan

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glato/emerge/pkg/emerge/config"
)

// NodeType distinguishes directory nodes from file nodes in a
// FilesystemGraph, per spec.md §3's FilesystemNode.
type NodeType int

const (
	NodeDirectory NodeType = iota
	NodeFile
)

// FilesystemNode is one node of the FilesystemGraph (spec.md §3).
// Files carry their full text content, read 8-bit-clean (ISO-8859-1
// equivalent, byte-for-byte) so binary-ish bytes never fail to decode
// (spec.md §9 Design Notes, Encoding).
type FilesystemNode struct {
	Type         NodeType
	RelativeName string // "parent-relative" name; used as the graph key
	AbsoluteName string
	Content      string // non-empty only for files
}

// Edge is a directory→child (directory or file) relationship.
type Edge struct {
	From string
	To   string
}

// FilesystemGraph is the raw walk result: every node keyed by its
// parent-relative name, the directory→child edge list, and a grouping
// of file keys by their containing directory's relative name (spec.md
// §4.3's scanned_files_nodes_in_directories, consumed by the Go
// parser's import resolution).
type FilesystemGraph struct {
	RootName string
	Nodes    map[string]*FilesystemNode
	Edges    []Edge

	// FilesInDirectory maps a directory's relative name to the
	// relative names of the files it directly contains.
	FilesInDirectory map[string][]string
}

// Walk traverses analysis.SourceDirectory and builds a FilesystemGraph,
// applying the ignore/allow rules from spec.md §4.3. Symlinks are
// resolved; a symlink that cannot be resolved is skipped with a
// logged warning, not treated as fatal. A missing source directory is
// the one fatal condition here (spec.md §6.3), surfaced to the caller
// as a plain error so the analyzer can wrap it as a filesystem error.
func Walk(analysis *config.Analysis, logger *slog.Logger) (*FilesystemGraph, int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	root := analysis.SourceDirectory
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, 0, &os.PathError{Op: "stat", Path: root, Err: os.ErrNotExist}
	}

	parent := filepath.Dir(filepath.Clean(root))
	rootRelative := relativeToParent(parent, root)

	fg := &FilesystemGraph{
		RootName:         rootRelative,
		Nodes:            make(map[string]*FilesystemNode),
		FilesInDirectory: make(map[string][]string),
	}
	fg.Nodes[rootRelative] = &FilesystemNode{Type: NodeDirectory, RelativeName: rootRelative, AbsoluteName: root}

	skipped := 0

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("scan.walk.unresolvable_symlink", "path", path)
				skipped++
				return nil
			}
			return err
		}
		if path == root {
			return nil
		}

		relName := relativeToParent(parent, path)
		name := d.Name()

		if d.IsDir() {
			if matchesAny(name, analysis.IgnoreDirectoriesContaining) {
				logger.Debug("scan.walk.prune_directory", "dir", relName)
				return filepath.SkipDir
			}
			fg.Nodes[relName] = &FilesystemNode{Type: NodeDirectory, RelativeName: relName, AbsoluteName: path}
			fg.Edges = append(fg.Edges, Edge{From: relativeToParent(parent, filepath.Dir(path)), To: relName})
			return nil
		}

		if matchesAny(name, analysis.IgnoreFilesContaining) {
			skipped++
			return nil
		}

		ext := filepath.Ext(name)
		if _, ok := ChooseLanguage(ext, analysis.OnlyPermitLanguages); !ok {
			skipped++
			return nil
		}
		if len(analysis.OnlyPermitExtensions) > 0 && !containsString(analysis.OnlyPermitExtensions, ext) {
			skipped++
			return nil
		}
		if len(analysis.OnlyPermitFilesMatchingAbsolutePath) > 0 && !containsString(analysis.OnlyPermitFilesMatchingAbsolutePath, path) {
			skipped++
			return nil
		}

		content, readErr := readISO88591(path)
		if readErr != nil {
			logger.Warn("scan.walk.unreadable_file", "path", path, "err", readErr)
			skipped++
			return nil
		}

		dirRel := relativeToParent(parent, filepath.Dir(path))
		fg.Nodes[relName] = &FilesystemNode{Type: NodeFile, RelativeName: relName, AbsoluteName: path, Content: content}
		fg.Edges = append(fg.Edges, Edge{From: dirRel, To: relName})
		fg.FilesInDirectory[dirRel] = append(fg.FilesInDirectory[dirRel], relName)

		return nil
	})
	if walkErr != nil {
		return nil, skipped, walkErr
	}

	for dir := range fg.FilesInDirectory {
		sort.Strings(fg.FilesInDirectory[dir])
	}

	return fg, skipped, nil
}

// relativeToParent mirrors emerge's "parent-relative" unique-name
// convention: a path under parent becomes parent-relative using
// forward slashes regardless of host OS.
func relativeToParent(parent, path string) string {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func matchesAny(name string, substrings []string) bool {
	lower := strings.ToLower(name)
	for _, s := range substrings {
		if s == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// readISO88591 reads a file's bytes and maps each byte 1:1 to the
// Unicode code point of the same value, the Go equivalent of Python's
// ISO-8859-1 decode: it never fails regardless of byte content, per
// spec.md §9's 8-bit-clean encoding requirement.
func readISO88591(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(raw))
	for _, by := range raw {
		b.WriteRune(rune(by))
	}
	return b.String(), nil
}
