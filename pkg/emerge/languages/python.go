package languages

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/stats"
)

var pythonTokenMappings = map[string]string{
	":": " : ", ";": " ; ", "{": " { ", "}": " } ", "(": " ( ", ")": " ) ",
	"[": " [ ", "]": " ] ", "?": " ? ", "!": " ! ", ",": " , ", "<": " < ", ">": " > ", `"`: ` " `,
}

// PythonParser implements Parser for Python source (spec.md §4.2).
// Python has no entity concept (ParseEntities returns ErrUnsupported).
type PythonParser struct{}

func NewPythonParser() *PythonParser { return &PythonParser{} }

func (p *PythonParser) Name() string              { return "python-parser" }
func (p *PythonParser) Language() result.Language { return result.LangPython }

func (p *PythonParser) ParseFile(ctx *Context, fileName, fullPath, content string) error {
	tokens := PreprocessByMapping(content, pythonTokenMappings)

	uniqueName := relativeAnalysisPath(ctx, fullPath)
	fr := result.NewFileResult(uniqueName)
	fr.AbsoluteName = fullPath
	fr.DisplayName = fileName
	fr.ScannedFileName = fileName
	fr.RelativeFilePathToAnalysis = uniqueName
	fr.ScannedLanguage = result.LangPython
	fr.ScannedTokens = tokens
	fr.ModuleName = ""
	fr.AbsoluteDirPath = filepath.Dir(fullPath)
	fr.RelativeAnalysisPath = filepath.Dir(uniqueName)

	p.addImportsToResult(ctx, fr)

	ctx.Store.Put(fr)
	return nil
}

func (p *PythonParser) ParseEntities(ctx *Context) error { return ErrUnsupported }
func (p *PythonParser) PostProcess(ctx *Context) error   { return nil }

// addImportsToResult mirrors pyparser.py's _add_imports_to_result: strip
// comments, rejoin into lines, keep only import-bearing lines (skipping
// doctest prompts containing ">"), then resolve each line's dependency
// against three shapes: "from . import a, b", "from .. import a, b",
// and the general "import x" / "from x import y" form.
func (p *PythonParser) addImportsToResult(ctx *Context, fr *result.FileResult) {
	withoutComments := FilterSourceTokensWithoutComments(fr.ScannedTokens, "#", `"""`, `"""`)
	filtered := PreprocessByMapping(withoutComments, pythonTokenMappings)

	var lines []string
	var line strings.Builder
	seen := make(map[string]bool)
	for _, tok := range append(filtered, "\n") {
		if tok != "\n" {
			line.WriteString(tok)
			line.WriteString(" ")
			continue
		}
		text := strings.TrimSpace(line.String())
		line.Reset()
		if text != "" && strings.Contains(text, "import") && !strings.Contains(text, ">") && !seen[text] {
			seen[text] = true
			lines = append(lines, text)
		}
	}

	for _, l := range lines {
		p.resolveImportLine(ctx, fr, l)
	}
}

func (p *PythonParser) resolveImportLine(ctx *Context, fr *result.FileResult, line string) {
	globalImport := !strings.Contains(line, "from")

	switch {
	case strings.Contains(line, "from . "):
		for _, dep := range splitAfterImport(line) {
			p.addRelativeCurrentDirDependency(ctx, fr, dep)
		}
	case strings.Contains(line, "from .. "):
		for _, dep := range splitAfterImport(line) {
			p.addRelativeParentDirDependency(ctx, fr, dep)
		}
	default:
		fields := strings.Fields(line)
		if len(fields) < 2 {
			if ctx.Stats != nil {
				ctx.Stats.Increment(stats.ParsingMisses)
			}
			return
		}
		dependency := fields[1]
		if ctx.Stats != nil {
			ctx.Stats.Increment(stats.ParsingHits)
		}
		p.addGeneralDependency(ctx, fr, dependency, globalImport)
	}
}

func splitAfterImport(line string) []string {
	idx := strings.Index(line, "import")
	if idx < 0 {
		return nil
	}
	rest := strings.TrimSpace(line[idx+len("import"):])
	parts := strings.Split(rest, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (p *PythonParser) addRelativeCurrentDirDependency(ctx *Context, fr *result.FileResult, dep string) {
	resolved := createRelativeAnalysisPathForDependency(dep, fr.RelativeAnalysisPath)
	if !strings.Contains(resolved, ".py") {
		resolved += ".py"
	}
	p.appendIfNotIgnored(ctx, fr, resolved)
}

func (p *PythonParser) addRelativeParentDirDependency(ctx *Context, fr *result.FileResult, dep string) {
	resolved := createRelativeAnalysisPathForDependency(dep, parentDir(fr.RelativeAnalysisPath))
	if !strings.Contains(resolved, ".py") {
		resolved += ".py"
	}
	p.appendIfNotIgnored(ctx, fr, resolved)
}

func (p *PythonParser) addGeneralDependency(ctx *Context, fr *result.FileResult, dependency string, globalImport bool) {
	relativeImport := false

	if strings.Contains(dependency, "..") {
		relativeImport = true
		dependency = strings.ReplaceAll(dependency, "..", "../")
	}
	if len(dependency) > 1 && dependency[0] == '.' && dependency[1] != '.' {
		relativeImport = true
		dependency = dependency[1:]
	}

	switch {
	case !globalImport && relativeImport && !strings.Contains(dependency, "../"):
		dependency = createRelativeAnalysisPathForDependency(dependency, fr.RelativeAnalysisPath)

	case !globalImport && !strings.Contains(dependency, "../"):
		posixDependency := strings.ReplaceAll(dependency, ".", "/")

		var relativePath string
		sourceDir := ctx.Analysis.SourceDirectory
		if sourceDir == "." {
			relativePath = posixDependency
		} else {
			relativePath = filepath.Base(sourceDir) + "/" + posixDependency
		}

		checkDependencyPath := parentDir(sourceDir) + "/" + relativePath
		if fileExists(checkDependencyPath + ".py") {
			dependency = relativePath + ".py"
		} else {
			dependency = relativePath
		}
		p.appendIfNotIgnored(ctx, fr, dependency)
		return

	default:
		if strings.Contains(dependency, "../") {
			dependency = resolveRelativeDependencyPath(dependency, fr.AbsoluteDirPath, ctx.Analysis.SourceDirectory)
		}
	}

	if !globalImport {
		dependency = strings.ReplaceAll(dependency, ".", "/")
	}
	if !strings.Contains(dependency, ".py") && !globalImport {
		dependency += ".py"
	}
	p.appendIfNotIgnored(ctx, fr, dependency)
}

func (p *PythonParser) appendIfNotIgnored(ctx *Context, fr *result.FileResult, dependency string) {
	if IsInIgnoreList(dependency, ctx.Analysis.IgnoreDependenciesContaining) {
		return
	}
	fr.ScannedImportDependencies = append(fr.ScannedImportDependencies, dependency)
}

func createRelativeAnalysisPathForDependency(dependency, relativeAnalysisPath string) string {
	return relativeAnalysisPath + "/" + dependency
}

// resolveRelativeDependencyPath mirrors
// ParsingMixin.resolve_relative_dependency_path: join the dependency
// onto the result's absolute directory, clean it, and if the cleaned
// path is still inside the analysis's scanning root, rewrite it
// relative to that root's parent (the same unique-name convention
// every parser uses).
func resolveRelativeDependencyPath(relativeDependencyPath, absoluteDirPath, sourceDirectory string) string {
	unresolved := absoluteDirPath + "/" + relativeDependencyPath
	resolvedPath := filepath.Clean(unresolved)

	scanningPath := sourceDirectory
	if !strings.HasSuffix(scanningPath, "/") {
		scanningPath += "/"
	}

	if strings.Contains(resolvedPath, strings.TrimSuffix(scanningPath, "/")) {
		prefix := parentDir(sourceDirectory) + "/"
		if strings.HasPrefix(resolvedPath, prefix) {
			return strings.TrimPrefix(resolvedPath, prefix)
		}
	}
	return relativeDependencyPath
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
