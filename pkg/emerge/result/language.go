// Package result implements the engine's data model: FileResult,
// EntityResult (spec.md §3), and the concurrent-safe Store that holds
// them for one analysis.
package result

// Language tags the twelve supported grammars. Grounded on
// original_source/emerge/languages/abstractparser.py's LanguageType
// enum and emerge/files.py's LanguageExtension.
type Language int

const (
	LangUnknown Language = iota
	LangC
	LangCPP
	LangObjC
	LangJava
	LangKotlin
	LangGroovy
	LangJavaScript
	LangTypeScript
	LangSwift
	LangRuby
	LangPython
	LangGo
)

func (l Language) String() string {
	switch l {
	case LangC:
		return "c"
	case LangCPP:
		return "cpp"
	case LangObjC:
		return "objc"
	case LangJava:
		return "java"
	case LangKotlin:
		return "kotlin"
	case LangGroovy:
		return "groovy"
	case LangJavaScript:
		return "javascript"
	case LangTypeScript:
		return "typescript"
	case LangSwift:
		return "swift"
	case LangRuby:
		return "ruby"
	case LangPython:
		return "python"
	case LangGo:
		return "go"
	default:
		return "unknown"
	}
}

// ExtensionLanguage maps a LanguageExtension value (spec.md §4.3, emerge/files.py)
// to the Language it unambiguously identifies. The `.h` extension is
// ambiguous (ObjC/C/CPP) and is resolved separately by the filesystem
// walker's only_permit_languages logic, not here.
func ExtensionLanguage(ext string) (Language, bool) {
	switch ext {
	case ".java":
		return LangJava, true
	case ".swift":
		return LangSwift, true
	case ".c":
		return LangC, true
	case ".cpp", ".cc", ".cxx":
		return LangCPP, true
	case ".groovy":
		return LangGroovy, true
	case ".js", ".jsx":
		return LangJavaScript, true
	case ".ts", ".tsx":
		return LangTypeScript, true
	case ".kt":
		return LangKotlin, true
	case ".m":
		return LangObjC, true
	case ".rb":
		return LangRuby, true
	case ".py":
		return LangPython, true
	case ".go":
		return LangGo, true
	default:
		return LangUnknown, false
	}
}
