package scan

// ChooseLanguage disambiguates a file extension into a language name
// ("java", "go", "python", ...), mirroring emerge/files.py's
// FileScanMapper.choose_parser. Every extension is unambiguous except
// ".h", shared by ObjC/C/CPP: onlyPermitLanguages (first match wins,
// in the order objc, c, cpp) resolves it, matching the original's
// precedence exactly.
func ChooseLanguage(extension string, onlyPermitLanguages []string) (string, bool) {
	switch extension {
	case ".java":
		return "java", true
	case ".swift":
		return "swift", true
	case ".c":
		return "c", true
	case ".cpp", ".cc", ".cxx":
		return "cpp", true
	case ".groovy":
		return "groovy", true
	case ".js", ".jsx":
		return "javascript", true
	case ".ts", ".tsx":
		return "typescript", true
	case ".kt":
		return "kotlin", true
	case ".m":
		return "objc", true
	case ".rb":
		return "ruby", true
	case ".py":
		return "python", true
	case ".go":
		return "go", true
	case ".h":
		for _, want := range []string{"objc", "c", "cpp"} {
			if containsString(onlyPermitLanguages, want) {
				return want, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// ValidExtensions is the closed set of extensions the walker recognizes
// at all, independent of any permit-list configuration (spec.md §4.3:
// "their extension is not in the language-extension closed set").
var ValidExtensions = map[string]bool{
	".java": true, ".swift": true, ".c": true, ".cpp": true, ".cc": true, ".cxx": true,
	".groovy": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true, ".kt": true,
	".m": true, ".rb": true, ".py": true, ".go": true, ".h": true,
}
