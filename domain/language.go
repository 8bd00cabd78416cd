package domain

import (
	"strings"
)

// Language identifies a source language the engine can parse.
// The set is closed: only the constants below are valid.
type Language string

const (
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguageGo         Language = "go"
	LanguageJava       Language = "java"
	LanguageJavaScript Language = "javascript"
	LanguageKotlin     Language = "kotlin"
	LanguagePHP        Language = "php"
	LanguagePython     Language = "python"
	LanguageRuby       Language = "ruby"
	LanguageRust       Language = "rust"
	LanguageScala      Language = "scala"
	LanguageTypeScript Language = "typescript"
)

// AllLanguages returns every supported language in display order.
func AllLanguages() []Language {
	return []Language{
		LanguageC,
		LanguageCPP,
		LanguageCSharp,
		LanguageGo,
		LanguageJava,
		LanguageJavaScript,
		LanguageKotlin,
		LanguagePHP,
		LanguagePython,
		LanguageRuby,
		LanguageRust,
		LanguageScala,
		LanguageTypeScript,
	}
}

// String returns the canonical tag
func (l Language) String() string {
	return string(l)
}

// ParseLanguage normalizes a user supplied tag (case-insensitive, common
// aliases accepted) to a Language. Unknown tags yield an UNSUPPORTED_LANGUAGE error.
func ParseLanguage(tag string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "c", "h":
		return LanguageC, nil
	case "cpp", "c++", "cxx", "cc", "hpp":
		return LanguageCPP, nil
	case "csharp", "c_sharp", "c#", "cs":
		return LanguageCSharp, nil
	case "go", "golang":
		return LanguageGo, nil
	case "java":
		return LanguageJava, nil
	case "javascript", "js", "jsx", "mjs":
		return LanguageJavaScript, nil
	case "kotlin", "kt", "kts":
		return LanguageKotlin, nil
	case "php":
		return LanguagePHP, nil
	case "python", "py":
		return LanguagePython, nil
	case "ruby", "rb":
		return LanguageRuby, nil
	case "rust", "rs":
		return LanguageRust, nil
	case "scala", "sc":
		return LanguageScala, nil
	case "typescript", "ts":
		return LanguageTypeScript, nil
	}
	return "", NewUnsupportedLanguageError(tag)
}

// IsSupported reports whether l is one of the known language constants.
func (l Language) IsSupported() bool {
	for _, known := range AllLanguages() {
		if l == known {
			return true
		}
	}
	return false
}
