package entity

// Language is the closed set of project languages the identifier can report.
type Language string

const (
	LanguageJava    Language = "java"
	LanguageGo      Language = "go"
	LanguagePython  Language = "python"
	LanguageNode    Language = "node"
	LanguageRuby    Language = "ruby"
	LanguageDotNet  Language = "dotnet"
	LanguagePHP     Language = "php"
	LanguageUnknown Language = "unknown"
)

// ProjectProfile is the result of one identification pass over a cloned
// repository. Built once, read by the prompt builder, then discarded.
type ProjectProfile struct {
	DetectedLanguage Language `json:"detected_language"`
	FrameworkHint    string   `json:"framework_hint,omitempty"`
	// FileMarkers holds the marker filenames that matched, e.g. "go.mod".
	FileMarkers []string `json:"file_markers"`
	// DependencyObject is the path (relative to the repo root) of the
	// dependency manifest that decided the classification, e.g. "pom.xml".
	// Empty when DetectedLanguage is unknown.
	DependencyObject string `json:"dependency_object,omitempty"`
}

func (p ProjectProfile) Known() bool {
	return p.DetectedLanguage != LanguageUnknown && p.DetectedLanguage != ""
}
