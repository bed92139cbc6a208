// Package identify classifies a project checkout by marker files. The
// classification is a pure function over the observed file list: same
// files in, same profile out.
package identify

import (
	"path/filepath"
	"strings"

	"devops-assistant/internal/domain/entity"
)

type marker struct {
	file     string
	language entity.Language
}

// Markers in priority order. When several match, the first one listed
// decides the language and the dependency object.
var markers = []marker{
	{"pom.xml", entity.LanguageJava},
	{"build.gradle", entity.LanguageJava},
	{"build.gradle.kts", entity.LanguageJava},
	{"go.mod", entity.LanguageGo},
	{"requirements.txt", entity.LanguagePython},
	{"Pipfile", entity.LanguagePython},
	{"pyproject.toml", entity.LanguagePython},
	{"package.json", entity.LanguageNode},
	{"Gemfile", entity.LanguageRuby},
	{"*.csproj", entity.LanguageDotNet},
	{"composer.json", entity.LanguagePHP},
}

// Framework hints by marker filename, applied only when the language matches.
var frameworkHints = []struct {
	file      string
	language  entity.Language
	framework string
}{
	{"manage.py", entity.LanguagePython, "django"},
	{"app.py", entity.LanguagePython, "flask"},
	{"next.config.js", entity.LanguageNode, "nextjs"},
	{"angular.json", entity.LanguageNode, "angular"},
	{"config/application.rb", entity.LanguageRuby, "rails"},
}

// Classify builds a ProjectProfile from a list of file paths relative to
// the repo root. Nested manifests count: the shallowest match of the
// highest-priority marker wins. An empty or unmatched list yields an
// unknown profile, which is a degraded-but-successful result.
func Classify(files []string) entity.ProjectProfile {
	profile := entity.ProjectProfile{DetectedLanguage: entity.LanguageUnknown}

	seen := make(map[string]bool)
	for _, m := range markers {
		best := ""
		for _, f := range files {
			base := filepath.Base(f)
			ok := base == m.file
			if !ok && strings.HasPrefix(m.file, "*") {
				ok, _ = filepath.Match(m.file, base)
			}
			if !ok {
				continue
			}
			if !seen[m.file] {
				profile.FileMarkers = append(profile.FileMarkers, m.file)
				seen[m.file] = true
			}
			if best == "" || depth(f) < depth(best) {
				best = f
			}
		}
		if best != "" && !profile.Known() {
			profile.DetectedLanguage = m.language
			profile.DependencyObject = filepath.ToSlash(best)
		}
	}

	if profile.Known() {
		for _, h := range frameworkHints {
			if h.language != profile.DetectedLanguage {
				continue
			}
			for _, f := range files {
				if filepath.ToSlash(f) == h.file || filepath.Base(f) == h.file {
					profile.FrameworkHint = h.framework
					break
				}
			}
			if profile.FrameworkHint != "" {
				break
			}
		}
	}

	return profile
}

func depth(path string) int {
	return strings.Count(filepath.ToSlash(path), "/")
}
