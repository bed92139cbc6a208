package identify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"devops-assistant/internal/domain/entity"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		files        []string
		wantLanguage entity.Language
		wantDepObj   string
	}{
		{
			name:         "requirements.txt only",
			files:        []string{"requirements.txt", "main.py"},
			wantLanguage: entity.LanguagePython,
			wantDepObj:   "requirements.txt",
		},
		{
			name:         "maven project",
			files:        []string{"pom.xml", "src/main/java/App.java"},
			wantLanguage: entity.LanguageJava,
			wantDepObj:   "pom.xml",
		},
		{
			name:         "go module",
			files:        []string{"go.mod", "go.sum", "main.go"},
			wantLanguage: entity.LanguageGo,
			wantDepObj:   "go.mod",
		},
		{
			name:         "node project",
			files:        []string{"package.json", "index.js"},
			wantLanguage: entity.LanguageNode,
			wantDepObj:   "package.json",
		},
		{
			name:         "ruby project",
			files:        []string{"Gemfile", "app.rb"},
			wantLanguage: entity.LanguageRuby,
			wantDepObj:   "Gemfile",
		},
		{
			name:         "dotnet project",
			files:        []string{"web/Service.csproj", "web/Program.cs"},
			wantLanguage: entity.LanguageDotNet,
			wantDepObj:   "web/Service.csproj",
		},
		{
			name:         "php project",
			files:        []string{"composer.json"},
			wantLanguage: entity.LanguagePHP,
			wantDepObj:   "composer.json",
		},
		{
			// pom.xml outranks package.json regardless of list order.
			name:         "priority tie break",
			files:        []string{"package.json", "pom.xml"},
			wantLanguage: entity.LanguageJava,
			wantDepObj:   "pom.xml",
		},
		{
			// the shallowest manifest of the winning marker decides the path
			name:         "nested manifest",
			files:        []string{"services/api/go.mod", "go.mod"},
			wantLanguage: entity.LanguageGo,
			wantDepObj:   "go.mod",
		},
		{
			name:         "no markers",
			files:        []string{"README.md", "LICENSE"},
			wantLanguage: entity.LanguageUnknown,
			wantDepObj:   "",
		},
		{
			name:         "empty list",
			files:        nil,
			wantLanguage: entity.LanguageUnknown,
			wantDepObj:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.files)
			assert.Equal(t, tt.wantLanguage, got.DetectedLanguage)
			assert.Equal(t, tt.wantDepObj, got.DependencyObject)
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	files := []string{"requirements.txt", "package.json", "pom.xml", "Gemfile"}
	first := Classify(files)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Classify(files))
	}
}

func TestClassifyFrameworkHint(t *testing.T) {
	got := Classify([]string{"requirements.txt", "manage.py"})
	assert.Equal(t, entity.LanguagePython, got.DetectedLanguage)
	assert.Equal(t, "django", got.FrameworkHint)

	got = Classify([]string{"requirements.txt"})
	assert.Empty(t, got.FrameworkHint)
}

func TestClassifyRecordsAllMarkers(t *testing.T) {
	got := Classify([]string{"pom.xml", "package.json", "sub/package.json"})
	assert.Equal(t, []string{"pom.xml", "package.json"}, got.FileMarkers)
}
