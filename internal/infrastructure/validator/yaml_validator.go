package validator

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/infrastructure/metrics"
)

// YAMLValidator checks generated CloudFormation templates and buildspec
// files for well-formedness. It does not check schema conformance; the
// files still have to pass CloudFormation or CodeBuild on the user side.
type YAMLValidator struct{}

func NewYAMLValidator() *YAMLValidator {
	return &YAMLValidator{}
}

func (v *YAMLValidator) Validate(fileName, content string) []entity.ValidationIssue {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(content), &doc); err != nil {
		metrics.IncValidationRun("yaml", "failed")
		return []entity.ValidationIssue{{
			File:    fileName,
			Message: fmt.Sprintf("invalid YAML: %v", err),
		}}
	}
	if len(doc) == 0 {
		metrics.IncValidationRun("yaml", "failed")
		return []entity.ValidationIssue{{
			File:    fileName,
			Message: "document is empty or not a mapping",
		}}
	}

	metrics.IncValidationRun("yaml", "ok")
	return nil
}
