package validator

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/infrastructure/metrics"
)

var sensitiveKeywords = []string{"password", "secret", "token", "access_key", "secret_key"}

// TerraformValidator statically analyzes generated HCL without invoking
// the terraform binary. Parse errors are fatal issues; missing version
// constraints, lifecycle blocks, tags and suspected hardcoded secrets
// come back as advisory issues.
type TerraformValidator struct{}

func NewTerraformValidator() *TerraformValidator {
	return &TerraformValidator{}
}

func (v *TerraformValidator) Validate(fileName, content string) []entity.ValidationIssue {
	var issues []entity.ValidationIssue

	parser := hclparse.NewParser()
	hclFile, parseDiags := parser.ParseHCL([]byte(content), fileName)
	if parseDiags.HasErrors() {
		metrics.IncValidationRun("terraform", "failed")
		return append(issues, issuesFromDiags(parseDiags, fileName)...)
	}

	diags := v.analyzeBody(hclFile.Body, fileName)
	issues = append(issues, issuesFromDiags(diags, fileName)...)

	if diags.HasErrors() {
		metrics.IncValidationRun("terraform", "failed")
	} else {
		metrics.IncValidationRun("terraform", "ok")
	}
	return issues
}

func (v *TerraformValidator) analyzeBody(body hcl.Body, fileName string) hcl.Diagnostics {
	var diags hcl.Diagnostics

	schema := &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "terraform"},
			{Type: "provider", LabelNames: []string{"name"}},
			{Type: "resource", LabelNames: []string{"type", "name"}},
			{Type: "data", LabelNames: []string{"type", "name"}},
			{Type: "variable", LabelNames: []string{"name"}},
			{Type: "output", LabelNames: []string{"name"}},
			{Type: "module", LabelNames: []string{"name"}},
		},
	}

	content, _, contentDiags := body.PartialContent(schema)
	diags = append(diags, contentDiags...)

	diags = append(diags, v.checkRequiredProviders(content, fileName)...)
	diags = append(diags, v.checkResources(content, fileName)...)

	return diags
}

func (v *TerraformValidator) checkRequiredProviders(content *hcl.BodyContent, fileName string) hcl.Diagnostics {
	var diags hcl.Diagnostics

	for _, block := range content.Blocks.OfType("terraform") {
		tfSchema := &hcl.BodySchema{
			Blocks: []hcl.BlockHeaderSchema{
				{Type: "required_providers"},
			},
		}
		tfContent, _, tfDiags := block.Body.PartialContent(tfSchema)
		diags = append(diags, tfDiags...)

		for _, rpBlock := range tfContent.Blocks.OfType("required_providers") {
			attrs, attrsDiags := rpBlock.Body.JustAttributes()
			diags = append(diags, attrsDiags...)

			for providerName, attr := range attrs {
				val, valDiags := attr.Expr.Value(nil)
				diags = append(diags, valDiags...)
				if val.Type().IsObjectType() {
					obj := val.AsValueMap()
					if _, hasVersion := obj["version"]; !hasVersion {
						diags = append(diags, &hcl.Diagnostic{
							Severity: hcl.DiagWarning,
							Summary:  fmt.Sprintf("Provider %s missing version constraint in %s", providerName, fileName),
							Subject:  &attr.Range,
						})
					}
				} else {
					diags = append(diags, &hcl.Diagnostic{
						Severity: hcl.DiagWarning,
						Summary:  fmt.Sprintf("Provider %s has non-object requirement in %s", providerName, fileName),
						Subject:  &attr.Range,
					})
				}
			}
		}
	}
	return diags
}

func (v *TerraformValidator) checkResources(content *hcl.BodyContent, fileName string) hcl.Diagnostics {
	var diags hcl.Diagnostics

	for _, block := range content.Blocks.OfType("resource") {
		resType, resName := block.Labels[0], block.Labels[1]

		resSchema := &hcl.BodySchema{
			Blocks: []hcl.BlockHeaderSchema{
				{Type: "lifecycle"},
			},
			Attributes: []hcl.AttributeSchema{
				{Name: "tags"},
			},
		}
		resContent, _, resDiags := block.Body.PartialContent(resSchema)
		diags = append(diags, resDiags...)

		if len(resContent.Blocks.OfType("lifecycle")) == 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  fmt.Sprintf("Resource %s.%s missing lifecycle block in %s", resType, resName, fileName),
				Subject:  &block.DefRange,
			})
		}

		if _, hasTags := resContent.Attributes["tags"]; !hasTags {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagWarning,
				Summary:  fmt.Sprintf("Resource %s.%s missing tags attribute in %s", resType, resName, fileName),
				Subject:  &block.DefRange,
			})
		}

		allAttrs, allAttrsDiags := block.Body.JustAttributes()
		diags = append(diags, allAttrsDiags...)
		for attrName, attr := range allAttrs {
			for _, kw := range sensitiveKeywords {
				if strings.Contains(strings.ToLower(attrName), kw) {
					_, valDiags := attr.Expr.Value(nil)
					if !valDiags.HasErrors() {
						diags = append(diags, &hcl.Diagnostic{
							Severity: hcl.DiagWarning,
							Summary:  fmt.Sprintf("Potential hardcoded sensitive value in attribute %s of resource %s.%s in %s", attrName, resType, resName, fileName),
							Subject:  &attr.Range,
						})
					}
				}
			}
		}
	}
	return diags
}

func issuesFromDiags(diags hcl.Diagnostics, fileName string) []entity.ValidationIssue {
	var issues []entity.ValidationIssue
	for _, diag := range diags {
		issue := entity.ValidationIssue{
			File:    fileName,
			Message: diag.Summary,
		}
		if diag.Detail != "" {
			issue.Message = fmt.Sprintf("%s: %s", diag.Summary, diag.Detail)
		}
		if diag.Subject != nil {
			issue.Line = diag.Subject.Start.Line
			issue.Column = diag.Subject.Start.Column
		}
		issues = append(issues, issue)
	}
	return issues
}
