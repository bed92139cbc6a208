package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validTerraform = `
terraform {
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 5.0"
    }
  }
}

resource "aws_ecs_cluster" "main" {
  name = "app-cluster"
  tags = {
    Environment = "production"
  }
  lifecycle {
    create_before_destroy = true
  }
}
`

func TestTerraformValidatorClean(t *testing.T) {
	issues := NewTerraformValidator().Validate("main.tf", validTerraform)
	assert.Empty(t, issues)
}

func TestTerraformValidatorSyntaxError(t *testing.T) {
	issues := NewTerraformValidator().Validate("main.tf", `resource "aws_vpc" "x" {`)
	assert.NotEmpty(t, issues)
	assert.Equal(t, "main.tf", issues[0].File)
	assert.NotZero(t, issues[0].Line)
}

func TestTerraformValidatorMissingProviderVersion(t *testing.T) {
	content := `
terraform {
  required_providers {
    aws = {
      source = "hashicorp/aws"
    }
  }
}
`
	issues := NewTerraformValidator().Validate("main.tf", content)
	assert.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Message, "missing version constraint")
}

func TestTerraformValidatorMissingLifecycleAndTags(t *testing.T) {
	content := `
resource "aws_ecs_service" "app" {
  name = "app"
}
`
	issues := NewTerraformValidator().Validate("main.tf", content)

	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "missing lifecycle block")
	assert.Contains(t, joined, "missing tags attribute")
}

func TestTerraformValidatorHardcodedSecret(t *testing.T) {
	content := `
resource "aws_db_instance" "db" {
  password = "hunter2"
  tags     = {}
  lifecycle {}
}
`
	issues := NewTerraformValidator().Validate("main.tf", content)

	found := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, "sensitive value") && strings.Contains(issue.Message, "password") {
			found = true
		}
	}
	assert.True(t, found, "expected a hardcoded-sensitive-value issue, got %v", issues)
}

func TestYAMLValidatorClean(t *testing.T) {
	content := `
version: 0.2
phases:
  build:
    commands:
      - docker build -t app .
`
	issues := NewYAMLValidator().Validate("buildspec.yml", content)
	assert.Empty(t, issues)
}

func TestYAMLValidatorMalformed(t *testing.T) {
	issues := NewYAMLValidator().Validate("cloudformation.yaml", "key: [unclosed")
	assert.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "invalid YAML")
}

func TestYAMLValidatorEmpty(t *testing.T) {
	issues := NewYAMLValidator().Validate("cloudformation.yaml", "")
	assert.Len(t, issues, 1)
}
