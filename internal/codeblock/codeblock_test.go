package codeblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	response := "Here you go:\n```hcl\nresource \"aws_ecs_cluster\" \"main\" {}\n```\ndone"
	got, err := Extract(response, "hcl")
	require.NoError(t, err)
	assert.Equal(t, `resource "aws_ecs_cluster" "main" {}`, got)
}

func TestExtractJoinsMultipleBlocks(t *testing.T) {
	response := "```hcl\nblock one\n```\ntext\n```hcl\nblock two\n```"
	got, err := Extract(response, "hcl")
	require.NoError(t, err)
	assert.Equal(t, "block one\n\nblock two", got)
}

func TestExtractIgnoresOtherMarkers(t *testing.T) {
	response := "```json\n{\"a\":1}\n```\n```yaml\nversion: 0.2\n```"
	got, err := Extract(response, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "version: 0.2", got)

	_, err = Extract(response, "hcl")
	assert.Error(t, err)
}

func TestExtractOrWhole(t *testing.T) {
	assert.Equal(t, "FROM python:latest", ExtractOrWhole("FROM python:latest\n", "dockerfile"))

	fenced := "```\nFROM node:20\n```"
	assert.Equal(t, "FROM node:20", ExtractOrWhole(fenced, "dockerfile"))

	tagged := "```dockerfile\nFROM golang:1.22\n```"
	assert.Equal(t, "FROM golang:1.22", ExtractOrWhole(tagged, "dockerfile"))
}
