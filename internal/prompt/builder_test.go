package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devops-assistant/internal/domain/entity"
)

func TestValidateMissingParams(t *testing.T) {
	tests := []struct {
		name      string
		req       entity.GenerationRequest
		wantField string
	}{
		{
			name:      "dockerfile without repo url",
			req:       entity.GenerationRequest{Kind: entity.TargetDockerfile, Params: map[string]string{}},
			wantField: entity.ParamRepoURL,
		},
		{
			name: "terraform without requirement",
			req: entity.GenerationRequest{Kind: entity.TargetTerraform, Params: map[string]string{
				entity.ParamDockerfilePath: "./x/Dockerfile",
			}},
			wantField: entity.ParamRequirement,
		},
		{
			name: "terraform without dockerfile path",
			req: entity.GenerationRequest{Kind: entity.TargetTerraform, Params: map[string]string{
				entity.ParamRequirement: "two fargate tasks",
			}},
			wantField: entity.ParamDockerfilePath,
		},
		{
			name: "cloudformation without requirement",
			req: entity.GenerationRequest{Kind: entity.TargetCloudFormation, Params: map[string]string{
				entity.ParamDockerfilePath: "./x/Dockerfile",
			}},
			wantField: entity.ParamRequirement,
		},
		{
			name: "buildspec without ecr repository name",
			req: entity.GenerationRequest{Kind: entity.TargetBuildSpec, Params: map[string]string{
				entity.ParamDockerfilePath: "./x/Dockerfile",
				entity.ParamECRRepoURI:     "1234.dkr.ecr.us-west-2.amazonaws.com/app",
			}},
			wantField: entity.ParamECRRepoName,
		},
		{
			name: "buildspec without ecr repository uri",
			req: entity.GenerationRequest{Kind: entity.TargetBuildSpec, Params: map[string]string{
				entity.ParamDockerfilePath: "./x/Dockerfile",
				entity.ParamECRRepoName:    "app",
			}},
			wantField: entity.ParamECRRepoURI,
		},
		{
			name: "blank counts as missing",
			req: entity.GenerationRequest{Kind: entity.TargetDockerfile, Params: map[string]string{
				entity.ParamRepoURL: "   ",
			}},
			wantField: entity.ParamRepoURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			require.Error(t, err)
			var ve *entity.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestValidateOK(t *testing.T) {
	// Dockerfile generation needs only the repo URL; extra params optional.
	err := Validate(entity.GenerationRequest{
		Kind:   entity.TargetDockerfile,
		Params: map[string]string{entity.ParamRepoURL: "https://example.com/app.git"},
	})
	assert.NoError(t, err)
}

func TestValidateUnknownKind(t *testing.T) {
	err := Validate(entity.GenerationRequest{Kind: "helm"})
	assert.True(t, entity.IsValidation(err))
}

func TestParseSetupPattern(t *testing.T) {
	assert.Equal(t, PatternFargate, ParseSetupPattern("fargate"))
	assert.Equal(t, PatternFargate, ParseSetupPattern("Fargate\nbecause ..."))
	assert.Equal(t, PatternEC2Autoscaling, ParseSetupPattern("ec2-autoscaling"))
	assert.Equal(t, PatternFargate, ParseSetupPattern("no idea"))
}

func TestDockerfilePromptsCarryProfile(t *testing.T) {
	profile := entity.ProjectProfile{
		DetectedLanguage: entity.LanguagePython,
		FrameworkHint:    "django",
		DependencyObject: "requirements.txt",
	}
	p := DockerfileInfo(profile, "flask==3.0", []string{"requirements.txt", "app.py"})
	assert.Contains(t, p, "python (django)")
	assert.Contains(t, p, "flask==3.0")
	assert.Contains(t, p, "requirements.txt\napp.py")

	p = DockerfileGeneration(profile, "base_image: python:latest")
	assert.Contains(t, p, "Project Type: python (django)")
	assert.Contains(t, p, "base_image: python:latest")
}

func TestBuildSpecPromptInterpolation(t *testing.T) {
	rt := ParseDockerfileDetails("FROM python:3.12\nCOPY . /app\n")
	p := BuildSpec("FROM python:3.12", "app", "1234.dkr.ecr.us-west-2.amazonaws.com/app", rt)
	assert.Contains(t, p, "ECR Repository Name: app")
	assert.Contains(t, p, "REPOSITORY_URI=1234.dkr.ecr.us-west-2.amazonaws.com/app")
	assert.Contains(t, p, "python: 3.12")
}

func TestParseDockerfileDetails(t *testing.T) {
	tests := []struct {
		name        string
		dockerfile  string
		wantRuntime string
		wantInstall string
	}{
		{
			name:        "python",
			dockerfile:  "FROM python:3.11\nRUN pip install -r requirements.txt",
			wantRuntime: "python: 3.11",
			wantInstall: "python3-pip",
		},
		{
			name:        "openjdk",
			dockerfile:  "FROM openjdk:17-slim",
			wantRuntime: "java: corretto17",
			wantInstall: "maven",
		},
		{
			name:        "node",
			dockerfile:  "FROM node:20\nCOPY . .",
			wantRuntime: "nodejs: 20",
			wantInstall: "npm",
		},
		{
			name:        "golang with registry prefix and build stage",
			dockerfile:  "FROM docker.io/library/golang:1.22 AS build\nRUN go build ./...",
			wantRuntime: "golang: 1.22",
			wantInstall: "golang",
		},
		{
			name:        "untagged image defaults to latest",
			dockerfile:  "FROM python\n",
			wantRuntime: "python: latest",
			wantInstall: "python3-pip",
		},
		{
			name:        "trailing colon without tag defaults to latest",
			dockerfile:  "FROM python:\nCOPY . /app\n",
			wantRuntime: "python: latest",
			wantInstall: "python3-pip",
		},
		{
			name:        "unknown base image",
			dockerfile:  "FROM scratch",
			wantRuntime: "",
			wantInstall: "No specific install commands",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDockerfileDetails(tt.dockerfile)
			assert.Equal(t, tt.wantRuntime, got.RuntimeVersion)
			assert.Contains(t, got.InstallCommands, tt.wantInstall)
		})
	}
}

func TestParseDockerfileDetailsNoFromLine(t *testing.T) {
	got := ParseDockerfileDetails("RUN echo hi")
	assert.Equal(t, RuntimeDetails{}, got)
}
