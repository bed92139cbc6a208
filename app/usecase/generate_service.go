package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"devops-assistant/internal/codeblock"
	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
	"devops-assistant/internal/identify"
	"devops-assistant/internal/infrastructure/metrics"
	"devops-assistant/internal/infrastructure/validator"
	"devops-assistant/internal/prompt"
)

// GenerateService runs one synchronous generation pipeline per request:
// validate, create job, execute the stages for the target kind, persist the
// artifact, finish the job. There is no background worker and no automatic
// retry; a failed run ends as a failed job and the caller decides what next.
type GenerateService struct {
	jobs      repository.JobRepository
	artifacts repository.ArtifactRepository
	writer    repository.ArtifactWriter
	llm       repository.ModelClient
	fetcher   repository.SourceFetcher
	builder   repository.ImageBuilder
	ecr       repository.ECRRepositoryResolver

	tfValidator   *validator.TerraformValidator
	yamlValidator *validator.YAMLValidator

	gitWorkDir string
	logger     *slog.Logger
}

func NewGenerateService(
	jobs repository.JobRepository,
	artifacts repository.ArtifactRepository,
	writer repository.ArtifactWriter,
	llm repository.ModelClient,
	fetcher repository.SourceFetcher,
	builder repository.ImageBuilder,
	ecr repository.ECRRepositoryResolver,
	gitWorkDir string,
	logger *slog.Logger,
) *GenerateService {
	return &GenerateService{
		jobs:          jobs,
		artifacts:     artifacts,
		writer:        writer,
		llm:           llm,
		fetcher:       fetcher,
		builder:       builder,
		ecr:           ecr,
		tfValidator:   validator.NewTerraformValidator(),
		yamlValidator: validator.NewYAMLValidator(),
		gitWorkDir:    gitWorkDir,
		logger:        logger,
	}
}

// GenerateDockerfile clones the repository, identifies the project type and
// runs the two-stage Dockerfile prompt chain. When the build parameter is
// set the resulting Dockerfile is built immediately and the outcome recorded
// on the job.
func (s *GenerateService) GenerateDockerfile(ctx context.Context, params map[string]string) (*entity.Job, *entity.Artifact, error) {
	req := entity.GenerationRequest{Kind: entity.TargetDockerfile, Params: params}
	if err := prompt.Validate(req); err != nil {
		return nil, nil, err
	}

	job := entity.NewJob(entity.TargetDockerfile, params)
	if err := s.beginJob(ctx, job); err != nil {
		return nil, nil, err
	}

	started := time.Now()
	artifact, err := s.runDockerfilePipeline(ctx, job, req)
	s.finishJob(ctx, job, entity.TargetDockerfile, started, err)
	if err != nil {
		return job, nil, err
	}
	return job, artifact, nil
}

func (s *GenerateService) runDockerfilePipeline(ctx context.Context, job *entity.Job, req entity.GenerationRequest) (*entity.Artifact, error) {
	repoDir, err := s.fetcher.Fetch(ctx, req.Param(entity.ParamRepoURL), s.gitWorkDir, req.Param(entity.ParamGitToken))
	if err != nil {
		return nil, fmt.Errorf("fetch repository: %w", err)
	}

	files, err := s.fetcher.ListFiles(repoDir)
	if err != nil {
		return nil, fmt.Errorf("list repository files: %w", err)
	}

	profile := identify.Classify(files)
	job.Profile = &profile
	s.logger.Info("project identified",
		"job_id", job.ID,
		"language", profile.DetectedLanguage,
		"framework", profile.FrameworkHint,
		"manifest", profile.DependencyObject)

	var manifestContent string
	if profile.DependencyObject != "" {
		data, err := os.ReadFile(filepath.Join(repoDir, profile.DependencyObject))
		if err != nil {
			return nil, fmt.Errorf("read dependency manifest: %w", err)
		}
		manifestContent = string(data)
	}

	contentInfo, err := s.llm.Generate(ctx, prompt.DockerfileInfo(profile, manifestContent, files))
	if err != nil {
		return nil, err
	}

	response, err := s.llm.Generate(ctx, prompt.DockerfileGeneration(profile, contentInfo))
	if err != nil {
		return nil, err
	}

	content := codeblock.ExtractOrWhole(response, "dockerfile")
	artifact, err := s.persistArtifact(ctx, job, entity.TargetDockerfile, content, nil)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(req.Param(entity.ParamBuild), "true") {
		outcome, err := s.builder.Build(ctx, filepath.Join(job.ArtifactDir, artifact.Name), defaultImageTag(job), nil)
		if err != nil {
			return nil, fmt.Errorf("run build: %w", err)
		}
		job.Build = &outcome
	}

	return artifact, nil
}

// GenerateInfra runs the supervisor, cluster-details, task-definition and
// final generation stages for the terraform or cloudformation target.
func (s *GenerateService) GenerateInfra(ctx context.Context, kind entity.TargetKind, params map[string]string) (*entity.Job, *entity.Artifact, error) {
	if kind != entity.TargetTerraform && kind != entity.TargetCloudFormation {
		return nil, nil, entity.NewValidationError("kind", fmt.Sprintf("%s is not an infrastructure target", kind))
	}

	req := entity.GenerationRequest{Kind: kind, Params: params}
	if err := prompt.Validate(req); err != nil {
		return nil, nil, err
	}

	job := entity.NewJob(kind, params)
	if err := s.beginJob(ctx, job); err != nil {
		return nil, nil, err
	}

	started := time.Now()
	artifact, err := s.runInfraPipeline(ctx, job, req)
	s.finishJob(ctx, job, kind, started, err)
	if err != nil {
		return job, nil, err
	}
	return job, artifact, nil
}

func (s *GenerateService) runInfraPipeline(ctx context.Context, job *entity.Job, req entity.GenerationRequest) (*entity.Artifact, error) {
	dockerfileContent, err := s.readDockerfile(req.Param(entity.ParamDockerfilePath))
	if err != nil {
		return nil, err
	}

	requirement := req.Param(entity.ParamRequirement)

	supervisorResp, err := s.llm.Generate(ctx, prompt.SupervisorClassify(requirement))
	if err != nil {
		return nil, err
	}
	pattern := prompt.ParseSetupPattern(supervisorResp)
	s.logger.Info("setup pattern selected", "job_id", job.ID, "pattern", pattern)

	dialect := "Terraform"
	if req.Kind == entity.TargetCloudFormation {
		dialect = "CloudFormation"
	}

	clusterDetails, err := s.llm.Generate(ctx, prompt.ClusterDetails(dialect, pattern, requirement))
	if err != nil {
		return nil, err
	}

	taskDefResp, err := s.llm.Generate(ctx, prompt.TaskDefinition(dockerfileContent))
	if err != nil {
		return nil, err
	}
	taskDefJSON, err := codeblock.Extract(taskDefResp, "json")
	if err != nil {
		return nil, fmt.Errorf("task definition stage: %w", err)
	}

	var content string
	var issues []entity.ValidationIssue
	switch req.Kind {
	case entity.TargetTerraform:
		response, err := s.llm.Generate(ctx, prompt.TerraformGeneration(pattern, clusterDetails, taskDefJSON))
		if err != nil {
			return nil, err
		}
		content, err = codeblock.Extract(response, "hcl")
		if err != nil {
			return nil, fmt.Errorf("terraform stage: %w", err)
		}
		issues = s.tfValidator.Validate(entity.TargetTerraform.ArtifactFileName(), content)
	case entity.TargetCloudFormation:
		response, err := s.llm.Generate(ctx, prompt.CloudFormationGeneration(clusterDetails, taskDefJSON))
		if err != nil {
			return nil, err
		}
		content, err = codeblock.Extract(response, "yaml")
		if err != nil {
			return nil, fmt.Errorf("cloudformation stage: %w", err)
		}
		issues = s.yamlValidator.Validate(entity.TargetCloudFormation.ArtifactFileName(), content)
	}

	return s.persistArtifact(ctx, job, req.Kind, content, issues)
}

// GenerateBuildSpec produces a CodeBuild buildspec for an existing
// Dockerfile. When only the repository name is given the URI is resolved
// through the registry; a repository that cannot be resolved is a
// validation failure, not a service one.
func (s *GenerateService) GenerateBuildSpec(ctx context.Context, params map[string]string) (*entity.Job, *entity.Artifact, error) {
	if params[entity.ParamECRRepoURI] == "" && params[entity.ParamECRRepoName] != "" && s.ecr != nil {
		uri, err := s.ecr.RepositoryURI(ctx, params[entity.ParamECRRepoName])
		if err != nil {
			s.logger.Warn("ECR repository resolution failed", "repository", params[entity.ParamECRRepoName], "err", err)
			return nil, nil, entity.NewValidationError(entity.ParamECRRepoURI,
				fmt.Sprintf("not provided and repository %q could not be resolved", params[entity.ParamECRRepoName]))
		}
		params[entity.ParamECRRepoURI] = uri
	}

	req := entity.GenerationRequest{Kind: entity.TargetBuildSpec, Params: params}
	if err := prompt.Validate(req); err != nil {
		return nil, nil, err
	}

	job := entity.NewJob(entity.TargetBuildSpec, params)
	if err := s.beginJob(ctx, job); err != nil {
		return nil, nil, err
	}

	started := time.Now()
	artifact, err := s.runBuildSpecPipeline(ctx, job, req)
	s.finishJob(ctx, job, entity.TargetBuildSpec, started, err)
	if err != nil {
		return job, nil, err
	}
	return job, artifact, nil
}

func (s *GenerateService) runBuildSpecPipeline(ctx context.Context, job *entity.Job, req entity.GenerationRequest) (*entity.Artifact, error) {
	dockerfileContent, err := s.readDockerfile(req.Param(entity.ParamDockerfilePath))
	if err != nil {
		return nil, err
	}

	details := prompt.ParseDockerfileDetails(dockerfileContent)
	p := prompt.BuildSpec(dockerfileContent,
		req.Param(entity.ParamECRRepoName),
		req.Param(entity.ParamECRRepoURI),
		details)

	response, err := s.llm.Generate(ctx, p)
	if err != nil {
		return nil, err
	}
	content, err := codeblock.Extract(response, "yaml")
	if err != nil {
		return nil, fmt.Errorf("buildspec stage: %w", err)
	}

	issues := s.yamlValidator.Validate(entity.TargetBuildSpec.ArtifactFileName(), content)
	return s.persistArtifact(ctx, job, entity.TargetBuildSpec, content, issues)
}

// FixDockerfile regenerates a Dockerfile from a build error. Only triggered
// by the user; the service never loops on failed builds by itself.
func (s *GenerateService) FixDockerfile(ctx context.Context, jobID, dockerfilePath, buildError string) (*entity.Artifact, error) {
	if strings.TrimSpace(buildError) == "" {
		return nil, entity.NewValidationError("build_error", "required")
	}

	var content string
	switch {
	case jobID != "":
		var err error
		content, err = s.writer.ReadArtifact(ctx, jobID, entity.TargetDockerfile.ArtifactFileName())
		if err != nil {
			return nil, entity.NewValidationError("job_id", fmt.Sprintf("no Dockerfile artifact for job %s", jobID))
		}
	case dockerfilePath != "":
		var err error
		content, err = s.readDockerfile(dockerfilePath)
		if err != nil {
			return nil, err
		}
	default:
		return nil, entity.NewValidationError("job_id", "either job_id or dockerfile_path is required")
	}

	response, err := s.llm.Generate(ctx, prompt.DockerfileFix(buildError, content))
	if err != nil {
		return nil, err
	}
	fixed := codeblock.ExtractOrWhole(response, "dockerfile")

	artifact := &entity.Artifact{
		JobID:   jobID,
		Name:    entity.TargetDockerfile.ArtifactFileName(),
		Content: fixed,
		Kind:    entity.TargetDockerfile,
	}

	if jobID != "" {
		if _, err := s.writer.WriteArtifacts(ctx, jobID, []*entity.Artifact{artifact}); err != nil {
			return nil, err
		}
		if err := s.artifacts.SaveArtifacts(ctx, []*entity.Artifact{artifact}); err != nil {
			return nil, err
		}
	} else if err := os.WriteFile(dockerfilePath, []byte(fixed), 0o644); err != nil {
		return nil, fmt.Errorf("write fixed Dockerfile: %w", err)
	}

	return artifact, nil
}

func (s *GenerateService) beginJob(ctx context.Context, job *entity.Job) error {
	if err := s.jobs.Create(ctx, job); err != nil {
		return fmt.Errorf("create job: %w", err)
	}
	job.UpdateStatus(entity.JobStatusRunning)
	if err := s.jobs.Update(ctx, job); err != nil {
		return fmt.Errorf("mark job running: %w", err)
	}
	return nil
}

func (s *GenerateService) finishJob(ctx context.Context, job *entity.Job, kind entity.TargetKind, started time.Time, runErr error) {
	metrics.ObserveGenerationDuration(string(kind), time.Since(started))

	if runErr != nil {
		metrics.IncGeneration(string(kind), "failed")
		job.Error = runErr.Error()
		job.UpdateStatus(entity.JobStatusFailed)
	} else {
		metrics.IncGeneration(string(kind), "ok")
		job.UpdateStatus(entity.JobStatusSucceeded)
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Error("persist job outcome", "job_id", job.ID, "err", err)
	}
	s.logger.Info("generation finished",
		"job_id", job.ID,
		"kind", kind,
		"status", job.Status,
		"duration", time.Since(started))
}

// persistArtifact writes the artifact to disk and to the store, attaching
// the first validation issue when the validators found any. Validation
// findings are advisory and never fail the pipeline.
func (s *GenerateService) persistArtifact(ctx context.Context, job *entity.Job, kind entity.TargetKind, content string, issues []entity.ValidationIssue) (*entity.Artifact, error) {
	artifact := &entity.Artifact{
		JobID:   job.ID,
		Name:    kind.ArtifactFileName(),
		Content: content,
		Kind:    kind,
	}
	if len(issues) > 0 {
		artifact.HasError = true
		artifact.ErrorMsg = &issues[0]
		s.logger.Warn("artifact has validation findings",
			"job_id", job.ID,
			"file", artifact.Name,
			"count", len(issues),
			"first", issues[0].Message)
	}

	dir, err := s.writer.WriteArtifacts(ctx, job.ID, []*entity.Artifact{artifact})
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	job.ArtifactDir = dir

	if err := s.artifacts.SaveArtifacts(ctx, []*entity.Artifact{artifact}); err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	return artifact, nil
}

func (s *GenerateService) readDockerfile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", entity.NewValidationError(entity.ParamDockerfilePath, fmt.Sprintf("no Dockerfile at %s", path))
		}
		return "", fmt.Errorf("read Dockerfile: %w", err)
	}
	return string(data), nil
}
