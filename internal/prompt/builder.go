// Package prompt assembles the fixed instruction prompts sent to the
// generation model. Assembly is pure string work: no network, no I/O.
package prompt

import (
	"fmt"
	"strings"

	"devops-assistant/internal/domain/entity"
)

// SetupPattern is the ECS deployment pattern chosen by the supervisor stage.
type SetupPattern string

const (
	PatternFargate        SetupPattern = "fargate"
	PatternEC2Autoscaling SetupPattern = "ec2-autoscaling"
)

// requiredParams lists the user parameters each target kind cannot run
// without. Checked before any model call.
var requiredParams = map[entity.TargetKind][]string{
	entity.TargetDockerfile:     {entity.ParamRepoURL},
	entity.TargetTerraform:      {entity.ParamRequirement, entity.ParamDockerfilePath},
	entity.TargetCloudFormation: {entity.ParamRequirement, entity.ParamDockerfilePath},
	entity.TargetBuildSpec:      {entity.ParamDockerfilePath, entity.ParamECRRepoName, entity.ParamECRRepoURI},
}

// Validate checks that the request carries every parameter its target kind
// requires. Returns *entity.ValidationError for the first missing one.
func Validate(req entity.GenerationRequest) error {
	if !req.Kind.Valid() {
		return entity.NewValidationError("kind", fmt.Sprintf("unknown target kind %q", string(req.Kind)))
	}
	for _, name := range requiredParams[req.Kind] {
		if strings.TrimSpace(req.Param(name)) == "" {
			return entity.NewValidationError(name, "required for "+string(req.Kind)+" generation")
		}
	}
	return nil
}

// DockerfileInfo is the first Dockerfile pass: extract image/instruction
// details from the project profile and its dependency manifest.
func DockerfileInfo(profile entity.ProjectProfile, manifestContent string, files []string) string {
	return fmt.Sprintf(dockerfileInfoTemplate, projectType(profile), manifestContent, strings.Join(files, "\n"))
}

// DockerfileGeneration is the second Dockerfile pass: turn the extracted
// details into a complete Dockerfile.
func DockerfileGeneration(profile entity.ProjectProfile, contentInfo string) string {
	return fmt.Sprintf(dockerfileGenerationTemplate, projectType(profile), contentInfo)
}

// DockerfileFix asks for a corrected Dockerfile given a build error.
func DockerfileFix(buildError, dockerfileContent string) string {
	return fmt.Sprintf(dockerfileFixTemplate, buildError, dockerfileContent)
}

// SupervisorClassify asks the model to pick the ECS setup pattern.
func SupervisorClassify(requirement string) string {
	return fmt.Sprintf(supervisorTemplate, requirement)
}

// ParseSetupPattern reads the supervisor's first output line. Defaults to
// Fargate when the answer is unrecognizable, matching the generation
// templates that exist for both dialects.
func ParseSetupPattern(response string) SetupPattern {
	first := strings.ToLower(strings.SplitN(strings.TrimSpace(response), "\n", 2)[0])
	if strings.Contains(first, string(PatternEC2Autoscaling)) {
		return PatternEC2Autoscaling
	}
	return PatternFargate
}

// ClusterDetails asks for the ECS cluster parameters for the chosen pattern.
// dialect is "Terraform" or "CloudFormation".
func ClusterDetails(dialect string, pattern SetupPattern, requirement string) string {
	if pattern == PatternEC2Autoscaling {
		return fmt.Sprintf(clusterEC2Template, dialect, requirement)
	}
	return fmt.Sprintf(clusterFargateTemplate, dialect, requirement)
}

// TaskDefinition asks for an ECS task definition derived from the Dockerfile.
func TaskDefinition(dockerfileContent string) string {
	return fmt.Sprintf(taskDefinitionTemplate, dockerfileContent)
}

// TerraformGeneration is the final Terraform stage.
func TerraformGeneration(pattern SetupPattern, clusterDetails, taskDefinitionJSON string) string {
	if pattern == PatternEC2Autoscaling {
		return fmt.Sprintf(terraformEC2Template, clusterDetails, taskDefinitionJSON)
	}
	return fmt.Sprintf(terraformFargateTemplate, clusterDetails, taskDefinitionJSON)
}

// CloudFormationGeneration is the final CloudFormation stage. Only the
// Fargate dialect exists for CloudFormation, as in the source tooling.
func CloudFormationGeneration(clusterDetails, taskDefinitionJSON string) string {
	return fmt.Sprintf(cloudFormationTemplate, clusterDetails, taskDefinitionJSON)
}

// BuildSpec assembles the CodeBuild buildspec prompt from the Dockerfile
// content, the ECR coordinates and the runtime details derived from the
// Dockerfile's FROM line.
func BuildSpec(dockerfileContent, ecrRepoName, ecrRepoURI string, rt RuntimeDetails) string {
	return fmt.Sprintf(buildspecTemplate,
		dockerfileContent,
		ecrRepoName,
		ecrRepoURI,
		rt.RuntimeVersion,
		rt.RuntimeVersion,
		rt.InstallCommands,
		ecrRepoURI,
		ecrRepoURI,
		rt.BuildCommands,
	)
}

func projectType(profile entity.ProjectProfile) string {
	if !profile.Known() {
		return "unknown"
	}
	if profile.FrameworkHint != "" {
		return string(profile.DetectedLanguage) + " (" + profile.FrameworkHint + ")"
	}
	return string(profile.DetectedLanguage)
}
