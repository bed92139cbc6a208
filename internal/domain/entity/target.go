package entity

import "fmt"

// TargetKind is the kind of artifact a generation request produces.
type TargetKind string

const (
	TargetDockerfile     TargetKind = "dockerfile"
	TargetTerraform      TargetKind = "terraform"
	TargetCloudFormation TargetKind = "cloudformation"
	TargetBuildSpec      TargetKind = "buildspec"
)

// ArtifactFileName returns the fixed output filename for a target kind.
// A second generation for the same kind overwrites the previous file.
func (k TargetKind) ArtifactFileName() string {
	switch k {
	case TargetDockerfile:
		return "Dockerfile"
	case TargetTerraform:
		return "main.tf"
	case TargetCloudFormation:
		return "cloudformation.yaml"
	case TargetBuildSpec:
		return "buildspec.yml"
	}
	return ""
}

func (k TargetKind) Valid() bool {
	return k.ArtifactFileName() != ""
}

func ParseTargetKind(s string) (TargetKind, error) {
	k := TargetKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown target kind %q", s)
	}
	return k, nil
}
