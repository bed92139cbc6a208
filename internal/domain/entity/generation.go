package entity

// Parameter names accepted in GenerationRequest.Params. Which ones are
// required depends on the target kind; see prompt.RequiredParams.
const (
	ParamRepoURL        = "repo_url"
	ParamGitToken       = "git_token"
	ParamImageName      = "image_name"
	ParamImageTag       = "image_tag"
	ParamBuild          = "build"
	ParamRequirement    = "requirement"
	ParamDockerfilePath = "dockerfile_path"
	ParamECRRepoName    = "ecr_repository_name"
	ParamECRRepoURI     = "ecr_repository_uri"
)

// GenerationRequest is the single input value consumed by one pipeline run.
type GenerationRequest struct {
	Kind TargetKind `json:"kind"`
	// Profile is only set for the dockerfile target; other targets take
	// everything they need from Params.
	Profile *ProjectProfile   `json:"profile,omitempty"`
	Params  map[string]string `json:"params"`
}

func (r GenerationRequest) Param(name string) string {
	return r.Params[name]
}

// GenerationResult carries the raw model output for one target kind. The
// text is written to disk verbatim; no transformation is applied after
// code fence extraction.
type GenerationResult struct {
	Kind    TargetKind `json:"kind"`
	RawText string     `json:"raw_text"`
}

// BuildOutcome is the result of a single container build invocation.
// A failed build is a normal negative result, not an error.
type BuildOutcome struct {
	Success  bool   `json:"success"`
	ImageTag string `json:"image_tag,omitempty"`
	LogText  string `json:"log_text"`
}
