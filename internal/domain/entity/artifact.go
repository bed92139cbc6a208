package entity

// Artifact is one generated file as stored and reported by the API.
type Artifact struct {
	JobID    string           `json:"job_id" bson:"job_id"`
	Name     string           `json:"name" bson:"name"`
	Content  string           `json:"content" bson:"content"`
	Kind     TargetKind       `json:"kind" bson:"kind"`
	HasError bool             `json:"has_error" bson:"has_error"`
	ErrorMsg *ValidationIssue `json:"error_msg,omitempty" bson:"error_msg,omitempty"`
}

// ValidationIssue is an advisory finding from the static validators. It is
// attached to the artifact and reported, never treated as a pipeline failure.
type ValidationIssue struct {
	File    string `json:"file" bson:"file"`
	Message string `json:"message" bson:"message"`
	Line    int    `json:"line,omitempty" bson:"line,omitempty"`
	Column  int    `json:"column,omitempty" bson:"column,omitempty"`
}
