package prompt

import (
	"regexp"
	"strings"
)

// RuntimeDetails are the CodeBuild runtime hints derived from a Dockerfile.
type RuntimeDetails struct {
	RuntimeVersion  string
	InstallCommands string
	BuildCommands   string
}

var digits = regexp.MustCompile(`\d+`)

// ParseDockerfileDetails inspects the first FROM line of a Dockerfile and
// derives the CodeBuild runtime version plus install/build commands for the
// buildspec prompt. Unrecognized base images yield echo placeholders; a
// Dockerfile without a FROM line yields empty details.
func ParseDockerfileDetails(dockerfileContent string) RuntimeDetails {
	var fromLine string
	for _, line := range strings.Split(dockerfileContent, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "FROM") {
			fromLine = strings.TrimSpace(line)
			break
		}
	}
	if fromLine == "" {
		return RuntimeDetails{}
	}

	imageParts := strings.SplitN(strings.TrimSpace(strings.TrimPrefix(fromLine, "FROM")), ":", 2)
	imageRef := imageParts[0]
	imageName := strings.ToLower(imageRef[strings.LastIndex(imageRef, "/")+1:])
	imageVersion := "latest"
	if len(imageParts) > 1 {
		// drop any trailing "AS builder" stage name; a bare trailing colon
		// ("FROM python:") leaves no fields and keeps the default
		if fields := strings.Fields(imageParts[1]); len(fields) > 0 {
			imageVersion = fields[0]
		}
	}

	switch {
	case strings.Contains(imageName, "java") || strings.Contains(imageName, "openjdk") || strings.Contains(imageName, "jdk"):
		version := digits.FindString(imageVersion)
		return RuntimeDetails{
			RuntimeVersion:  "java: corretto" + version,
			InstallCommands: "      - apt-get update\n      - apt-get install -y maven",
			BuildCommands:   "      - echo \"Building Java project with Maven...\"\n      - mvn package",
		}
	case strings.HasPrefix(imageName, "node"):
		return RuntimeDetails{
			RuntimeVersion:  "nodejs: " + imageVersion,
			InstallCommands: "      - apt-get update\n      - apt-get install -y npm",
			BuildCommands:   "      - echo \"Building Node.js project with npm...\"\n      - npm install\n      - npm run build",
		}
	case strings.HasPrefix(imageName, "python"):
		return RuntimeDetails{
			RuntimeVersion:  "python: " + imageVersion,
			InstallCommands: "      - apt-get update\n      - apt-get install -y python3-pip",
			BuildCommands:   "      - echo \"Building Python project...\"\n      - pip3 install -r requirements.txt\n      - python3 app.py",
		}
	case strings.HasPrefix(imageName, "golang"):
		return RuntimeDetails{
			RuntimeVersion:  "golang: " + imageVersion,
			InstallCommands: "      - apt-get update\n      - apt-get install -y golang",
			BuildCommands:   "      - echo \"Building Go project...\"\n      - go build main.go",
		}
	}

	return RuntimeDetails{
		InstallCommands: "      - echo \"No specific install commands for this image type\"",
		BuildCommands:   "      - echo \"No specific build commands for this image type\"",
	}
}
