// pkg/git/safety.go

package git

import (
	"path"
	"runtime"
	"slices"
	"strings"
)

// ProtectedBranches trigger a warning before committing.
var ProtectedBranches = []string{"main", "master", "production", "prod"}

// SafetyReport lists the pre-commit warnings for a set of staged changes.
type SafetyReport struct {
	Branch          string
	ProtectedBranch bool
	Artifacts       []string
}

func (s SafetyReport) Clean() bool {
	return !s.ProtectedBranch && len(s.Artifacts) == 0
}

// CheckSafety flags commits to protected branches and staged build artifacts.
func CheckSafety(branch string, changes []ChangeRecord) SafetyReport {
	report := SafetyReport{
		Branch:          branch,
		ProtectedBranch: slices.Contains(ProtectedBranches, branch),
	}

	patterns := ArtifactPatterns(runtime.GOOS)
	for _, c := range changes {
		if c.Kind == Deleted {
			continue
		}
		if isArtifact(c.FilePath, patterns) {
			report.Artifacts = append(report.Artifacts, c.FilePath)
		}
	}
	return report
}

// ArtifactPatterns returns glob patterns for files that rarely belong in a commit.
// Patterns ending in "/" match a directory anywhere in the path.
func ArtifactPatterns(goos string) []string {
	common := []string{
		"*.log", "*.tmp", "*.swp", "*.swo", "*~",
		"node_modules/", "vendor/", ".vscode/", ".idea/",
		"coverage.out", "*.test",
	}

	switch goos {
	case "darwin":
		common = append(common, ".DS_Store", "*.dSYM")
	case "windows":
		common = append(common, "Thumbs.db", "*.exe", "*.dll", "*.pdb")
	case "linux":
		common = append(common, "*.so", "*.a", "core.*")
	}

	return append(common, "*.o", "*.obj", "*.lib")
}

func isArtifact(p string, patterns []string) bool {
	segments := strings.Split(p, "/")
	base := segments[len(segments)-1]
	dirs := segments[:len(segments)-1]

	for _, pattern := range patterns {
		if dir, ok := strings.CutSuffix(pattern, "/"); ok {
			if slices.Contains(dirs, dir) {
				return true
			}
			continue
		}
		if matched, _ := path.Match(pattern, base); matched {
			return true
		}
	}
	return false
}
