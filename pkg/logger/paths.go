/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/xdg"
)

// PlatformLogPaths returns log paths in order of priority for the platform.
// The working directory is never used: it is usually the repository being committed.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			filepath.Join(os.Getenv("LOCALAPPDATA"), shared.AppID, shared.LogFileName),
			filepath.Join(os.TempDir(), shared.AppID, shared.LogFileName),
		}
	default:
		return []string{
			xdg.XDGStatePath(shared.AppID, shared.LogFileName),
			shared.TmpLogPath,
		}
	}
}
