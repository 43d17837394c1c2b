// pkg/shared/constants.go

package shared

const (
	// AppID names the config/state directories and the telemetry service.
	AppID = "commitia"

	LogFileName    = "commitia.log"
	ConfigFileName = "config.yaml"
	EnvFileName    = ".env"

	// TmpLogPath is the last-resort log location.
	TmpLogPath = "/tmp/commitia/commitia.log"
)

// Version is overridden at build time with -ldflags "-X .../pkg/shared.Version=...".
var Version = "0.1.0"
