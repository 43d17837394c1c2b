package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/cmd"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	log := logger.L()

	if err := telemetry.Init(shared.AppID); err != nil {
		log.Warn("Telemetry disabled", zap.Error(err))
	}

	code := cmd.Execute()

	if err := telemetry.Shutdown(context.Background()); err != nil {
		log.Debug("Failed to flush telemetry", zap.Error(err))
	}
	_ = logger.Sync()
	os.Exit(code)
}
