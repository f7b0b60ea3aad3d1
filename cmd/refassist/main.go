package main

import (
	"refassist-backend/cmd/refassist/commands"
	"refassist-backend/lib/configutil"
	"refassist-backend/lib/serviceutil"
	"refassist-backend/lib/telemetry"
)

func main() {
	configutil.LoadDotenv()

	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "refassist")
	telemetry.InitSlog(false)

	commands.ExecuteContext(ctx)
}
