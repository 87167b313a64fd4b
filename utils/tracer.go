package utils

import (
	"os"

	"github.com/Luismorlan/socialpost/utils/dotenv"
	"github.com/Luismorlan/socialpost/utils/flag"
	. "github.com/Luismorlan/socialpost/utils/log"
	"github.com/sirupsen/logrus"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

// TracingEnabled is true when a Datadog agent is configured through
// DD_AGENT_HOST. Without an agent neither tracer nor profiler is started.
func TracingEnabled() bool {
	return os.Getenv("DD_AGENT_HOST") != ""
}

func datadogEnv() string {
	if dotenv.IsProdEnv() {
		return "production"
	}
	return "development"
}

// StartTracer starts the Datadog tracer used by the gin trace middleware.
func StartTracer() {
	if !TracingEnabled() {
		return
	}
	tracer.Start(
		tracer.WithService(flag.ServiceName),
		tracer.WithEnv(datadogEnv()),
	)

	Log.WithFields(
		logrus.Fields{"env": datadogEnv()},
	).Info("tracer initialized")
}

// Stop tracer, OK to be closed multiple times
func CloseTracer() {
	// Datadog tracer
	tracer.Stop()
}
