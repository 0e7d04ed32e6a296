package gologger

import (
	"github.com/goliatone/go-agentforce/core"
	job "github.com/goliatone/go-job"
	glog "github.com/goliatone/go-logger/glog"
)

// DefaultLoggerName labels bridge loggers resolved without an explicit name.
const DefaultLoggerName = "agentforce"

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	if name == "" {
		name = DefaultLoggerName
	}
	return glog.Resolve(name, provider, logger)
}

// LogEventSink adapts a glog logger into a bridge log listener. Hosts that do
// not forward native SDK log events to an application surface can register the
// sink so the events land in structured logging instead of being dropped.
func LogEventSink(logger glog.Logger) core.LogListener {
	if logger == nil {
		return nil
	}
	return func(event core.LogEvent) {
		args := []any{"source", "native"}
		if event.Error != "" {
			args = append(args, "error", event.Error)
		}
		switch event.Level {
		case core.LogLevelDebug:
			logger.Debug(event.Message, args...)
		case core.LogLevelWarn:
			logger.Warn(event.Message, args...)
		case core.LogLevelError:
			logger.Error(event.Message, args...)
		default:
			logger.Info(event.Message, args...)
		}
	}
}

// ToJobProvider maps a glog provider to the go-job logger provider contract.
func ToJobProvider(provider glog.LoggerProvider) job.LoggerProvider {
	if provider == nil {
		return nil
	}
	return job.GoLoggerProvider(provider)
}

// ToJobLogger maps a glog logger to the go-job logger contract.
func ToJobLogger(logger glog.Logger) job.Logger {
	if logger == nil {
		return nil
	}
	return job.GoLogger(logger)
}

// ResolveForJob resolves the bridge logger/provider then returns equivalent
// go-job adapters for the credential refresh worker.
func ResolveForJob(
	name string,
	provider glog.LoggerProvider,
	logger glog.Logger,
) (glog.LoggerProvider, glog.Logger, job.LoggerProvider, job.Logger) {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return resolvedProvider, resolvedLogger, ToJobProvider(resolvedProvider), ToJobLogger(resolvedLogger)
}
