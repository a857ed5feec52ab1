package observability

import (
	"context"
	"fmt"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/pkg/field"
	xruntime "github.com/facebookincubator/go-belt/pkg/runtime"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	errmontypes "github.com/facebookincubator/go-belt/tool/experimental/errmon/types"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/adapter"
	loggertypes "github.com/facebookincubator/go-belt/tool/logger/types"
)

// ErrorMonitorLoggerHook forwards every log entry of level Warning or more
// severe to an error monitor (Sentry), asynchronously.
type ErrorMonitorLoggerHook struct {
	ErrorMonitor errmontypes.ErrorMonitor
	SendChan     chan ErrorMonitorMessage
}

type ErrorMonitorMessage struct {
	Entry      *loggertypes.Entry
	StackTrace xruntime.PCs
}

func NewErrorMonitorLoggerHook(
	ctx context.Context,
	errorMonitor errmon.ErrorMonitor,
) *ErrorMonitorLoggerHook {
	result := &ErrorMonitorLoggerHook{
		ErrorMonitor: errorMonitor,
		SendChan:     make(chan ErrorMonitorMessage, 10),
	}
	GoSafe(ctx, func() { result.senderLoop(ctx) })
	return result
}

var _ loggertypes.PreHook = (*ErrorMonitorLoggerHook)(nil)

// capture renders the entry through a throw-away emitter, so that all three
// hook flavors produce the same Entry.
func (h *ErrorMonitorLoggerHook) capture(
	level loggertypes.Level,
	logFn func(l logger.Logger),
) loggertypes.PreHookResult {
	if level > loggertypes.LevelWarning {
		return loggertypes.PreHookResult{}
	}
	emitter := &lastEntryEmitter{}
	logFn(adapter.LoggerFromEmitter(emitter).WithLevel(logger.LevelWarning))
	h.sendReport(emitter.LastEntry)
	return loggertypes.PreHookResult{}
}

func (h *ErrorMonitorLoggerHook) ProcessInput(
	_ belt.TraceIDs,
	level loggertypes.Level,
	args ...any,
) loggertypes.PreHookResult {
	return h.capture(level, func(l logger.Logger) { l.Log(level, args...) })
}

func (h *ErrorMonitorLoggerHook) ProcessInputf(
	_ belt.TraceIDs,
	level loggertypes.Level,
	format string,
	args ...any,
) loggertypes.PreHookResult {
	return h.capture(level, func(l logger.Logger) { l.Logf(level, format, args...) })
}

func (h *ErrorMonitorLoggerHook) ProcessInputFields(
	_ belt.TraceIDs,
	level loggertypes.Level,
	message string,
	fields field.AbstractFields,
) loggertypes.PreHookResult {
	return h.capture(level, func(l logger.Logger) { l.LogFields(level, message, fields) })
}

// lastEntryEmitter keeps the last emitted entry instead of writing it out.
type lastEntryEmitter struct {
	LastEntry *loggertypes.Entry
}

var _ loggertypes.Emitter = (*lastEntryEmitter)(nil)

func (e *lastEntryEmitter) Emit(entry *loggertypes.Entry) {
	e.LastEntry = entry
}

func (e *lastEntryEmitter) Flush() {}

func copyEntry(entry *loggertypes.Entry) *loggertypes.Entry {
	entryDup := *entry
	if entry.Fields != nil {
		fields := make(field.Fields, 0, entry.Fields.Len())
		entry.Fields.ForEachField(func(f *field.Field) bool {
			fields = append(fields, *f)
			return true
		})
		entryDup.Fields = fields
	}
	return &entryDup
}

func (h *ErrorMonitorLoggerHook) sendReport(entry *loggertypes.Entry) {
	if entry == nil {
		return
	}
	select {
	case h.SendChan <- ErrorMonitorMessage{
		Entry:      copyEntry(entry),
		StackTrace: xruntime.CallerStackTrace(nil),
	}:
	default:
		// the monitor is lagging behind, dropping the report
	}
}

func (h *ErrorMonitorLoggerHook) senderLoop(ctx context.Context) {
	for {
		var message ErrorMonitorMessage
		select {
		case <-ctx.Done():
			return
		case message = <-h.SendChan:
		}
		h.ErrorMonitor.Emitter().Emit(&errmontypes.Event{
			Entry: *message.Entry,
			Exception: errmontypes.Exception{
				IsPanic:    message.Entry.Level <= loggertypes.LevelPanic,
				Error:      fmt.Errorf("[%s] %s", message.Entry.Level, message.Entry.Message),
				StackTrace: message.StackTrace,
			},
		})
	}
}
