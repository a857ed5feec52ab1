package observability

import (
	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/pkg/field"
	logger "github.com/facebookincubator/go-belt/tool/logger/types"
	"github.com/sasha-s/go-deadlock"
)

// LogLevelFilter is the process-wide log level. The logger itself is
// created at LevelTrace and this hook drops everything above Level, so the
// level can be changed after the logger is already propagated via contexts.
var LogLevelFilter LogLevelFilterT

type LogLevelFilterT struct {
	Locker deadlock.Mutex
	Level  logger.Level
}

var _ logger.PreHook = (*LogLevelFilterT)(nil)

func (h *LogLevelFilterT) GetLevel() logger.Level {
	h.Locker.Lock()
	defer h.Locker.Unlock()
	return h.Level
}

func (h *LogLevelFilterT) SetLevel(level logger.Level) {
	h.Locker.Lock()
	defer h.Locker.Unlock()
	h.Level = level
}

func (h *LogLevelFilterT) result(level logger.Level) logger.PreHookResult {
	return logger.PreHookResult{Skip: level > h.GetLevel()}
}

func (h *LogLevelFilterT) ProcessInput(
	_ belt.TraceIDs,
	level logger.Level,
	_ ...any,
) logger.PreHookResult {
	return h.result(level)
}

func (h *LogLevelFilterT) ProcessInputf(
	_ belt.TraceIDs,
	level logger.Level,
	_ string,
	_ ...any,
) logger.PreHookResult {
	return h.result(level)
}

func (h *LogLevelFilterT) ProcessInputFields(
	_ belt.TraceIDs,
	level logger.Level,
	_ string,
	_ field.AbstractFields,
) logger.PreHookResult {
	return h.result(level)
}
