// Package astiavlogger routes FFmpeg log messages into a go-belt logger.
package astiavlogger

import (
	"strings"
	"sync"

	"github.com/asticode/go-astiav"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// Callback returns an astiav.LogCallback that forwards every message to l.
// The class chain of the emitting FFmpeg component is attached as the
// "av_class" field.
func Callback(l logger.Logger) astiav.LogCallback {
	var locker sync.Mutex
	return func(c astiav.Classer, level astiav.LogLevel, format, msg string) {
		msg = strings.TrimSpace(msg)
		if msg == "" {
			return
		}

		locker.Lock()
		defer locker.Unlock()
		l := l
		if chain := ClassChain(c); chain != "" {
			l = l.WithField("av_class", chain)
		}
		l.Logf(LogLevelFromAstiav(level), "%s", msg)
	}
}
