package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks logs pipeline and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnParseStart(ctx context.Context, source string) {
	h.logger.Debug("parsing", "source", source)
}

func (h *logHooks) OnParseComplete(ctx context.Context, source string, nodeCount int, duration time.Duration, err error) {
	h.logger.Debug("parsed", "source", source, "nodes", nodeCount, "duration", duration, "error", err)
}

func (h *logHooks) OnDrawStart(ctx context.Context, drawer string, nodeCount int) {
	h.logger.Debug("drawing", "drawer", drawer, "nodes", nodeCount)
}

func (h *logHooks) OnDrawComplete(ctx context.Context, drawer string, primitives int, duration time.Duration, err error) {
	h.logger.Debug("drew", "drawer", drawer, "primitives", primitives, "duration", duration, "error", err)
}

func (h *logHooks) OnRenderStart(ctx context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h *logHooks) OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error) {
	h.logger.Debug("rendered", "format", format, "bytes", size, "duration", duration, "error", err)
}

func (h *logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "cache", keyType)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "cache", keyType)
}

func (h *logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "cache", keyType, "bytes", size)
}
