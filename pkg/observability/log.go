package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogPipelineHooks returns pipeline hooks that write debug entries to
// logger, plus an error entry for failed stages.
func LogPipelineHooks(logger *log.Logger) PipelineHooks {
	return logPipelineHooks{logger: logger}
}

type logPipelineHooks struct {
	logger *log.Logger
}

func (h logPipelineHooks) OnLoadStart(_ context.Context, source string) {
	h.logger.Debug("load start", "source", source)
}

func (h logPipelineHooks) OnLoadComplete(_ context.Context, source string, units int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("load failed", "source", source, "err", err)
		return
	}
	h.logger.Debug("load done", "source", source, "units", units, "took", d.Round(time.Microsecond))
}

func (h logPipelineHooks) OnLayoutStart(_ context.Context, targets int) {
	h.logger.Debug("layout start", "targets", targets)
}

func (h logPipelineHooks) OnLayoutComplete(_ context.Context, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("layout failed", "err", err)
		return
	}
	h.logger.Debug("layout done", "nodes", nodes, "took", d.Round(time.Microsecond))
}

func (h logPipelineHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h logPipelineHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "formats", formats, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "took", d.Round(time.Microsecond))
}

// LogCacheHooks returns cache hooks that write debug entries to logger.
func LogCacheHooks(logger *log.Logger) CacheHooks {
	return logCacheHooks{logger: logger}
}

type logCacheHooks struct {
	logger *log.Logger
}

func (h logCacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logCacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logCacheHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
