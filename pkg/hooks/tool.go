package hooks

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/leakgate/pkg/secrets"
)

// DefaultMonitoredTools is the default set of tool names whose
// parameters are scanned. Only tools that move content out of the
// runtime or onto disk are monitored; scanning every tool would flood
// the filter with false positives from unrelated tooling.
func DefaultMonitoredTools() []string {
	return []string{"exec", "web_fetch", "browser", "message", "email"}
}

// ToolFilter scans serialized tool parameters before execution. Tools
// outside the monitored set are never scanned; that scope restriction
// is an explicit decision, not a gap. Redaction is not supported for
// structured parameters: character-offset surgery on a serialized JSON
// payload risks producing invalid JSON or corrupted arguments, so both
// redacted and blocked outcomes convert into a call block.
type ToolFilter struct {
	detector  *secrets.Detector
	redactor  *secrets.Redactor
	audit     *secrets.AuditLog
	monitored map[string]struct{}
	log       *zap.Logger
}

// NewToolFilter wires a tool-call filter over the given monitored tool
// names. An empty list falls back to DefaultMonitoredTools.
func NewToolFilter(detector *secrets.Detector, redactor *secrets.Redactor, audit *secrets.AuditLog, monitored []string, logger *zap.Logger) *ToolFilter {
	if len(monitored) == 0 {
		monitored = DefaultMonitoredTools()
	}
	set := make(map[string]struct{}, len(monitored))
	for _, name := range monitored {
		set[name] = struct{}{}
	}
	return &ToolFilter{
		detector:  detector,
		redactor:  redactor,
		audit:     audit,
		monitored: set,
		log:       logger,
	}
}

// Monitors reports whether a tool name is subject to parameter scanning.
func (f *ToolFilter) Monitors(toolName string) bool {
	_, ok := f.monitored[toolName]
	return ok
}

// OnToolCall scans the serialized parameter payload of a monitored tool
// as one string. The caller identity becomes the audit channel. Only a
// warned outcome lets the call through.
func (f *ToolFilter) OnToolCall(_ context.Context, ev ToolCallEvent) (*ToolDecision, error) {
	if !f.Monitors(ev.ToolName) {
		return nil, nil
	}

	payload := serializeParams(ev.Params)
	detections := f.detector.Detect(payload)
	outcome := f.redactor.Process(payload, detections)
	if len(outcome.Detections) == 0 {
		return nil, nil
	}

	names := secrets.PatternNames(outcome.Detections)
	f.auditDecision(string(outcome.Action), names, ev.Caller, payload)

	switch outcome.Action {
	case secrets.ActionBlocked:
		f.log.Warn("tool call blocked",
			zap.String("tool", ev.ToolName),
			zap.Strings("patterns", names),
		)
		return &ToolDecision{
			Block:  true,
			Reason: fmt.Sprintf("tool call %q blocked: %s (strict mode)", ev.ToolName, summarize(names)),
		}, nil

	case secrets.ActionRedacted:
		f.log.Warn("tool call blocked, parameter redaction unsupported",
			zap.String("tool", ev.ToolName),
			zap.Strings("patterns", names),
		)
		return &ToolDecision{
			Block:  true,
			Reason: fmt.Sprintf("tool call %q blocked: %s; structured parameters cannot be redacted in place", ev.ToolName, summarize(names)),
		}, nil

	default:
		f.log.Warn("tool call parameters contain possible secrets",
			zap.String("tool", ev.ToolName),
			zap.Strings("patterns", names),
		)
		return nil, nil
	}
}

func (f *ToolFilter) auditDecision(event string, names []string, channel, raw string) {
	decisionsTotal.WithLabelValues("tool_call", event).Inc()
	for _, name := range names {
		detectionsTotal.WithLabelValues(name).Inc()
	}
	if err := f.audit.Append(event, f.redactor.Mode(), names, channel, raw); err != nil {
		f.log.Error("audit log write failed", zap.Error(err))
	}
}

// serializeParams renders the parameter map as one scannable string.
// Marshal failures fall back to fmt so an unserializable payload is
// still scanned instead of silently skipping detection.
func serializeParams(params map[string]any) string {
	if len(params) == 0 {
		return ""
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprint(params)
	}
	return string(raw)
}

var _ ToolHook = (*ToolFilter)(nil)
