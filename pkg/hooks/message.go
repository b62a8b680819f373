package hooks

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/leakgate/pkg/secrets"
)

// MessageFilter scans outbound chat content and enforces the security
// mode before anything reaches a channel adapter. It composes the
// injected Detector, Redactor, and AuditLog; it owns none of them, so
// multiple filters can share one policy.
type MessageFilter struct {
	detector *secrets.Detector
	redactor *secrets.Redactor
	audit    *secrets.AuditLog
	log      *zap.Logger
}

// NewMessageFilter wires a message filter. logger may not be nil; pass
// zap.NewNop() when console reporting is unwanted.
func NewMessageFilter(detector *secrets.Detector, redactor *secrets.Redactor, audit *secrets.AuditLog, logger *zap.Logger) *MessageFilter {
	return &MessageFilter{
		detector: detector,
		redactor: redactor,
		audit:    audit,
		log:      logger,
	}
}

// OnMessage runs detect, process, audit, decide for one outbound
// message. The recipient becomes the audit channel. The returned
// decision never carries the original text when the outcome is blocked.
func (f *MessageFilter) OnMessage(_ context.Context, ev MessageEvent) (*MessageDecision, error) {
	detections := f.detector.Detect(ev.Content)
	outcome := f.redactor.Process(ev.Content, detections)
	if len(outcome.Detections) == 0 {
		return nil, nil
	}

	names := secrets.PatternNames(outcome.Detections)
	f.auditDecision(string(outcome.Action), names, ev.Recipient, ev.Content)

	switch outcome.Action {
	case secrets.ActionBlocked:
		f.log.Warn("outbound message blocked",
			zap.String("recipient", ev.Recipient),
			zap.Strings("patterns", names),
		)
		return &MessageDecision{
			Cancel: true,
			Reason: "message blocked: " + summarize(names),
		}, nil

	case secrets.ActionRedacted:
		f.log.Warn("outbound message redacted",
			zap.String("recipient", ev.Recipient),
			zap.Strings("patterns", names),
		)
		return &MessageDecision{
			Content: outcome.Text,
			Reason:  "message redacted: " + summarize(names),
		}, nil

	default:
		f.log.Warn("outbound message contains possible secrets",
			zap.String("recipient", ev.Recipient),
			zap.Strings("patterns", names),
		)
		return nil, nil
	}
}

// auditDecision appends the audit entry and reports write failures on
// the operator console. The decision already computed is never reverted
// because the audit write failed.
func (f *MessageFilter) auditDecision(event string, names []string, channel, raw string) {
	decisionsTotal.WithLabelValues("message", event).Inc()
	for _, name := range names {
		detectionsTotal.WithLabelValues(name).Inc()
	}
	if err := f.audit.Append(event, f.redactor.Mode(), names, channel, raw); err != nil {
		f.log.Error("audit log write failed", zap.Error(err))
	}
}

// summarize renders deduplicated pattern names for operator-facing
// warning text.
func summarize(names []string) string {
	return strings.Join(names, ", ") + " detected"
}

var _ MessageHook = (*MessageFilter)(nil)
