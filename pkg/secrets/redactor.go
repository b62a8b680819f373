package secrets

import (
	"fmt"
	"sort"
	"sync"
)

// Mode is the enforcement policy level.
type Mode string

const (
	// ModeStrict blocks any content containing detections.
	ModeStrict Mode = "strict"

	// ModeNormal rewrites detected spans with redaction markers.
	ModeNormal Mode = "normal"

	// ModePermissive warns but lets content through unmodified.
	ModePermissive Mode = "permissive"
)

// ParseMode validates a mode token. Anything outside the three enum
// values is rejected.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeNormal, ModePermissive:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q (valid: strict, normal, permissive)", ErrInvalidMode, s)
}

// Describe returns the human-readable enforcement description for the mode.
func (m Mode) Describe() string {
	switch m {
	case ModeStrict:
		return "block content containing secrets"
	case ModeNormal:
		return "redact secrets, then deliver"
	case ModePermissive:
		return "warn only, deliver unmodified"
	}
	return "unknown"
}

// Action is the enforcement outcome of processing one piece of content.
type Action string

const (
	// ActionBlocked means the content must be discarded, not transmitted.
	ActionBlocked Action = "blocked"

	// ActionRedacted means the rewritten text replaces the original.
	ActionRedacted Action = "redacted"

	// ActionWarned means the original content proceeds unmodified.
	ActionWarned Action = "warned"
)

// Outcome is the result of Redactor.Process. Text carries the original
// input verbatim for blocked and warned outcomes; callers of a blocked
// outcome must discard it rather than transmit it. Detections are always
// attached for reporting and audit.
type Outcome struct {
	Action     Action
	Text       string
	Detections []Detection
}

// Redactor owns the mutable security mode and turns detections into an
// enforcement outcome. Mode is read on every filter invocation and
// written only through SetMode; the RWMutex gives those accesses
// sequential consistency under a concurrent host runtime. One Redactor
// represents one policy; independent policies need separate instances.
type Redactor struct {
	mu   sync.RWMutex
	mode Mode
}

// NewRedactor returns a Redactor in the given mode, defaulting to
// strict when mode is empty. Unknown values also fall back to strict:
// the filter fails closed, never open.
func NewRedactor(mode Mode) *Redactor {
	if _, err := ParseMode(string(mode)); err != nil {
		mode = ModeStrict
	}
	return &Redactor{mode: mode}
}

// Mode returns the current security mode.
func (r *Redactor) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

// SetMode validates and switches the security mode.
func (r *Redactor) SetMode(value string) (Mode, error) {
	mode, err := ParseMode(value)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.mode = mode
	r.mu.Unlock()
	return mode, nil
}

// Process derives the enforcement outcome from the current mode and the
// detection list. With no detections the outcome is always warned with
// the text unchanged, regardless of mode.
func (r *Redactor) Process(text string, detections []Detection) Outcome {
	if len(detections) == 0 {
		return Outcome{Action: ActionWarned, Text: text}
	}

	switch r.Mode() {
	case ModeNormal:
		return Outcome{
			Action:     ActionRedacted,
			Text:       redact(text, detections),
			Detections: detections,
		}
	case ModePermissive:
		return Outcome{Action: ActionWarned, Text: text, Detections: detections}
	default:
		return Outcome{Action: ActionBlocked, Text: text, Detections: detections}
	}
}

// span is one region to splice out of the text.
type span struct {
	start, end int
	pattern    string
}

// redact replaces every detected span with a [REDACTED:<pattern>] marker.
// Overlapping spans from different patterns are merged first, with the
// earliest contributing pattern naming the merged region; this is the
// overlap-resolution strategy, chosen because it keeps the splice total
// and deterministic for any detection list. The splice itself runs over
// spans sorted by start offset descending: marker length generally
// differs from match length, and right-to-left application keeps every
// not-yet-processed lower offset valid.
func redact(text string, detections []Detection) string {
	spans := make([]span, 0, len(detections))
	for _, det := range detections {
		if det.Start < 0 || det.End > len(text) || det.Start >= det.End {
			continue
		}
		spans = append(spans, span{start: det.Start, end: det.End, pattern: det.Pattern})
	}
	if len(spans) == 0 {
		return text
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start < spans[j].start
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.start <= last.end {
			if s.end > last.end {
				last.end = s.end
			}
			continue
		}
		merged = append(merged, s)
	}

	out := text
	for i := len(merged) - 1; i >= 0; i-- {
		s := merged[i]
		out = out[:s.start] + "[REDACTED:" + s.pattern + "]" + out[s.end:]
	}
	return out
}
