package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const maskThreshold = 50

var (
	// Runs of secret-ish characters to mask. Long runs are masked in
	// full content digests, short runs in the truncated head of long
	// content.
	longRun  = regexp.MustCompile(`[A-Za-z0-9_\-]{8,}`)
	shortRun = regexp.MustCompile(`[A-Za-z0-9_\-]{4,}`)
)

// Entry is one immutable, privacy-masked record of a filtering decision.
// Entries are appended once and never mutated or deleted; rotation and
// retention are external operational concerns.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	Mode      string    `json:"mode"`
	Patterns  []string  `json:"patterns"`
	Channel   string    `json:"channel"`
	Content   string    `json:"truncated_content"`
}

// AuditLog is an append-only JSONL sink over one physical file. The
// parent directory is created on first write only. Append serializes
// writers so a line is never interleaved with another.
type AuditLog struct {
	path string

	initOnce sync.Once
	initErr  error

	mu sync.Mutex
}

// NewAuditLog returns an audit log writing to path. No filesystem work
// happens until the first Append.
func NewAuditLog(path string) *AuditLog {
	return &AuditLog{path: path}
}

// Path returns the audit file location.
func (a *AuditLog) Path() string {
	return a.path
}

// Append builds an Entry and appends it as one JSON line. Pattern names
// are deduplicated and the raw content is masked before anything is
// written, so the file never stores a replayable secret. A write
// failure is returned for the caller to report on the operator console;
// it must never revert the filtering decision already made.
func (a *AuditLog) Append(event string, mode Mode, patterns []string, channel, rawContent string) error {
	a.initOnce.Do(func() {
		if dir := filepath.Dir(a.path); dir != "" && dir != "." {
			a.initErr = os.MkdirAll(dir, 0700)
		}
	})
	if a.initErr != nil {
		return fmt.Errorf("audit log directory: %w", a.initErr)
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Event:     event,
		Mode:      string(mode),
		Patterns:  dedupe(patterns),
		Channel:   channel,
		Content:   maskContent(rawContent, patterns),
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// maskContent produces the privacy-masked digest stored in an entry.
// Short content keeps its shape with every run of 8+ secret-ish
// characters reduced to a 3-char prefix; long content is cut to a
// 10-char head, masked more aggressively, and tagged with the first
// detected pattern name so an operator can still recognize the event.
func maskContent(raw string, patterns []string) string {
	if len(raw) <= maskThreshold {
		return longRun.ReplaceAllStringFunc(raw, maskRun)
	}

	head := raw
	if runes := []rune(raw); len(runes) > 10 {
		head = string(runes[:10])
	}
	label := "secret"
	if len(patterns) > 0 {
		label = patterns[0]
	}
	return shortRun.ReplaceAllStringFunc(head, maskRun) +
		"... [" + label + " detected]"
}

// maskRun keeps the first 3 characters of a run and drops the rest.
func maskRun(run string) string {
	return run[:3] + "***"
}

// dedupe returns names with duplicates removed, preserving order.
// The result is never nil so entries marshal with "patterns":[].
func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Tail reads back up to n entries from the end of the log. Used by the
// status surface and tests; the hot filter path never reads the file.
func (a *AuditLog) Tail(n int) ([]Entry, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("parse audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
