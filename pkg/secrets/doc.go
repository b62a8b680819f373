// Package secrets provides credential detection, policy-driven redaction,
// and privacy-masked audit logging for content leaving a chat-agent runtime.
//
// The package is built from four pieces: a Registry of named regex patterns
// (builtin shapes plus user-supplied customs, minus an allowlist), a Detector
// that scans text against the active pattern set, a Redactor that turns
// detections into a block/redact/warn outcome under the current security
// mode, and an AuditLog that appends one privacy-masked JSONL record per
// filtering decision. The audit trail never stores a replayable secret.
//
// Detection is pure and safe for concurrent use. Mode is the only mutable
// state and is owned by a single Redactor instance.
package secrets
