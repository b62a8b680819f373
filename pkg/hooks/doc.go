// Package hooks wires the secrets engine into a chat-agent runtime as
// two interception points: a message filter over outbound chat content
// and a tool-call filter over serialized tool parameters.
//
// Both filters share one flow: detect, process under the current
// security mode, audit, decide. They register at PriorityCritical so no
// other hook observes unredacted secrets first; that ordering is an
// architectural invariant of the filter, not a configurable option.
// Each hook call is synchronous and blocks the send or tool execution
// it observes until a decision is returned.
package hooks
