package hooks

import (
	"context"
	"sort"
)

// Priority orders hook execution. Higher runs first.
type Priority int

const (
	// PriorityNormal is for ordinary hooks with no ordering needs.
	PriorityNormal Priority = 0

	// PriorityHigh is for hooks that want to run before the default set.
	PriorityHigh Priority = 50

	// PriorityCritical is reserved for security interception. The
	// secret filters register here so nothing upstream of them sees
	// unredacted content.
	PriorityCritical Priority = 100
)

// MessageEvent is an outbound chat message about to leave the runtime.
type MessageEvent struct {
	Recipient string
	Content   string
}

// MessageDecision is the filter's verdict on a message. A nil decision
// means no override: the original content proceeds unmodified. Cancel
// tells the host to discard the message; a non-empty Content replaces
// the original before sending.
type MessageDecision struct {
	Cancel  bool
	Content string
	Reason  string
}

// ToolCallEvent is a tool invocation about to execute. Caller is the
// agent identity from the execution context; it becomes the audit
// channel.
type ToolCallEvent struct {
	ToolName string
	Params   map[string]any
	Caller   string
}

// ToolDecision is the filter's verdict on a tool call. Nil means the
// call proceeds.
type ToolDecision struct {
	Block  bool
	Reason string
}

// MessageHook intercepts outbound messages.
type MessageHook interface {
	OnMessage(ctx context.Context, ev MessageEvent) (*MessageDecision, error)
}

// ToolHook intercepts tool calls before execution.
type ToolHook interface {
	OnToolCall(ctx context.Context, ev ToolCallEvent) (*ToolDecision, error)
}

type messageEntry struct {
	priority Priority
	hook     MessageHook
}

type toolEntry struct {
	priority Priority
	hook     ToolHook
}

// Registry holds registered hooks ordered by priority. The host runtime
// owns one Registry and dispatches every outbound message and tool call
// through it. Registration happens during startup wiring; dispatch is
// read-only afterwards.
type Registry struct {
	messageHooks []messageEntry
	toolHooks    []toolEntry
}

// NewRegistry returns an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterMessageHook adds a message hook at the given priority.
func (r *Registry) RegisterMessageHook(priority Priority, hook MessageHook) {
	r.messageHooks = append(r.messageHooks, messageEntry{priority: priority, hook: hook})
	sort.SliceStable(r.messageHooks, func(i, j int) bool {
		return r.messageHooks[i].priority > r.messageHooks[j].priority
	})
}

// RegisterToolHook adds a tool hook at the given priority.
func (r *Registry) RegisterToolHook(priority Priority, hook ToolHook) {
	r.toolHooks = append(r.toolHooks, toolEntry{priority: priority, hook: hook})
	sort.SliceStable(r.toolHooks, func(i, j int) bool {
		return r.toolHooks[i].priority > r.toolHooks[j].priority
	})
}

// DispatchMessage runs message hooks highest-priority first. A Cancel
// decision short-circuits the chain; a Content override rewrites the
// event for the remaining hooks. The returned decision reflects the
// final verdict, or nil when no hook intervened.
func (r *Registry) DispatchMessage(ctx context.Context, ev MessageEvent) (*MessageDecision, error) {
	var final *MessageDecision
	for _, entry := range r.messageHooks {
		decision, err := entry.hook.OnMessage(ctx, ev)
		if err != nil {
			return nil, err
		}
		if decision == nil {
			continue
		}
		if decision.Cancel {
			return decision, nil
		}
		if decision.Content != "" {
			ev.Content = decision.Content
			final = decision
		}
	}
	return final, nil
}

// DispatchToolCall runs tool hooks highest-priority first, stopping at
// the first block.
func (r *Registry) DispatchToolCall(ctx context.Context, ev ToolCallEvent) (*ToolDecision, error) {
	for _, entry := range r.toolHooks {
		decision, err := entry.hook.OnToolCall(ctx, ev)
		if err != nil {
			return nil, err
		}
		if decision != nil && decision.Block {
			return decision, nil
		}
	}
	return nil, nil
}
