package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMessageHook struct {
	name     string
	order    *[]string
	decision *MessageDecision
}

func (h *recordingMessageHook) OnMessage(_ context.Context, _ MessageEvent) (*MessageDecision, error) {
	*h.order = append(*h.order, h.name)
	return h.decision, nil
}

type recordingToolHook struct {
	name     string
	order    *[]string
	decision *ToolDecision
}

func (h *recordingToolHook) OnToolCall(_ context.Context, _ ToolCallEvent) (*ToolDecision, error) {
	*h.order = append(*h.order, h.name)
	return h.decision, nil
}

func TestRegistry_PriorityOrdering(t *testing.T) {
	t.Run("message hooks run highest priority first", func(t *testing.T) {
		var order []string
		r := NewRegistry()
		r.RegisterMessageHook(PriorityNormal, &recordingMessageHook{name: "normal", order: &order})
		r.RegisterMessageHook(PriorityCritical, &recordingMessageHook{name: "critical", order: &order})
		r.RegisterMessageHook(PriorityHigh, &recordingMessageHook{name: "high", order: &order})

		_, err := r.DispatchMessage(context.Background(), MessageEvent{Content: "hi"})
		require.NoError(t, err)
		assert.Equal(t, []string{"critical", "high", "normal"}, order)
	})

	t.Run("tool hooks run highest priority first", func(t *testing.T) {
		var order []string
		r := NewRegistry()
		r.RegisterToolHook(PriorityNormal, &recordingToolHook{name: "normal", order: &order})
		r.RegisterToolHook(PriorityCritical, &recordingToolHook{name: "critical", order: &order})

		_, err := r.DispatchToolCall(context.Background(), ToolCallEvent{ToolName: "exec"})
		require.NoError(t, err)
		assert.Equal(t, []string{"critical", "normal"}, order)
	})

	t.Run("equal priority preserves registration order", func(t *testing.T) {
		var order []string
		r := NewRegistry()
		r.RegisterMessageHook(PriorityCritical, &recordingMessageHook{name: "first", order: &order})
		r.RegisterMessageHook(PriorityCritical, &recordingMessageHook{name: "second", order: &order})

		_, err := r.DispatchMessage(context.Background(), MessageEvent{})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
	})
}

func TestRegistry_DispatchMessage(t *testing.T) {
	t.Run("cancel short-circuits the chain", func(t *testing.T) {
		var order []string
		r := NewRegistry()
		r.RegisterMessageHook(PriorityCritical, &recordingMessageHook{
			name: "blocker", order: &order,
			decision: &MessageDecision{Cancel: true, Reason: "no"},
		})
		r.RegisterMessageHook(PriorityNormal, &recordingMessageHook{name: "late", order: &order})

		decision, err := r.DispatchMessage(context.Background(), MessageEvent{Content: "x"})
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.True(t, decision.Cancel)
		assert.Equal(t, []string{"blocker"}, order)
	})

	t.Run("content override propagates to later hooks", func(t *testing.T) {
		var seen string
		r := NewRegistry()
		r.RegisterMessageHook(PriorityCritical, messageHookFunc(func(_ context.Context, ev MessageEvent) (*MessageDecision, error) {
			return &MessageDecision{Content: "rewritten"}, nil
		}))
		r.RegisterMessageHook(PriorityNormal, messageHookFunc(func(_ context.Context, ev MessageEvent) (*MessageDecision, error) {
			seen = ev.Content
			return nil, nil
		}))

		decision, err := r.DispatchMessage(context.Background(), MessageEvent{Content: "original"})
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.Equal(t, "rewritten", decision.Content)
		assert.Equal(t, "rewritten", seen)
	})

	t.Run("no hooks means no decision", func(t *testing.T) {
		decision, err := NewRegistry().DispatchMessage(context.Background(), MessageEvent{Content: "x"})
		require.NoError(t, err)
		assert.Nil(t, decision)
	})
}

type messageHookFunc func(ctx context.Context, ev MessageEvent) (*MessageDecision, error)

func (f messageHookFunc) OnMessage(ctx context.Context, ev MessageEvent) (*MessageDecision, error) {
	return f(ctx, ev)
}

func TestRegistry_DispatchToolCall(t *testing.T) {
	t.Run("first block wins", func(t *testing.T) {
		var order []string
		r := NewRegistry()
		r.RegisterToolHook(PriorityCritical, &recordingToolHook{
			name: "blocker", order: &order,
			decision: &ToolDecision{Block: true, Reason: "secrets"},
		})
		r.RegisterToolHook(PriorityNormal, &recordingToolHook{name: "late", order: &order})

		decision, err := r.DispatchToolCall(context.Background(), ToolCallEvent{ToolName: "exec"})
		require.NoError(t, err)
		require.NotNil(t, decision)
		assert.True(t, decision.Block)
		assert.Equal(t, []string{"blocker"}, order)
	})

	t.Run("no block means nil decision", func(t *testing.T) {
		var order []string
		r := NewRegistry()
		r.RegisterToolHook(PriorityNormal, &recordingToolHook{name: "a", order: &order})

		decision, err := r.DispatchToolCall(context.Background(), ToolCallEvent{ToolName: "exec"})
		require.NoError(t, err)
		assert.Nil(t, decision)
	})
}
