package chat

import (
	"context"
	"log/slog"

	"taskdeck/internal/tasks"
)

// TaskSummary carries the user's task counts alongside every chat response.
type TaskSummary struct {
	TotalCount     int `json:"total_count"`
	PendingCount   int `json:"pending_count"`
	CompletedCount int `json:"completed_count"`
}

// FunctionDetail is the name/arguments pair inside a formatted tool call.
type FunctionDetail struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// FormattedToolCall is the wire shape of one executed operation.
type FormattedToolCall struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Function FunctionDetail `json:"function"`
}

// Response is the stable chat payload returned to clients.
type Response struct {
	ConversationID int64               `json:"conversation_id"`
	Response       string              `json:"response"`
	ToolCalls      []FormattedToolCall `json:"tool_calls"`
	TaskSummary    *TaskSummary        `json:"task_summary"`
}

// Formatter assembles chat responses: the reply text, the executed tool
// calls in function-call shape, and a fresh task summary.
type Formatter struct {
	store tasks.Store
}

// NewFormatter creates a Formatter backed by the given task store.
func NewFormatter(store tasks.Store) *Formatter {
	return &Formatter{store: store}
}

// Format builds the response payload for one interpreted turn. Formatting
// never fails: any panic collapses to a minimal safe payload.
func (f *Formatter) Format(ctx context.Context, conversationID int64, result *Result) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("response formatting panicked", "recover", r)
			resp = &Response{
				ConversationID: conversationID,
				Response:       "I processed your request.",
				ToolCalls:      []FormattedToolCall{},
			}
		}
	}()

	resp = &Response{
		ConversationID: conversationID,
		Response:       result.Reply,
		ToolCalls:      []FormattedToolCall{},
		TaskSummary:    f.taskSummary(ctx, result.UserID),
	}

	if result.ToolCall != nil {
		resp.ToolCalls = append(resp.ToolCalls, FormattedToolCall{
			ID:   result.ToolCall.ID,
			Type: "function",
			Function: FunctionDetail{
				Name:      result.ToolCall.Name,
				Arguments: result.ToolCall.Arguments,
			},
		})
	}

	return resp
}

// taskSummary counts the user's tasks per status. Any store error yields
// all-zero counts rather than failing the chat turn.
func (f *Formatter) taskSummary(ctx context.Context, userID string) *TaskSummary {
	all, err := f.store.List(ctx, userID, tasks.StatusAll)
	if err != nil {
		slog.Error("task summary failed", "user", userID, "error", err)
		return &TaskSummary{}
	}
	pending, err := f.store.List(ctx, userID, tasks.StatusPending)
	if err != nil {
		slog.Error("task summary failed", "user", userID, "error", err)
		return &TaskSummary{}
	}
	completed, err := f.store.List(ctx, userID, tasks.StatusCompleted)
	if err != nil {
		slog.Error("task summary failed", "user", userID, "error", err)
		return &TaskSummary{}
	}
	return &TaskSummary{
		TotalCount:     len(all),
		PendingCount:   len(pending),
		CompletedCount: len(completed),
	}
}
