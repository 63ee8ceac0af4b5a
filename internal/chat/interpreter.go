package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"taskdeck/internal/models"
	"taskdeck/internal/tasks"
)

const (
	defaultTemperature = 0.3
	defaultMaxTokens   = 500
)

// Kind classifies how an interpreted turn ended.
type Kind int

const (
	// KindOK means the reply stands as-is, with or without an executed call.
	KindOK Kind = iota
	// KindParseFailure means the model output carried no usable function
	// call; the raw text is returned unchanged.
	KindParseFailure
	// KindNotFound means the requested task does not exist for this user.
	KindNotFound
	// KindStoreFailure means the operation failed in the store.
	KindStoreFailure
	// KindServiceFailure means the completion service itself failed.
	KindServiceFailure
)

// ToolCall records one executed operation for the response payload.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
	Result    any
}

// Result is the outcome of interpreting one user message.
type Result struct {
	Reply    string
	UserID   string
	ToolCall *ToolCall
	Kind     Kind
	Err      error
}

// envelope is the JSON shape the model is instructed to emit.
type envelope struct {
	FunctionCall *functionCall `json:"function_call"`
	Response     string        `json:"response"`
}

type functionCall struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Interpreter turns natural language into task operations: one model call,
// JSON extraction, then dispatch through the executor.
type Interpreter struct {
	model       model.BaseChatModel
	executor    *Executor
	temperature float32
	maxTokens   int
}

// NewInterpreter wires a chat model to an executor.
func NewInterpreter(chatModel model.BaseChatModel, executor *Executor) *Interpreter {
	return &Interpreter{
		model:       chatModel,
		executor:    executor,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
}

// Interpret sends the message to the model and executes at most one
// requested operation on behalf of userID. The user id embedded in the model
// output is never trusted; the authenticated one always replaces it.
func (i *Interpreter) Interpret(ctx context.Context, userID, message string) *Result {
	msgs := []*schema.Message{
		schema.SystemMessage(instructions),
		schema.UserMessage(message),
	}

	out, err := i.model.Generate(ctx, msgs,
		model.WithTemperature(i.temperature),
		model.WithMaxTokens(i.maxTokens),
	)
	if err != nil {
		err = models.HandleError(err)
		slog.Error("completion service failed", "user", userID, "error", err)
		return &Result{
			Reply:  replyServiceFailure,
			UserID: userID,
			Kind:   KindServiceFailure,
			Err:    err,
		}
	}

	content := out.Content
	slog.Debug("model reply", "user", userID, "content", content)

	raw, ok := ExtractJSON(content)
	if !ok {
		return &Result{Reply: content, UserID: userID, Kind: KindParseFailure}
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		slog.Warn("could not parse model JSON", "user", userID, "error", err)
		return &Result{Reply: content, UserID: userID, Kind: KindParseFailure}
	}

	if env.FunctionCall == nil {
		reply := env.Response
		if reply == "" {
			reply = content
		}
		return &Result{Reply: reply, UserID: userID, Kind: KindOK}
	}

	call := env.FunctionCall
	if call.Arguments == nil {
		call.Arguments = map[string]any{}
	}
	call.Arguments["user_id"] = userID

	if !KnownOperation(call.Name) {
		slog.Warn("model requested unknown operation", "user", userID, "operation", call.Name)
		return &Result{Reply: textualReply(env, content), UserID: userID, Kind: KindParseFailure}
	}
	if err := ValidateArgs(call.Name, call.Arguments); err != nil {
		slog.Warn("model arguments failed validation", "user", userID, "operation", call.Name, "error", err)
		return &Result{Reply: textualReply(env, content), UserID: userID, Kind: KindParseFailure}
	}

	result, err := i.executor.Execute(ctx, call.Name, userID, call.Arguments)
	if err != nil {
		kind := KindStoreFailure
		if errors.Is(err, tasks.ErrNotFound) {
			kind = KindNotFound
		}
		slog.Error("operation failed", "user", userID, "operation", call.Name, "error", err)
		return &Result{Reply: replyExecuteFailure, UserID: userID, Kind: kind, Err: err}
	}

	argsJSON, _ := json.Marshal(call.Arguments)
	reply := env.Response
	if reply == "" {
		reply = replyActionDone
	}

	return &Result{
		Reply:  reply,
		UserID: userID,
		ToolCall: &ToolCall{
			ID:        uuid.NewString(),
			Name:      call.Name,
			Arguments: string(argsJSON),
			Result:    result,
		},
		Kind: KindOK,
	}
}

func textualReply(env envelope, fallback string) string {
	if env.Response != "" {
		return env.Response
	}
	return fallback
}
