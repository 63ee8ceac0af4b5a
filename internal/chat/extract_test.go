package chat

import "testing"

func TestExtractJSONPlain(t *testing.T) {
	got, ok := ExtractJSON(`{"response": "hi"}`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"response": "hi"}` {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestExtractJSONSurroundingText(t *testing.T) {
	got, ok := ExtractJSON(`Sure, here you go: {"response": "done"} hope that helps!`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"response": "done"}` {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestExtractJSONCodeFence(t *testing.T) {
	input := "```json\n{\"response\": \"fenced\"}\n```"
	got, ok := ExtractJSON(input)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"response": "fenced"}` {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestExtractJSONNestedBraces(t *testing.T) {
	input := `{"function_call": {"name": "add_task", "arguments": {"title": "x"}}, "response": "ok"}`
	got, ok := ExtractJSON(input)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != input {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestExtractJSONNoObject(t *testing.T) {
	if _, ok := ExtractJSON("I could not find any tasks matching that."); ok {
		t.Fatal("expected extraction to fail on plain text")
	}
}
