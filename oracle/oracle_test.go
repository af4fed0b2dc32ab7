package oracle

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCompleterFunc_ForwardsCall(t *testing.T) {
	want := &Response{Text: "hello", Model: "stub"}

	completer := CompleterFunc(func(_ context.Context, request Request) (*Response, error) {
		if request.Prompt != "hi" {
			t.Errorf("expected prompt %q, got %q", "hi", request.Prompt)
		}
		return want, nil
	})

	got, err := completer.Complete(context.Background(), Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected the function's response to pass through unchanged")
	}
}

func TestApply_FirstMiddlewareIsOutermost(t *testing.T) {
	trace := make([]string, 0, 4)

	tagging := func(tag string) Middleware {
		return func(next CompleterFunc) CompleterFunc {
			return func(ctx context.Context, request Request) (*Response, error) {
				trace = append(trace, tag+"-before")
				response, err := next(ctx, request)
				trace = append(trace, tag+"-after")
				return response, err
			}
		}
	}

	base := CompleterFunc(func(_ context.Context, _ Request) (*Response, error) {
		trace = append(trace, "base")
		return &Response{Text: "ok"}, nil
	})

	wrapped := Apply(base, tagging("outer"), tagging("inner"))

	if _, err := wrapped.Complete(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"outer-before", "inner-before", "base", "inner-after", "outer-after"}
	if !reflect.DeepEqual(trace, expected) {
		t.Errorf("expected wrapping order %v, got %v", expected, trace)
	}
}

func TestApply_NoMiddlewares(t *testing.T) {
	base := CompleterFunc(func(_ context.Context, _ Request) (*Response, error) {
		return &Response{Text: "bare"}, nil
	})

	response, err := Apply(base).Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Text != "bare" {
		t.Errorf("expected the base completer to be returned as-is, got %q", response.Text)
	}
}

func TestError_FormatsWithAndWithoutStatus(t *testing.T) {
	withStatus := &Error{Provider: "openai", StatusCode: 429, Err: errors.New("rate limited")}
	if got := withStatus.Error(); !strings.Contains(got, "openai") || !strings.Contains(got, "429") {
		t.Errorf("expected provider and status in message, got %q", got)
	}

	withoutStatus := &Error{Provider: "openai", Err: errors.New("dial failed")}
	if got := withoutStatus.Error(); strings.Contains(got, "status") {
		t.Errorf("expected no status segment when none is known, got %q", got)
	}
}

func TestError_UnwrapReachesCause(t *testing.T) {
	wrapped := &Error{Provider: "openai", StatusCode: 200, Err: ErrEmptyCompletion}

	if !errors.Is(wrapped, ErrEmptyCompletion) {
		t.Error("expected errors.Is to reach the wrapped sentinel")
	}

	var oracleError *Error
	if !errors.As(error(wrapped), &oracleError) {
		t.Fatal("expected errors.As to match *Error")
	}
	if oracleError.StatusCode != 200 {
		t.Errorf("expected status 200, got %d", oracleError.StatusCode)
	}
}
