package graph

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

// recordingNode appends its name to the shared trace and writes its update.
func recordingNode(trace *[]string, name string, update Update) NodeFunc {
	return func(_ context.Context, _ *State) (Update, error) {
		*trace = append(*trace, name)
		return update, nil
	}
}

func TestRun_ExecutesNodesInChainOrder(testCase *testing.T) {
	trace := make([]string, 0, 3)

	compiled, err := NewBuilder().
		AddNode("first", recordingNode(&trace, "first", Update{"first": 1})).
		AddNode("second", recordingNode(&trace, "second", Update{"second": 2})).
		AddNode("third", recordingNode(&trace, "third", Update{"third": 3})).
		AddEdge("first", "second").
		AddEdge("second", "third").
		AddEdge("third", End).
		SetEntryPoint("first").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	final, err := compiled.Run(context.Background(), map[string]any{"seed": true})
	if err != nil {
		testCase.Fatalf("run failed: %v", err)
	}

	expectedTrace := []string{"first", "second", "third"}
	if !reflect.DeepEqual(trace, expectedTrace) {
		testCase.Errorf("expected execution order %v, got %v", expectedTrace, trace)
	}

	expectedState := map[string]any{"seed": true, "first": 1, "second": 2, "third": 3}
	if !reflect.DeepEqual(final.Map(), expectedState) {
		testCase.Errorf("expected final state %v, got %v", expectedState, final.Map())
	}
}

func TestRun_NodesSeeUpdatesFromPredecessors(testCase *testing.T) {
	compiled, err := NewBuilder().
		AddNode("produce", NodeFunc(func(_ context.Context, _ *State) (Update, error) {
			return Update{"value": "from-produce"}, nil
		})).
		AddNode("consume", NodeFunc(func(_ context.Context, state *State) (Update, error) {
			value, ok := state.String("value")
			if !ok {
				return nil, errors.New("value not visible to successor")
			}
			return Update{"echo": value}, nil
		})).
		AddEdge("produce", "consume").
		AddEdge("consume", End).
		SetEntryPoint("produce").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	final, err := compiled.Run(context.Background(), nil)
	if err != nil {
		testCase.Fatalf("run failed: %v", err)
	}

	if echo, _ := final.String("echo"); echo != "from-produce" {
		testCase.Errorf("expected successor to observe predecessor update, got echo=%q", echo)
	}
}

func TestRun_MergeOverwritesOnlyUpdatedFields(testCase *testing.T) {
	compiled, err := NewBuilder().
		AddNode("rewrite", NodeFunc(func(_ context.Context, _ *State) (Update, error) {
			return Update{"shared": "rewritten"}, nil
		})).
		AddEdge("rewrite", End).
		SetEntryPoint("rewrite").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	final, err := compiled.Run(context.Background(), map[string]any{
		"shared":    "original",
		"untouched": "still-here",
	})
	if err != nil {
		testCase.Fatalf("run failed: %v", err)
	}

	if shared, _ := final.String("shared"); shared != "rewritten" {
		testCase.Errorf("expected updated field to be overwritten, got %q", shared)
	}
	if untouched, _ := final.String("untouched"); untouched != "still-here" {
		testCase.Errorf("expected unrelated field to survive, got %q", untouched)
	}
}

func TestRun_NodeFailureStopsRunWithoutPartialState(testCase *testing.T) {
	nodeError := errors.New("boom")
	executedAfterFailure := false

	compiled, err := NewBuilder().
		AddNode("ok", NodeFunc(func(_ context.Context, _ *State) (Update, error) {
			return Update{"ok": true}, nil
		})).
		AddNode("fails", NodeFunc(func(_ context.Context, _ *State) (Update, error) {
			return nil, nodeError
		})).
		AddNode("never", NodeFunc(func(_ context.Context, _ *State) (Update, error) {
			executedAfterFailure = true
			return nil, nil
		})).
		AddEdge("ok", "fails").
		AddEdge("fails", "never").
		AddEdge("never", End).
		SetEntryPoint("ok").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	final, err := compiled.Run(context.Background(), nil)

	if final != nil {
		testCase.Errorf("expected nil state on failure, got %v", final.Map())
	}
	if executedAfterFailure {
		testCase.Error("expected no node to run after the failing one")
	}

	var executionError *ExecutionError
	if !errors.As(err, &executionError) {
		testCase.Fatalf("expected *ExecutionError, got %T: %v", err, err)
	}
	if executionError.Node != "fails" {
		testCase.Errorf("expected failing node %q, got %q", "fails", executionError.Node)
	}
	if !errors.Is(err, nodeError) {
		testCase.Errorf("expected wrapped cause to be reachable via errors.Is, got: %v", err)
	}
	if !strings.Contains(err.Error(), `node "fails" failed`) {
		testCase.Errorf("expected error to name the failing node, got: %v", err)
	}
}

func TestRun_IsDeterministicAcrossRuns(testCase *testing.T) {
	compiled, err := NewBuilder().
		AddNode("double", NodeFunc(func(_ context.Context, state *State) (Update, error) {
			value, _ := state.Get("n")
			return Update{"n": value.(int) * 2}, nil
		})).
		AddEdge("double", End).
		SetEntryPoint("double").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	for run := 0; run < 3; run++ {
		final, err := compiled.Run(context.Background(), map[string]any{"n": 21})
		if err != nil {
			testCase.Fatalf("run %d failed: %v", run, err)
		}
		if value, _ := final.Get("n"); value != 42 {
			testCase.Errorf("run %d: expected 42, got %v", run, value)
		}
	}
}

func TestRun_CanceledContextFailsBeforeNode(testCase *testing.T) {
	compiled, err := NewBuilder().
		AddNode("work", NodeFunc(func(_ context.Context, _ *State) (Update, error) {
			testCase.Error("node must not run after cancellation")
			return nil, nil
		})).
		AddEdge("work", End).
		SetEntryPoint("work").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	final, err := compiled.Run(ctx, nil)

	if final != nil {
		testCase.Error("expected nil state on cancellation")
	}
	if !errors.Is(err, context.Canceled) {
		testCase.Fatalf("expected context.Canceled, got: %v", err)
	}

	var executionError *ExecutionError
	if !errors.As(err, &executionError) {
		testCase.Fatalf("expected *ExecutionError carrying the cancellation, got %T", err)
	}
}

func TestRun_NodeTimeout(testCase *testing.T) {
	compiled, err := NewBuilder().
		AddNode("slow", NodeFunc(func(ctx context.Context, _ *State) (Update, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Second):
				return Update{"slow": "done"}, nil
			}
		}), WithNodeTimeout(10*time.Millisecond)).
		AddEdge("slow", End).
		SetEntryPoint("slow").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	_, err = compiled.Run(context.Background(), nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		testCase.Fatalf("expected context.DeadlineExceeded from node timeout, got: %v", err)
	}
}

func TestRun_RunTimeout(testCase *testing.T) {
	compiled, err := NewBuilder(WithRunTimeout(10*time.Millisecond)).
		AddNode("slow", NodeFunc(func(ctx context.Context, _ *State) (Update, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Second):
				return nil, nil
			}
		})).
		AddEdge("slow", End).
		SetEntryPoint("slow").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	_, err = compiled.Run(context.Background(), nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		testCase.Fatalf("expected context.DeadlineExceeded from run timeout, got: %v", err)
	}
}

func TestRun_ConcurrentRunsAreIsolated(testCase *testing.T) {
	compiled, err := NewBuilder().
		AddNode("tag", NodeFunc(func(_ context.Context, state *State) (Update, error) {
			id, _ := state.String("id")
			return Update{"tagged": "run-" + id}, nil
		})).
		AddEdge("tag", End).
		SetEntryPoint("tag").
		Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	results := make(chan string, 10)
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		go func() {
			final, runErr := compiled.Run(context.Background(), map[string]any{"id": id})
			if runErr != nil {
				results <- "error"
				return
			}
			tagged, _ := final.String("tagged")
			results <- tagged
		}()
		if want := "run-" + id; <-results != want {
			testCase.Errorf("expected isolated run state %q", want)
		}
	}
}

func TestGraph_String(testCase *testing.T) {
	compiled, err := newLinearBuilder().Compile()
	if err != nil {
		testCase.Fatalf("compile failed: %v", err)
	}

	if got := compiled.String(); got != "a -> b -> "+End {
		testCase.Errorf("unexpected chain description: %q", got)
	}
}
