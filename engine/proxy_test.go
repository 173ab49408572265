package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubTiming struct {
	frames uint64
	fail   bool
}

func (s *stubTiming) FrameCount() uint64 { return s.frames }

func (s *stubTiming) FrameDuration() time.Duration { return 16 * time.Millisecond }

func (s *stubTiming) Scale(factor float64) (float64, error) {
	if s.fail {
		return 0, errors.New("scale unavailable")
	}
	return factor * 2, nil
}

func TestInvokeByNameNoArgs(t *testing.T) {
	results, err := invokeByName(&stubTiming{frames: 7}, "frame-count", nil)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	var count uint64
	if err := json.Unmarshal(results[0], &count); err != nil || count != 7 {
		t.Errorf("frame-count = %s (err %v), want 7", results[0], err)
	}
}

func TestInvokeByNameWithArgsAndError(t *testing.T) {
	arg, _ := json.Marshal(3.0)

	results, err := invokeByName(&stubTiming{}, "scale", []json.RawMessage{arg})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	var scaled float64
	if err := json.Unmarshal(results[0], &scaled); err != nil || scaled != 6 {
		t.Errorf("scale(3) = %s, want 6", results[0])
	}

	// A non-nil trailing error becomes a call failure.
	if _, err := invokeByName(&stubTiming{fail: true}, "scale", []json.RawMessage{arg}); err == nil {
		t.Fatal("expected error result to fail the call")
	}
}

func TestInvokeByNameUnknownMethod(t *testing.T) {
	_, err := invokeByName(&stubTiming{}, "no-such-method", nil)
	if err == nil || !strings.Contains(err.Error(), "no-such-method") {
		t.Fatalf("expected unknown method error, got %v", err)
	}
}

func TestInvokeByNameArityMismatch(t *testing.T) {
	if _, err := invokeByName(&stubTiming{}, "scale", nil); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestToKebabCase(t *testing.T) {
	cases := map[string]string{
		"FrameCount":    "frame-count",
		"FrameDuration": "frame-duration",
		"ParseURL":      "parse-url",
		"HTTPStatus":    "http-status",
		"Pose":          "pose",
		"SetPose":       "set-pose",
		"":              "",
	}
	for in, want := range cases {
		if got := toKebabCase(in); got != want {
			t.Errorf("toKebabCase(%q) = %q, want %q", in, got, want)
		}
	}
}
