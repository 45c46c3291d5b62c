package observability

import (
	"errors"
	"testing"
	"time"

	otellog "go.opentelemetry.io/otel/log"
)

func TestShouldSkipUptraceLog(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health probe", msg: "http request", args: []any{"method", "GET", "path", "/healthz"}, want: true},
		{name: "metrics scrape", msg: "http request", args: []any{"path", "/metrics"}, want: true},
		{name: "api request", msg: "http request", args: []any{"path", "/v1/groups/g1/standings"}, want: false},
		{name: "other event", msg: "standing updated", args: []any{"path", "/healthz"}, want: false},
		{name: "non string path", msg: "http request", args: []any{"path", 42}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shouldSkipUptraceLog(tc.msg, tc.args); got != tc.want {
				t.Fatalf("shouldSkipUptraceLog() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"group_id", "group-a", "qualified", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "group_id" || attrs[0].Value.AsString() != "group-a" {
		t.Fatalf("unexpected group_id attribute")
	}
	if attrs[1].Key != "qualified" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected qualified attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	t.Run("map", func(t *testing.T) {
		v := toOTelLogValue(map[string]any{
			"points": 9,
			"locked": true,
		}, 0)
		if v.Kind() != otellog.KindMap {
			t.Fatalf("expected map value, got %s", v.Kind())
		}
		if len(v.AsMap()) != 2 {
			t.Fatalf("expected 2 map items, got %d", len(v.AsMap()))
		}
	})

	t.Run("slice of ids", func(t *testing.T) {
		v := toOTelLogValue([]string{"t1", "t2"}, 0)
		if v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
			t.Fatalf("unexpected slice value: %v", v)
		}
	})

	t.Run("scalars", func(t *testing.T) {
		if got := toOTelLogValue(errors.New("boom"), 0).AsString(); got != "boom" {
			t.Fatalf("unexpected error value: %q", got)
		}
		if got := toOTelLogValue(1500*time.Millisecond, 0).AsString(); got != "1.5s" {
			t.Fatalf("unexpected duration value: %q", got)
		}
		if got := toOTelLogValue(uint64(7), 0).AsInt64(); got != 7 {
			t.Fatalf("unexpected uint64 value: %d", got)
		}
	})
}
