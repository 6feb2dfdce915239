package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/cricket-predictions/internal/platform/logging"
)

func TestRun_UsageErrors(t *testing.T) {
	for _, args := range [][]string{nil, {"sideways"}} {
		if err := run(args, logging.NewNop()); !errors.Is(err, errUsage) {
			t.Fatalf("args=%v: expected usage error, got %v", args, err)
		}
	}
}

func TestRun_RequiresDBURL(t *testing.T) {
	t.Setenv("DB_URL", "")
	err := run([]string{"up"}, logging.NewNop())
	if err == nil || !strings.Contains(err.Error(), "DB_URL") {
		t.Fatalf("expected DB_URL error, got %v", err)
	}
}

func TestParseSteps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{" 3 "}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"many"}, wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseSteps(tc.args)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("args=%v: expected error", tc.args)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("args=%v: got %d err=%v", tc.args, got, err)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	t.Parallel()

	if v, err := parseVersion("1771776035"); err != nil || v != 1771776035 {
		t.Fatalf("unexpected version %d err=%v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected error for invalid target")
	}
}

func TestNormalizeDBURL(t *testing.T) {
	t.Parallel()

	got := normalizeDBURL("postgres://u:p@localhost:5432/cricket?sslmode=disable", true)
	if !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag in url, got %q", got)
	}
	in := "postgres://u:p@localhost:5432/cricket"
	if got := normalizeDBURL(in, false); got != in {
		t.Fatalf("expected url unchanged, got %q", got)
	}
}
