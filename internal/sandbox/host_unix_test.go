//go:build !windows
// +build !windows

package sandbox

import (
	"context"
	"testing"
	"time"
)

func TestHostRunnerCapturesOutput(t *testing.T) {
	r := &HostRunner{}

	res, err := r.RunCmd(context.Background(), t.TempDir(), "sh", []string{"-c", "echo out; echo err >&2"}, 10*time.Second)
	if err != nil {
		t.Fatalf("RunCmd: %v", err)
	}
	if res.Stdout != "out\n" {
		t.Errorf("stdout = %q, want %q", res.Stdout, "out\n")
	}
	if res.Stderr != "err\n" {
		t.Errorf("stderr = %q, want %q", res.Stderr, "err\n")
	}
	if res.Code != 0 || res.TimedOut {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestHostRunnerExitCode(t *testing.T) {
	r := &HostRunner{}

	res, err := r.RunCmd(context.Background(), t.TempDir(), "sh", []string{"-c", "exit 3"}, 10*time.Second)
	if err == nil {
		t.Fatal("expected an error for non-zero exit")
	}
	if res.Code != 3 {
		t.Errorf("exit code = %d, want 3", res.Code)
	}
	if res.TimedOut {
		t.Error("should not report a timeout")
	}
}

func TestHostRunnerTimeout(t *testing.T) {
	r := &HostRunner{}

	start := time.Now()
	res, err := r.RunCmd(context.Background(), t.TempDir(), "sleep", []string{"30"}, 200*time.Millisecond)
	if err == nil {
		t.Fatal("expected an error after timeout")
	}
	if !res.TimedOut {
		t.Error("expected TimedOut to be set")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("kill took too long: %v", elapsed)
	}
}
