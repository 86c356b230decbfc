package runner

import (
	"testing"

	"github.com/verneri/parity/pkg/check"
)

func results(statuses ...check.Status) []check.Result {
	rs := make([]check.Result, len(statuses))
	for i, s := range statuses {
		rs[i] = check.Result{Name: string(rune('a' + i)), Status: s}
	}
	return rs
}

func TestSummarizePartitionsPreserveOrder(t *testing.T) {
	s := Summarize([]check.Result{
		{Name: "check: lint", Status: check.StatusOK},
		{Name: "check: link-check", Status: check.StatusFail},
		{Name: "check: compose-config", Status: check.StatusOK},
		{Name: "check: security-scan", Status: check.StatusFail},
	})

	passed := s.Passed()
	if len(passed) != 2 || passed[0].Name != "check: lint" || passed[1].Name != "check: compose-config" {
		t.Errorf("Passed() = %v, want lint then compose-config", passed)
	}

	failed := s.Failed()
	if len(failed) != 2 || failed[0].Name != "check: link-check" || failed[1].Name != "check: security-scan" {
		t.Errorf("Failed() = %v, want link-check then security-scan", failed)
	}
}

func TestSummaryExitCode(t *testing.T) {
	tests := []struct {
		name     string
		statuses []check.Status
		want     int
	}{
		{"all pass", []check.Status{check.StatusOK, check.StatusOK}, ExitOK},
		{"one fails", []check.Status{check.StatusOK, check.StatusFail}, ExitChecksFailed},
		{"all fail", []check.Status{check.StatusFail, check.StatusFail}, ExitChecksFailed},
		{"no checks", nil, ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(results(tt.statuses...))
			if got := s.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
