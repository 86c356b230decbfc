package check

// Status represents the outcome of a check.
type Status string

const (
	StatusOK   Status = "OK"
	StatusFail Status = "FAIL"
)

// Result holds the outcome of a single named check. A Result is created the
// moment the check's external command returns and is immutable afterwards.
type Result struct {
	Name    string   // e.g., "tool: docker", "check: lint"
	Status  Status   // OK or FAIL
	Details []string // human-readable details
	Err     error    // underlying error for failures
}

// OK returns true if the check passed.
func (r Result) OK() bool {
	return r.Status == StatusOK
}
