package runner

import "github.com/verneri/parity/pkg/check"

// Summary is the immutable record of a completed run: every declared check
// appears exactly once, in declaration order.
type Summary struct {
	Results []check.Result
}

// Summarize folds the ordered result sequence into a Summary.
func Summarize(results []check.Result) Summary {
	return Summary{Results: results}
}

// Passed returns the passing results, preserving declaration order.
func (s Summary) Passed() []check.Result {
	var passed []check.Result
	for _, r := range s.Results {
		if r.OK() {
			passed = append(passed, r)
		}
	}
	return passed
}

// Failed returns the failing results, preserving declaration order.
func (s Summary) Failed() []check.Result {
	var failed []check.Result
	for _, r := range s.Results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}

// ExitCode returns ExitOK when every check passed, ExitChecksFailed
// otherwise. The contract is strictly binary: there is no partial success.
func (s Summary) ExitCode() int {
	if len(s.Failed()) == 0 {
		return ExitOK
	}
	return ExitChecksFailed
}
