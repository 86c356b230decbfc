package check

import "context"

// Checker is implemented by all check types. Each check runs one external
// validation and returns a Result indicating success or failure; it never
// aborts the surrounding run.
//
// Implementations:
//   - toolcheck.Check: verifies a required tool exists and is usable
//   - covcheck.Check: gates a numeric value in a JSON coverage report
//   - runner command checks: run an opaque external command line
type Checker interface {
	Run(ctx context.Context) Result
}
