// errors.go — sentinel errors for the builder package.
//
// Error policy (explicit and strict):
//   - Only sentinel variables (package-level) are exposed.
//   - Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   - Sentinels are NEVER wrapped with formatted strings at definition site.
//   - Implementations attach context using %w wrapping at the call site.
//   - Option constructors never panic; an invalid value is recorded on the
//     config and surfaced as ErrOptionViolation when Build runs.
package builder

import "errors"

var (
	// ErrOptionViolation indicates a WithX(...) option received an invalid
	// value, or a required option (WithK, WithSimilarity) was never set.
	ErrOptionViolation = errors.New("builder: invalid option value")

	// ErrEmptyDataset indicates Build was called with zero items.
	ErrEmptyDataset = errors.New("builder: dataset is empty")

	// ErrKTooLarge indicates k >= n: no builder can fill every neighbor list.
	ErrKTooLarge = errors.New("builder: k must be less than the number of items")

	// ErrDuplicateItemID indicates two input items share the same ID.
	ErrDuplicateItemID = errors.New("builder: duplicate item ID")
)
