// Package operation defines the closed set of tax operations and the
// payload rules each one imposes.
package operation

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Operation identifies one of the three supported API actions.
type Operation int

const (
	// CalculateOnly computes tax without finalizing against the ledger.
	CalculateOnly Operation = iota
	// CalculateAndCommit computes tax and finalizes the transaction.
	CalculateAndCommit
	// CancelTransaction voids a previously committed transaction.
	CancelTransaction
)

// CLI argument strings mapped to operations.
const (
	ArgCalculateOnly      = "get_tax"
	ArgCalculateAndCommit = "post_tax"
	ArgCancelTransaction  = "cancel_tax"
)

// committedField is the only payload field the tool interprets.
const committedField = "Committed"

// InvalidError reports an operation string outside the supported set.
type InvalidError struct {
	Value string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid operation '%s': must be one of %s, %s, %s",
		e.Value, ArgCalculateOnly, ArgCalculateAndCommit, ArgCancelTransaction)
}

// CommitMismatchError reports a payload whose Committed flag contradicts
// the requested operation.
type CommitMismatchError struct {
	Op        Operation
	Committed bool
}

func (e *CommitMismatchError) Error() string {
	return fmt.Sprintf("operation %s requires Committed=%v, but payload has Committed=%v",
		e.Op, !e.Committed, e.Committed)
}

// Parse maps a CLI argument to an Operation.
func Parse(s string) (Operation, error) {
	switch s {
	case ArgCalculateOnly:
		return CalculateOnly, nil
	case ArgCalculateAndCommit:
		return CalculateAndCommit, nil
	case ArgCancelTransaction:
		return CancelTransaction, nil
	default:
		return 0, &InvalidError{Value: s}
	}
}

// String returns the CLI argument form of the operation.
func (op Operation) String() string {
	switch op {
	case CalculateOnly:
		return ArgCalculateOnly
	case CalculateAndCommit:
		return ArgCalculateAndCommit
	case CancelTransaction:
		return ArgCancelTransaction
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// ValidateCommitted enforces the commit-flag invariant: CalculateOnly
// requires Committed=false, CalculateAndCommit requires Committed=true,
// CancelTransaction accepts anything. An absent field reads as false.
func ValidateCommitted(op Operation, payload []byte) error {
	if op == CancelTransaction {
		return nil
	}
	committed := gjson.GetBytes(payload, committedField).Bool()
	wantCommitted := op == CalculateAndCommit
	if committed != wantCommitted {
		return &CommitMismatchError{Op: op, Committed: committed}
	}
	return nil
}

// Validate runs every payload check for the operation: the payload must
// be a JSON object and its commit flag must match the operation. The
// payload is returned unchanged.
func Validate(op Operation, payload []byte) ([]byte, error) {
	if !gjson.ParseBytes(payload).IsObject() {
		return nil, fmt.Errorf("payload must be a JSON object")
	}
	if err := ValidateCommitted(op, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
