package assemble

import "fmt"

// DuplicateLabelError reports that a label was defined more than once.
type DuplicateLabelError struct {
	Label string
}

func (e *DuplicateLabelError) Error() string {
	return fmt.Sprintf("assemble: duplicate label %q", e.Label)
}

// UnknownLabelError reports a record referencing a label never defined.
type UnknownLabelError struct {
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("assemble: unresolved label %q", e.Label)
}

// UnknownDirectiveError reports a data-segment directive this assembler
// does not recognise.
type UnknownDirectiveError struct {
	Line string
}

func (e *UnknownDirectiveError) Error() string {
	return fmt.Sprintf("assemble: unknown directive: %q", e.Line)
}

// UnknownMnemonicError reports a text-segment line whose mnemonic is not
// registered.
type UnknownMnemonicError struct {
	Mnemonic string
}

func (e *UnknownMnemonicError) Error() string {
	return fmt.Sprintf("assemble: unknown mnemonic %q", e.Mnemonic)
}

// BranchRangeError reports a resolved branch offset that does not fit a
// signed 16-bit immediate.
type BranchRangeError struct {
	Label  string
	Offset int
}

func (e *BranchRangeError) Error() string {
	return fmt.Sprintf("assemble: branch to %q has out-of-range offset %d", e.Label, e.Offset)
}
