package pipeline

import "fmt"

// FatalSegfaultError reports that Fetch's PC fell outside the text
// segment (spec §4.8 step 1, §7).
type FatalSegfaultError struct {
	PC uint32
}

func (e *FatalSegfaultError) Error() string {
	return fmt.Sprintf("FatalSegfault: PC 0x%08X is outside the text segment", e.PC)
}

// FatalAlignError reports a PC that is not a multiple of 4.
type FatalAlignError struct {
	PC uint32
}

func (e *FatalAlignError) Error() string {
	return fmt.Sprintf("FatalAlign: PC 0x%08X is not 4-byte aligned", e.PC)
}

// FatalIllegalInstructionError reports an opcode with no registered kind
// (spec §4.8 step 2: "unknown kind is fatal").
type FatalIllegalInstructionError struct {
	PC     uint32
	Opcode int
}

func (e *FatalIllegalInstructionError) Error() string {
	return fmt.Sprintf("FatalIllegalInstruction: opcode %d at PC 0x%08X has no registered kind", e.Opcode, e.PC)
}

// FatalMemoryFaultError wraps an out-of-range Memory access surfaced
// during the Memory stage (e.g. a load through a bad address).
type FatalMemoryFaultError struct {
	PC  uint32
	Err error
}

func (e *FatalMemoryFaultError) Error() string {
	return fmt.Sprintf("FatalMemoryFault: %s (instruction at PC 0x%08X)", e.Err, e.PC)
}

func (e *FatalMemoryFaultError) Unwrap() error {
	return e.Err
}
