// Package pipeline implements the five-stage (Fetch/Decode/Execute/Memory/
// Write-Back) instruction pipeline described in spec §4.8: a PC, four
// buffer slots (IF/ID/EX/MEM; Write-Back reads the Memory slot produced
// in the same iteration rather than owning a fifth), and the counters
// the run loop reports on exit.
package pipeline

import (
	"fmt"

	"mipspipe/encode"
	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
	"mipspipe/registry"
)

// drainCycles is how many additional iterations the engine runs once the
// exit flag is observed, so that the exit-carrying instruction's own
// Execute and Memory/Write-Back stages still complete (spec §9: "the last
// three instructions issued may not complete write-back before the exit
// syscall takes effect"; with this engine's fixed four-cycle latency,
// exactly two more iterations close out the instruction that set the
// flag). See DESIGN.md for the derivation.
const drainCycles = 2

// CycleLimitError reports that the configured cycle budget was exhausted
// without the program reaching an exit syscall.
type CycleLimitError struct {
	Cycles uint64
}

func (e *CycleLimitError) Error() string {
	return fmt.Sprintf("pipeline: exceeded maximum cycle count (%d)", e.Cycles)
}

// Engine owns Memory, the register file and the PC for the duration of a
// run (spec §5: exclusive ownership).
type Engine struct {
	Regs      *regfile.RegisterFile
	Mem       *mem.Memory
	Registry  *registry.Registry
	PC        uint32
	MaxCycles uint64 // 0 disables the limit

	// Trace, if set, is called once per completed cycle with the PC of the
	// instruction that was in Decode this cycle, the mnemonic of the decode
	// buffer it produced (branches and syscalls appear as their NOP
	// rewrite), and the engine's running counters.
	// Used for --debug per-cycle logging; nil disables it.
	Trace func(fetchPC uint32, mnemonic string, cycles, instructions, nops uint64)

	Cycles       uint64
	Instructions uint64
	NOPs         uint64

	oldFetch   instr.FetchBuffer
	oldFetchPC uint32

	oldDecode   instr.DecodeBuffer
	oldDecodePC uint32

	oldExecute   instr.ExecuteBuffer
	oldExecutePC uint32

	oldMemory instr.MemoryBuffer

	exitObserved   bool
	drainRemaining int
}

// New creates an engine with PC initialised to the base of the text
// segment.
func New(regs *regfile.RegisterFile, memory *mem.Memory, reg *registry.Registry) *Engine {
	return &Engine{Regs: regs, Mem: memory, Registry: reg, PC: mem.Base}
}

// Run executes cycles until the exit syscall fires and the pipeline
// drains, or a fatal fault or cycle-budget error occurs.
func (e *Engine) Run() error {
	for {
		if e.exitObserved && e.drainRemaining == 0 {
			return nil
		}
		if err := e.cycle(); err != nil {
			return err
		}
		if e.MaxCycles > 0 && e.Cycles >= e.MaxCycles {
			return &CycleLimitError{Cycles: e.Cycles}
		}
	}
}

// cycle runs one full iteration. Stages are computed in the order
// Fetch, Memory, Execute, Decode, Write-Back rather than the spec's
// textual Fetch/Decode/Execute/Memory/Write-Back listing, so that the
// forwarding this engine applies at Decode (see forwardingReader) can see
// this same iteration's freshly computed Execute and Memory outputs; the
// old/new buffer semantics spec §4.8 describes are unchanged; only the
// within-iteration computation order differs from the prose.
func (e *Engine) cycle() error {
	newFetch, newFetchPC, err := e.runFetch()
	if err != nil {
		return err
	}

	newMemory, err := e.runMemory(e.oldExecute, e.oldExecutePC)
	if err != nil {
		return err
	}

	newExecute, err := e.runExecute(e.oldDecode, newMemory)
	if err != nil {
		return err
	}

	newDecode, exitJustSet, err := e.runDecode(e.oldFetch, e.oldFetchPC, newExecute, newMemory)
	if err != nil {
		return err
	}

	if newMemory.Rd >= 0 {
		e.Regs.Write(newMemory.Rd, newMemory.Output)
	}

	if isNOPDecode(newDecode) {
		e.NOPs++
	}

	e.oldExecute, e.oldExecutePC = newExecute, e.oldDecodePC
	e.oldDecode, e.oldDecodePC = newDecode, e.oldFetchPC
	e.oldFetch, e.oldFetchPC = newFetch, newFetchPC
	e.oldMemory = newMemory
	e.Cycles++

	if e.Trace != nil {
		e.Trace(e.oldDecodePC, e.Registry.MnemonicFor(newDecode.Opcode, newDecode.Funct), e.Cycles, e.Instructions, e.NOPs)
	}

	switch {
	case exitJustSet:
		e.exitObserved = true
		e.drainRemaining = drainCycles
	case e.exitObserved && e.drainRemaining > 0:
		e.drainRemaining--
	}
	return nil
}

// runFetch reads the word at PC, unless the exit flag is already observed
// (fetch feeds bubbles from that point on so the drain cycles see no
// further real instructions) — spec §4.8 step 1.
func (e *Engine) runFetch() (instr.FetchBuffer, uint32, error) {
	if e.exitObserved {
		return instr.FetchBuffer{}, 0, nil
	}
	pc := e.PC
	if pc < mem.Base || pc >= mem.Base+e.Mem.TextSize {
		return instr.FetchBuffer{}, 0, &FatalSegfaultError{PC: pc}
	}
	if pc%4 != 0 {
		return instr.FetchBuffer{}, 0, &FatalAlignError{PC: pc}
	}
	word, err := e.Mem.ReadWord(pc)
	if err != nil {
		return instr.FetchBuffer{}, 0, &FatalSegfaultError{PC: pc}
	}
	e.PC += 4
	e.Instructions++
	return instr.FetchBuffer{Word: word}, pc, nil
}

// runMemory calls on_memory against last cycle's Execute output
// (spec §4.8 step 4).
func (e *Engine) runMemory(execBuf instr.ExecuteBuffer, pc uint32) (instr.MemoryBuffer, error) {
	h, ok := e.Registry.LookupHandler(execBuf.Opcode, execBuf.Funct)
	if !ok {
		return instr.MemoryBuffer{}, &FatalIllegalInstructionError{PC: pc, Opcode: execBuf.Opcode}
	}
	out, err := h.OnMemory(execBuf, e.Mem)
	if err != nil {
		return instr.MemoryBuffer{}, &FatalMemoryFaultError{PC: pc, Err: err}
	}
	return instr.MemoryBuffer{Opcode: execBuf.Opcode, Funct: execBuf.Funct, Output: out, Rd: execBuf.Rd}, nil
}

// runExecute applies the Execute-stage forwarding rule of spec §4.8
// step 3 (old_execute, then new_memory as second priority) before
// calling on_execute.
func (e *Engine) runExecute(db instr.DecodeBuffer, newMemory instr.MemoryBuffer) (instr.ExecuteBuffer, error) {
	if db.Rs1 >= 0 {
		switch {
		case e.oldExecute.Rd == db.Rs1:
			db.Rs1Val = e.oldExecute.Output
		case newMemory.Rd == db.Rs1:
			db.Rs1Val = newMemory.Output
		}
	}
	if db.Rs2 >= 0 {
		switch {
		case e.oldExecute.Rd == db.Rs2:
			db.Rs2Val = e.oldExecute.Output
		case newMemory.Rd == db.Rs2:
			db.Rs2Val = newMemory.Output
		}
	}

	h, ok := e.Registry.LookupHandler(db.Opcode, db.Funct)
	if !ok {
		return instr.ExecuteBuffer{}, &FatalIllegalInstructionError{PC: e.oldDecodePC, Opcode: db.Opcode}
	}
	out := h.OnExecute(db)
	return instr.ExecuteBuffer{Opcode: db.Opcode, Funct: db.Funct, Output: out, Rd: db.Rd, RtVal: db.Rs2Val}, nil
}

// runDecode resolves the fetched word's kind, populates the decode
// buffer per spec §4.8 step 2, and invokes the handler's on_decode.
//
// Register reads here — both the generic rs1/rs2 population and any
// handler-internal read of a fixed register (a branch's second operand,
// a syscall's $v0) — go through forwardingReader, sourced from this same
// iteration's just-computed Execute and Memory outputs. The spec's prose
// only describes forwarding at Execute; extending it one stage earlier is
// necessary for the zero-gap producer/consumer pairs in the spec's own
// end-to-end scenarios (e.g. `li $v0,10` immediately followed by
// `syscall`) to observe the producer's value at all, since under this
// engine's fixed four-cycle latency the producer's Write-Back would
// otherwise still be a cycle away. See DESIGN.md.
func (e *Engine) runDecode(fetch instr.FetchBuffer, fetchPC uint32, newExecute instr.ExecuteBuffer, newMemory instr.MemoryBuffer) (instr.DecodeBuffer, bool, error) {
	opcode := int(fetch.Word & 0x3F)
	kind := e.Registry.KindOfOpcode(opcode)
	if kind == instr.Unknown {
		return instr.DecodeBuffer{}, false, &FatalIllegalInstructionError{PC: fetchPC, Opcode: opcode}
	}

	rec, err := encode.Decode(fetch.Word, kind)
	if err != nil {
		return instr.DecodeBuffer{}, false, &FatalIllegalInstructionError{PC: fetchPC, Opcode: opcode}
	}

	var db instr.DecodeBuffer
	switch kind {
	case instr.R:
		db = instr.DecodeBuffer{Opcode: rec.Opcode, Funct: rec.Funct, Imm: rec.Shamt, Rd: rec.Rd, Rs1: rec.Rs, Rs2: rec.Rt}
	case instr.I:
		db = instr.DecodeBuffer{Opcode: rec.Opcode, Imm: rec.Imm, Rd: rec.Rt, Rs1: rec.Rs, Rs2: instr.NoReg}
	case instr.J:
		db = instr.DecodeBuffer{Opcode: rec.Opcode, Imm: rec.Addr, Rd: instr.NoReg, Rs1: instr.NoReg, Rs2: instr.NoReg}
	}

	fwd := forwardingReader{regs: e.Regs, primaryRd: newExecute.Rd, primaryVal: newExecute.Output, secondaryRd: newMemory.Rd, secondaryVal: newMemory.Output}
	if db.Rs1 >= 0 {
		db.Rs1Val = fwd.Read(db.Rs1)
	}
	if db.Rs2 >= 0 {
		db.Rs2Val = fwd.Read(db.Rs2)
	}

	h, ok := e.Registry.LookupHandler(db.Opcode, db.Funct)
	if !ok {
		return instr.DecodeBuffer{}, false, &FatalIllegalInstructionError{PC: fetchPC, Opcode: db.Opcode}
	}
	// Fetch already ran this iteration, so e.PC is one word past the
	// instruction after this one. Branch offsets are relative to the
	// instruction after the branch, so the handler gets fetchPC+4; a
	// changed value redirects the next fetch. The instruction fetched this
	// iteration (at fetchPC+4) still proceeds down the pipeline.
	nextPC := fetchPC + 4
	nb, err := h.OnDecode(db, fwd, e.Mem, &nextPC)
	if err != nil {
		return instr.DecodeBuffer{}, false, err
	}
	if nextPC != fetchPC+4 {
		e.PC = nextPC
	}
	return nb, nb.Exit, nil
}

// forwardingReader answers a register read with a pending (not yet
// committed) write if one matches, falling back to the architectural
// file. primary takes priority over secondary, mirroring the two-
// priority rule spec §4.8 step 3 describes for Execute.
type forwardingReader struct {
	regs        regfile.Reader
	primaryRd   int
	primaryVal  uint32
	secondaryRd int
	secondaryVal uint32
}

func (f forwardingReader) Read(n int) uint32 {
	if n <= 0 {
		return 0
	}
	switch n {
	case f.primaryRd:
		return f.primaryVal
	case f.secondaryRd:
		return f.secondaryVal
	default:
		return f.regs.Read(n)
	}
}

func isNOPDecode(db instr.DecodeBuffer) bool {
	return db.Opcode == 0 && db.Funct == 0 && db.Rd == 0 && db.Rs1 == 0 && db.Rs2 == 0
}
