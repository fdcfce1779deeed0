// Package registry implements the instruction-set registry: lookup by
// mnemonic (for parsing) and by (opcode, funct) (for pipeline dispatch),
// plus the opcode/mnemonic -> Kind mapping (spec §4.4).
package registry

import (
	"fmt"
	"strings"

	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/regfile"
)

// ParseFunc tokenises one already-trimmed source line (mnemonic and
// operands only — directives and comments have been stripped) into an
// ordered sequence of instr.Record values, or returns a *SyntaxError.
type ParseFunc func(line string) ([]instr.Record, error)

// Handler implements the three per-cycle operations of spec §4.6. Each
// method is pure with respect to its own stage: OnDecode returns the
// (possibly NOP-rewritten) decode buffer to install rather than mutating
// one in place, preserving single-writer discipline between stages
// (spec §9 design notes).
type Handler interface {
	// OnDecode runs at the end of Instruction Decode. pc holds the address
	// of the instruction after this one (branch offsets are relative to
	// it); a branch handler that changes it redirects the next fetch.
	OnDecode(db instr.DecodeBuffer, regs regfile.Reader, memory *mem.Memory, pc *uint32) (instr.DecodeBuffer, error)
	// OnExecute computes the ALU/address output from the (already
	// forwarded) decode buffer.
	OnExecute(db instr.DecodeBuffer) uint32
	// OnMemory produces the value handed to Write-Back.
	OnMemory(eb instr.ExecuteBuffer, memory *mem.Memory) (uint32, error)
}

// SyntaxError carries the offending source line (spec §4.5, §7).
type SyntaxError struct {
	Line    string
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s: %q", e.Message, e.Line)
}

// Metadata is one registry entry: spec §4.4's registration contract.
type Metadata struct {
	Mnemonic string
	Kind     instr.Kind
	Opcode   int
	Funct    int
	Parser   ParseFunc
	Handler  Handler
}

func id(opcode, funct int) int {
	return (funct << 6) | opcode
}

// Registry owns a single slice of Metadata; the mnemonic and (opcode,
// funct) maps hold indices into it rather than separate copies, avoiding
// the reference-cycle-prone "metadata reachable from two maps" shape of
// the source material (spec §9 design notes).
type Registry struct {
	entries     []*Metadata
	byMnemonic  map[string]int
	byID        map[int]int // (funct<<6)|opcode -> entry index, real instructions only
	opcodeKind  map[int]instr.Kind
	opcodeOwned map[int]bool // true once an opcode has been assigned to a kind
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byMnemonic:  make(map[string]int),
		byID:        make(map[int]int),
		opcodeKind:  make(map[int]instr.Kind),
		opcodeOwned: make(map[int]bool),
	}
}

func normalizeMnemonic(mnemonic string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(mnemonic))
	if trimmed == "" {
		return "", fmt.Errorf("registry: mnemonic must not be empty")
	}
	if trimmed != strings.ToLower(mnemonic) || strings.ContainsAny(trimmed, " \t") {
		return "", fmt.Errorf("registry: mnemonic %q must not contain whitespace", mnemonic)
	}
	return trimmed, nil
}

func (r *Registry) claimOpcode(opcode int, kind instr.Kind) error {
	if opcode < 0 || opcode > 63 {
		return fmt.Errorf("registry: opcode %d out of range 0..63", opcode)
	}
	if owned, exists := r.opcodeOwned[opcode]; exists && owned {
		if r.opcodeKind[opcode] != kind {
			return fmt.Errorf("registry: opcode %d already assigned to kind %s", opcode, r.opcodeKind[opcode])
		}
		return nil
	}
	r.opcodeOwned[opcode] = true
	r.opcodeKind[opcode] = kind
	return nil
}

func (r *Registry) register(mnemonic string, kind instr.Kind, opcode, funct int, parser ParseFunc, handler Handler) error {
	name, err := normalizeMnemonic(mnemonic)
	if err != nil {
		return err
	}
	if _, exists := r.byMnemonic[name]; exists {
		return fmt.Errorf("registry: mnemonic %q already registered", name)
	}
	if parser == nil {
		return fmt.Errorf("registry: mnemonic %q has a nil parser", name)
	}
	if kind != instr.Pseudo && handler == nil {
		return fmt.Errorf("registry: mnemonic %q has a nil handler", name)
	}
	if kind != instr.Pseudo {
		if funct < 0 || funct > 63 {
			return fmt.Errorf("registry: funct %d out of range 0..63", funct)
		}
		if err := r.claimOpcode(opcode, kind); err != nil {
			return err
		}
		key := id(opcode, funct)
		if kind != instr.R {
			key = id(opcode, 0)
		}
		if _, exists := r.byID[key]; exists {
			return fmt.Errorf("registry: (opcode %d, funct %d) already registered", opcode, funct)
		}
		meta := &Metadata{Mnemonic: name, Kind: kind, Opcode: opcode, Funct: funct, Parser: parser, Handler: handler}
		r.entries = append(r.entries, meta)
		idx := len(r.entries) - 1
		r.byMnemonic[name] = idx
		r.byID[key] = idx
		return nil
	}

	meta := &Metadata{Mnemonic: name, Kind: instr.Pseudo, Parser: parser}
	r.entries = append(r.entries, meta)
	idx := len(r.entries) - 1
	r.byMnemonic[name] = idx
	return nil
}

// RegisterR registers a real R-form mnemonic.
func (r *Registry) RegisterR(mnemonic string, opcode, funct int, parser ParseFunc, handler Handler) error {
	return r.register(mnemonic, instr.R, opcode, funct, parser, handler)
}

// RegisterI registers a real I-form mnemonic.
func (r *Registry) RegisterI(mnemonic string, opcode int, parser ParseFunc, handler Handler) error {
	return r.register(mnemonic, instr.I, opcode, 0, parser, handler)
}

// RegisterJ registers a real J-form mnemonic.
func (r *Registry) RegisterJ(mnemonic string, opcode int, parser ParseFunc, handler Handler) error {
	return r.register(mnemonic, instr.J, opcode, 0, parser, handler)
}

// RegisterPseudo registers a pseudo-instruction; it has no opcode/funct
// and no handler, only a parser that expands it into real records.
func (r *Registry) RegisterPseudo(mnemonic string, parser ParseFunc) error {
	return r.register(mnemonic, instr.Pseudo, 0, 0, parser, nil)
}

// LookupParser returns the parser registered for mnemonic, if any.
func (r *Registry) LookupParser(mnemonic string) (ParseFunc, bool) {
	idx, ok := r.byMnemonic[strings.ToLower(strings.TrimSpace(mnemonic))]
	if !ok {
		return nil, false
	}
	return r.entries[idx].Parser, true
}

// LookupHandler returns the handler registered for (opcode, funct). For
// non-R opcodes funct is ignored (treated as 0), matching registration.
func (r *Registry) LookupHandler(opcode, funct int) (Handler, bool) {
	kind, ok := r.opcodeKind[opcode]
	if !ok {
		return nil, false
	}
	key := id(opcode, funct)
	if kind != instr.R {
		key = id(opcode, 0)
	}
	idx, ok := r.byID[key]
	if !ok {
		return nil, false
	}
	return r.entries[idx].Handler, true
}

// KindOfOpcode returns the kind assigned to opcode, or instr.Unknown if
// none has been.
func (r *Registry) KindOfOpcode(opcode int) instr.Kind {
	if kind, ok := r.opcodeKind[opcode]; ok {
		return kind
	}
	return instr.Unknown
}

// KindOfMnemonic returns the kind registered for mnemonic, or
// instr.Unknown if it is not registered.
func (r *Registry) KindOfMnemonic(mnemonic string) instr.Kind {
	idx, ok := r.byMnemonic[strings.ToLower(strings.TrimSpace(mnemonic))]
	if !ok {
		return instr.Unknown
	}
	return r.entries[idx].Kind
}

// MnemonicFor returns the mnemonic registered for (opcode, funct), or
// "???" if none is. Used for trace logging only.
func (r *Registry) MnemonicFor(opcode, funct int) string {
	kind, ok := r.opcodeKind[opcode]
	if !ok {
		return "???"
	}
	key := id(opcode, funct)
	if kind != instr.R {
		key = id(opcode, 0)
	}
	idx, ok := r.byID[key]
	if !ok {
		return "???"
	}
	return r.entries[idx].Mnemonic
}
