// Package assemble implements the two-pass assembler: Pass 1 scans source
// text into an ordered Instruction Record list and a symbol table (writing
// data-segment directives to memory as it goes); Pass 2 resolves labels and
// emits encoded words to the text segment (spec §4.7).
package assemble

import (
	"mipspipe/mem"
	"mipspipe/registry"
)

// Assemble runs both passes of the given source against reg, writing the
// resulting program image directly into memory. Memory must already be
// sized (text/data) before calling Assemble, since Pass 1 writes data
// directives as it scans.
func Assemble(source string, reg *registry.Registry, memory *mem.Memory) error {
	res, err := scan(source, reg, memory)
	if err != nil {
		return err
	}
	return resolveAndEmit(res, memory)
}
