package assemble

import (
	"strings"

	"mipspipe/asmparse"
	"mipspipe/instr"
	"mipspipe/mem"
	"mipspipe/registry"
)

type segment int

const (
	segNone segment = iota
	segText
	segData
)

// scanResult is the output of Pass 1: the ordered Instruction Record list
// (text segment only) and the resolved symbol table.
type scanResult struct {
	records []instr.Record
	symbols map[string]uint32
}

// scan performs assembler Pass 1 (spec §4.7): segment tracking, label
// recording against the running per-segment cursor, text-line dispatch
// through the registry, and direct data-directive writes to memory.
func scan(source string, reg *registry.Registry, memory *mem.Memory) (*scanResult, error) {
	res := &scanResult{symbols: make(map[string]uint32)}
	seg := segNone
	textCursor := mem.Base
	dataCursor := mem.Base + memory.TextSize

	for _, raw := range strings.Split(source, "\n") {
		line := stripComment(strings.ToLower(strings.TrimSpace(raw)))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		first := firstToken(line)
		switch first {
		case ".text":
			seg = segText
			continue
		case ".data":
			seg = segData
			continue
		}

		if strings.HasSuffix(first, ":") {
			name := strings.TrimSuffix(first, ":")
			if _, exists := res.symbols[name]; exists {
				return nil, &DuplicateLabelError{Label: name}
			}
			addr := textCursor
			if seg == segData {
				addr = dataCursor
			}
			res.symbols[name] = addr
			rest := strings.TrimSpace(line[len(first):])
			if rest == "" {
				continue
			}
			line = rest
			first = firstToken(line)
		}

		switch seg {
		case segText:
			parser, ok := reg.LookupParser(first)
			if !ok {
				return nil, &UnknownMnemonicError{Mnemonic: first}
			}
			recs, err := parser(line)
			if err != nil {
				return nil, err
			}
			res.records = append(res.records, recs...)
			textCursor += 4 * uint32(len(recs))
		case segData:
			advance, err := applyDataDirective(line, memory, dataCursor)
			if err != nil {
				return nil, err
			}
			dataCursor += advance
		case segNone:
			// Lines before the first .text/.data switch are inert, matching
			// the reference reader's behaviour of ignoring unsectioned input.
		}
	}

	return res, nil
}

// stripComment drops a '#' comment running to the end of line, ignoring
// any '#' inside a double-quoted string, and trims what is left.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return strings.TrimSpace(line[:i])
			}
		}
	}
	return line
}

func firstToken(line string) string {
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line
	}
	return line[:idx]
}

func splitDirective(line string) (directive, operand string) {
	directive = firstToken(line)
	operand = strings.TrimSpace(line[len(directive):])
	return directive, operand
}

func parseQuotedString(directive, operand string) (string, error) {
	first := strings.IndexByte(operand, '"')
	last := strings.LastIndexByte(operand, '"')
	if first < 0 || last <= first {
		return "", &registry.SyntaxError{Line: directive + " " + operand, Message: "malformed .ascii operand"}
	}
	return operand[first+1 : last], nil
}

// applyDataDirective writes one data-segment directive's bytes to memory at
// cursor and returns the number of bytes the data cursor should advance by
// (spec §4.7: 1 for .byte, N for .space, 4 for .word, len+1 for .ascii).
func applyDataDirective(line string, memory *mem.Memory, cursor uint32) (uint32, error) {
	directive, operand := splitDirective(line)
	switch directive {
	case ".ascii":
		s, err := parseQuotedString(directive, operand)
		if err != nil {
			return 0, err
		}
		if err := memory.WriteString(cursor, s); err != nil {
			return 0, err
		}
		return uint32(len(s)) + 1, nil
	case ".byte":
		n, err := asmparse.ParseNumber(operand)
		if err != nil {
			return 0, &registry.SyntaxError{Line: line, Message: err.Error()}
		}
		if err := memory.WriteByte(cursor, byte(n)); err != nil {
			return 0, err
		}
		return 1, nil
	case ".space":
		n, err := asmparse.ParseNumber(operand)
		if err != nil {
			return 0, &registry.SyntaxError{Line: line, Message: err.Error()}
		}
		if n < 0 {
			return 0, &registry.SyntaxError{Line: line, Message: ".space count must not be negative"}
		}
		for i := int64(0); i < n; i++ {
			if err := memory.WriteByte(cursor+uint32(i), 0); err != nil {
				return 0, err
			}
		}
		return uint32(n), nil
	case ".word":
		n, err := asmparse.ParseNumber(operand)
		if err != nil {
			return 0, &registry.SyntaxError{Line: line, Message: err.Error()}
		}
		if err := memory.WriteWord(cursor, uint32(n)); err != nil {
			return 0, err
		}
		return 4, nil
	default:
		return 0, &UnknownDirectiveError{Line: line}
	}
}
