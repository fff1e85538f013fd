// Package inspect navigates and formats the contents of a DBC document for
// the command line tools.
package inspect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath     = errors.New("empty path")
	ErrInvalidPath   = errors.New("invalid path format")
	ErrInvalidNumber = errors.New("invalid number")
)

// Path addresses a message and optionally one of its signals.
//
// Format: <message>[/<signal>]
//
// The message is a decimal or 0x-prefixed identifier, or a message name.
// Examples:
//
//	100
//	0x64/EngineSpeed
//	EngineData/EngineSpeed
type Path struct {
	// Raw is the original input.
	Raw string

	// Message is the message token as written.
	Message string

	// ID is the parsed identifier; valid only when HasID is set.
	ID    uint32
	HasID bool

	// Signal is the signal name, empty for a message path.
	Signal string
}

// ParsePath parses a path string.
func ParsePath(input string) (*Path, error) {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "/")
	if input == "" {
		return nil, ErrEmptyPath
	}

	parts := strings.Split(input, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, input)
	}
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, input)
		}
	}

	p := &Path{Raw: input, Message: parts[0]}
	if isNumeric(parts[0]) {
		id, err := parseUint32(parts[0])
		if err != nil {
			return nil, fmt.Errorf("message: %w: %s", ErrInvalidNumber, parts[0])
		}
		p.ID = id
		p.HasID = true
	}
	if len(parts) == 2 {
		p.Signal = parts[1]
	}
	return p, nil
}

// IsSignal reports whether the path names a signal.
func (p *Path) IsSignal() bool {
	return p.Signal != ""
}

// String returns the path in canonical form. Identifiers render in decimal.
func (p *Path) String() string {
	var sb strings.Builder
	if p.HasID {
		sb.WriteString(strconv.FormatUint(uint64(p.ID), 10))
	} else {
		sb.WriteString(p.Message)
	}
	if p.Signal != "" {
		sb.WriteString("/")
		sb.WriteString(p.Signal)
	}
	return sb.String()
}

// isNumeric reports whether s starts like a number. DBC identifiers cannot
// start with a digit, so such tokens never name a message.
func isNumeric(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// parseUint32 parses a uint32 from decimal or hex string.
func parseUint32(s string) (uint32, error) {
	var v uint64
	var err error

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, err = strconv.ParseUint(s[2:], 16, 32)
	} else {
		v, err = strconv.ParseUint(s, 10, 32)
	}
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
