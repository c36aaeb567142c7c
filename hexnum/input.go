//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package hexnum

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadOperands reads the two operand lines from r. Each line must be
// a non-empty hexadecimal string with a single trailing line
// terminator; the last line may be unterminated at end of input.
func ReadOperands(r io.Reader) (a, b Number, err error) {
	in := bufio.NewReader(r)

	line, err := readLine(in)
	if err != nil {
		return nil, nil, inputf("reading first operand: %s", err)
	}
	a, err = Parse(line)
	if err != nil {
		return nil, nil, fmt.Errorf("first operand: %w", err)
	}

	line, err = readLine(in)
	if err != nil {
		return nil, nil, inputf("reading second operand: %s", err)
	}
	b, err = Parse(line)
	if err != nil {
		return nil, nil, fmt.Errorf("second operand: %w", err)
	}

	return a, b, nil
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || len(line) == 0) {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}
