//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/markkurossi/hexmul"
)

func main() {
	prog := filepath.Base(os.Args[0])

	if len(os.Args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s\n", prog)
		fmt.Fprintf(os.Stderr,
			"The program accepts no arguments; it reads the two operands from\nthe standard input, one per line.\n")
		os.Exit(1)
	}
	if err := hexmul.Run(os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", prog, err)
		os.Exit(1)
	}
}
