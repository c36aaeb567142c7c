//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package hexmul multiplies two arbitrary-precision hexadecimal
// numbers with a parallelized divide-and-conquer algorithm: both
// operands are split into high and low halves, the four cross
// products are computed by concurrently running recursive instances
// of the same algorithm, and the results are combined with positional
// shifts and carry-propagating addition. The algorithm is the naive
// O(n^2) one, parallelized; it performs four recursive
// multiplications per level, not three.
package hexmul

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/markkurossi/hexmul/engine"
	"github.com/markkurossi/hexmul/hexnum"
)

// Environment knobs.
const (
	// EnvMode selects how quadrant workers run: "exec" re-executes
	// the program as worker subprocesses; anything else runs the
	// workers as in-process goroutines.
	EnvMode = "HEXMUL_MODE"
	// EnvStats enables the execution report on the error stream.
	EnvStats = "HEXMUL_STATS"

	// ModeExec is the subprocess worker mode.
	ModeExec = "exec"
)

// Run reads two hexadecimal operands from in and writes their product
// to out as one newline-terminated lowercase line of twice the
// normalized operand width. Nothing is written to out unless the
// whole computation succeeds; diagnostics and the optional execution
// report go to errw.
func Run(in io.Reader, out, errw io.Writer) error {
	timing := engine.NewTiming()

	a, b, err := hexnum.ReadOperands(in)
	if err != nil {
		return err
	}
	a, b = hexnum.Normalize(a, b)
	timing.Sample("Read")

	eng, err := newEngine()
	if err != nil {
		return err
	}
	product, err := eng.Multiply(a, b)
	if err != nil {
		return err
	}
	timing.Sample("Multiply")

	if _, err := fmt.Fprintln(out, product); err != nil {
		return err
	}
	timing.Sample("Output")

	if os.Getenv(EnvStats) != "" {
		timing.Print(errw, eng.Stats())
	}
	return nil
}

func newEngine() (*engine.Engine, error) {
	if os.Getenv(EnvMode) != ModeExec {
		return engine.New(), nil
	}
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", engine.ErrSpawn, err)
	}
	return engine.NewExec(path, workerEnv()), nil
}

// workerEnv is the current environment without the report knob: only
// the top-level invocation reports.
func workerEnv() []string {
	var env []string
	for _, v := range os.Environ() {
		if !strings.HasPrefix(v, EnvStats+"=") {
			env = append(env, v)
		}
	}
	return env
}
