//
// exec.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package engine

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/hexmul/hexnum"
	"github.com/markkurossi/hexmul/wire"
)

// ExecSpawner runs quadrant workers as subprocesses re-executing the
// program itself. The request goes to the worker's stdin and the
// response comes from its stdout, so a worker is indistinguishable
// from a fresh top-level run and the exchange is wire compatible
// with the fork/exec implementation of the same algorithm.
type ExecSpawner struct {
	// Path is the executable to run for each worker.
	Path string
	// Env is the worker environment; nil inherits the invoker's.
	Env []string

	stats *Stats
}

// Spawn implements Spawner.
func (s *ExecSpawner) Spawn(index int, a, b hexnum.Number,
	results chan<- Result) {

	go func() {
		product, err := s.run(a, b)
		results <- Result{
			Index:   index,
			Product: product,
			Err:     err,
		}
	}()
}

func (s *ExecSpawner) run(a, b hexnum.Number) (hexnum.Number, error) {
	cmd := exec.Command(s.Path)
	cmd.Env = s.Env
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSpawn, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSpawn, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSpawn, err)
	}
	conn := wire.NewConn(stdout, stdin)
	if s.stats != nil {
		defer s.stats.IO.Add(conn.Stats)
	}

	var product hexnum.Number

	g := new(errgroup.Group)
	g.Go(func() error {
		if err := conn.SendRequest(a, b); err != nil {
			return err
		}
		return conn.CloseWrite()
	})
	g.Go(func() error {
		p, err := conn.ReceiveProduct(2 * len(a))
		product = p
		return err
	})
	xfer := g.Wait()

	// The worker's own exit status wins over the transfer error its
	// failure caused.
	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrChildFailure, err)
	}
	if xfer != nil {
		return nil, xfer
	}
	return product, nil
}
