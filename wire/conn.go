//
// conn.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package wire implements the line-oriented request/response protocol
// between a multiplication step and its four quadrant workers. A
// request is two newline-terminated hexadecimal strings of equal
// length n, after which the outbound stream is closed; the response
// is one newline-terminated string of exactly 2n digits.
package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/markkurossi/hexmul/hexnum"
)

// ErrProtocol identifies a worker exchange violating the framing: a
// missing line, a non-hexadecimal byte, or a response of the wrong
// width.
var ErrProtocol = errors.New("protocol violation")

func protocolf(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrProtocol, fmt.Sprintf(format, a...))
}

// Conn implements one endpoint of a worker exchange. Each worker has
// its own dedicated stream pair; connections are not shared.
type Conn struct {
	rd    io.Reader
	in    *bufio.Reader
	out   io.Writer
	Stats IOStats
}

// IOStats implements I/O statistics.
type IOStats struct {
	Sent  *atomic.Uint64
	Recvd *atomic.Uint64
}

// NewIOStats creates a new I/O statistics object.
func NewIOStats() IOStats {
	return IOStats{
		Sent:  new(atomic.Uint64),
		Recvd: new(atomic.Uint64),
	}
}

// Add adds the argument stats into this IOStats.
func (stats IOStats) Add(o IOStats) {
	stats.Sent.Add(o.Sent.Load())
	stats.Recvd.Add(o.Recvd.Load())
}

// Sum returns sum of sent and received bytes.
func (stats IOStats) Sum() uint64 {
	return stats.Sent.Load() + stats.Recvd.Load()
}

// NewConn creates a connection endpoint reading from in and writing
// to out.
func NewConn(in io.Reader, out io.Writer) *Conn {
	return &Conn{
		rd:    in,
		in:    bufio.NewReader(in),
		out:   out,
		Stats: NewIOStats(),
	}
}

// CloseWrite closes the outbound stream, signaling end of input to
// the peer.
func (c *Conn) CloseWrite() error {
	closer, ok := c.out.(io.Closer)
	if ok {
		return closer.Close()
	}
	return nil
}

// Close closes both directions of the connection. Closing the
// inbound stream unblocks a peer that is still writing to it.
func (c *Conn) Close() error {
	err := c.CloseWrite()
	closer, ok := c.rd.(io.Closer)
	if ok {
		cerr := closer.Close()
		if err == nil {
			err = cerr
		}
	}
	return err
}

func (c *Conn) writeLine(n hexnum.Number) error {
	count, err := io.WriteString(c.out, n.String()+"\n")
	c.Stats.Sent.Add(uint64(count))
	return err
}

func (c *Conn) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	c.Stats.Recvd.Add(uint64(len(line)))
	if err != nil {
		return "", err
	}
	return line[:len(line)-1], nil
}

// SendRequest sends the operand pair of one multiplication step.
func (c *Conn) SendRequest(a, b hexnum.Number) error {
	if err := c.writeLine(a); err != nil {
		return err
	}
	return c.writeLine(b)
}

// ReceiveRequest receives an operand pair. The operands arrive
// already equal-length and power-of-two sized; a request that is not
// is a protocol violation by the invoker.
func (c *Conn) ReceiveRequest() (a, b hexnum.Number, err error) {
	line, err := c.readLine()
	if err != nil {
		return nil, nil, protocolf("missing first operand: %s", err)
	}
	a, err = hexnum.Parse(line)
	if err != nil {
		return nil, nil, err
	}
	line, err = c.readLine()
	if err != nil {
		return nil, nil, protocolf("missing second operand: %s", err)
	}
	b, err = hexnum.Parse(line)
	if err != nil {
		return nil, nil, err
	}
	if len(a) != len(b) {
		return nil, nil, protocolf("operand length mismatch: %d vs %d",
			len(a), len(b))
	}
	return a, b, nil
}

// SendProduct sends the product of one multiplication step.
func (c *Conn) SendProduct(p hexnum.Number) error {
	return c.writeLine(p)
}

// ReceiveProduct receives a product of exactly width digits.
func (c *Conn) ReceiveProduct(width int) (hexnum.Number, error) {
	line, err := c.readLine()
	if err != nil {
		return nil, protocolf("missing product: %s", err)
	}
	p, err := hexnum.Parse(line)
	if err != nil {
		return nil, protocolf("malformed product: %s", err)
	}
	if len(p) != width {
		return nil, protocolf("wrong product width: got %d, expected %d",
			len(p), width)
	}
	return p, nil
}
