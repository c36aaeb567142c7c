//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package wire

import (
	"io"
)

// Pipe implements an in-process worker stream pair. Anything sent to
// the first endpoint can be received from the second and vice versa;
// closing an endpoint for writing delivers end of input to its peer.
// The byte-level framing is identical to a cross-process exchange.
func Pipe() (*Conn, *Conn) {
	r0, w0 := io.Pipe()
	r1, w1 := io.Pipe()

	return NewConn(r0, w1), NewConn(r1, w0)
}
