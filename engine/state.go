//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package engine

import (
	"fmt"
)

// State is the execution state of one multiplication step. Done and
// Failed are terminal and mutually exclusive; Failed is reachable
// from every non-terminal state.
type State int

// Multiplication step states.
const (
	Start State = iota
	BaseCase
	Splitting
	Dispatching
	AwaitingAll
	Combining
	Done
	Failed
)

var stateNames = map[State]string{
	Start:       "Start",
	BaseCase:    "BaseCase",
	Splitting:   "Splitting",
	Dispatching: "Dispatching",
	AwaitingAll: "AwaitingAll",
	Combining:   "Combining",
	Done:        "Done",
	Failed:      "Failed",
}

func (s State) String() string {
	name, ok := stateNames[s]
	if ok {
		return name
	}
	return fmt.Sprintf("{State %d}", s)
}

// Terminal reports whether the state is terminal.
func (s State) Terminal() bool {
	return s == Done || s == Failed
}

// advance moves to the state next, enforcing the legal transitions of
// a multiplication step.
func (s State) advance(next State) State {
	if !s.canAdvance(next) {
		panic(fmt.Sprintf("illegal state transition %s -> %s", s, next))
	}
	return next
}

func (s State) canAdvance(next State) bool {
	if next == Failed {
		return !s.Terminal()
	}
	switch s {
	case Start:
		return next == BaseCase || next == Splitting
	case BaseCase, Combining:
		return next == Done
	case Splitting:
		return next == Dispatching
	case Dispatching:
		return next == AwaitingAll
	case AwaitingAll:
		return next == Combining
	default:
		return false
	}
}
