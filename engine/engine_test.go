//
// engine_test.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package engine

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/markkurossi/hexmul/hexnum"
)

func parse(t *testing.T, s string) hexnum.Number {
	n, err := hexnum.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %s", s, err)
	}
	return n
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		a, b     string
		expected string
	}{
		{"f", "f", "e1"},
		{"0", "0", "00"},
		{"1a", "ab", "115e"},
		{"03", "12", "0036"},
		{"ffff", "ffff", "fffe0001"},
		{"0001", "0001", "00000001"},
		{"1234", "5678", "06260060"},
	}
	for _, test := range tests {
		product, err := New().Multiply(parse(t, test.a), parse(t, test.b))
		if err != nil {
			t.Errorf("Multiply(%q, %q) failed: %s", test.a, test.b, err)
			continue
		}
		if product.String() != test.expected {
			t.Errorf("Multiply(%q, %q) = %q, expected %q",
				test.a, test.b, product, test.expected)
		}
	}
}

func TestMultiplyRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, n := range []int{1, 2, 4, 8, 16, 32} {
		for round := 0; round < 5; round++ {
			var sb strings.Builder
			for i := 0; i < 2*n; i++ {
				fmt.Fprintf(&sb, "%x", rng.Intn(16))
			}
			a := parse(t, sb.String()[:n])
			b := parse(t, sb.String()[n:])

			product, err := New().Multiply(a, b)
			if err != nil {
				t.Fatalf("Multiply(%q, %q) failed: %s", a, b, err)
			}

			x, _ := new(big.Int).SetString(a.String(), 16)
			y, _ := new(big.Int).SetString(b.String(), 16)
			expected := fmt.Sprintf("%0*x", 2*n, x.Mul(x, y))
			if product.String() != expected {
				t.Errorf("Multiply(%q, %q) = %q, expected %q",
					a, b, product, expected)
			}
		}
	}
}

func TestMultiplyNotNormalized(t *testing.T) {
	tests := [][2]string{
		{"1a", "abc"},  // unequal lengths
		{"abc", "abc"}, // not a power of two
	}
	for _, test := range tests {
		_, err := New().Multiply(parse(t, test[0]), parse(t, test[1]))
		if err == nil {
			t.Errorf("Multiply(%q, %q) succeeded, expected error",
				test[0], test[1])
		}
	}
}

// The recursion tree has fan-out 4 and depth log2(n): (4^k-1)/3
// dispatching tasks and n^2 leaf multiplications for n = 2^k.
func TestAccounting(t *testing.T) {
	for k := 0; k <= 4; k++ {
		n := 1 << k
		operand := parse(t, strings.Repeat("f", n))

		eng := New()
		product, err := eng.Multiply(operand, operand)
		if err != nil {
			t.Fatalf("Multiply failed for n=%d: %s", n, err)
		}
		if len(product) != 2*n {
			t.Errorf("n=%d: product width %d, expected %d",
				n, len(product), 2*n)
		}

		tasks := eng.Stats().Tasks.Load()
		expectedTasks := uint64(pow4(k)-1) / 3
		if tasks != expectedTasks {
			t.Errorf("n=%d: %d tasks, expected %d", n, tasks, expectedTasks)
		}
		leafs := eng.Stats().LeafMuls.Load()
		if leafs != uint64(n*n) {
			t.Errorf("n=%d: %d leaf muls, expected %d", n, leafs, n*n)
		}
	}
}

func pow4(k int) int {
	result := 1
	for i := 0; i < k; i++ {
		result *= 4
	}
	return result
}

// failSpawner fails the quadrant index at operand width and delegates
// everything else.
type failSpawner struct {
	inner Spawner
	index int
	width int
	err   error
}

func (s *failSpawner) Spawn(index int, a, b hexnum.Number,
	results chan<- Result) {

	if index == s.index && len(a) == s.width {
		go func() {
			results <- Result{
				Index: index,
				Err:   s.err,
			}
		}()
		return
	}
	s.inner.Spawn(index, a, b, results)
}

func newFailEngine(index, width int, err error) *Engine {
	eng := &Engine{
		stats: NewStats(),
	}
	eng.spawner = &failSpawner{
		inner: &GoSpawner{eng: eng},
		index: index,
		width: width,
		err:   err,
	}
	return eng
}

func TestFailurePropagation(t *testing.T) {
	spawnErr := fmt.Errorf("%w: out of processes", ErrSpawn)

	for index := 0; index < 4; index++ {
		eng := newFailEngine(index, 1, spawnErr)
		_, err := eng.Multiply(parse(t, "1a"), parse(t, "ab"))
		if err == nil {
			t.Fatalf("Multiply succeeded with failing quadrant %d", index)
		}
		if !errors.Is(err, ErrSpawn) {
			t.Errorf("quadrant %d: error %q is not ErrSpawn", index, err)
		}

		// The three healthy siblings were drained to completion.
		if leafs := eng.Stats().LeafMuls.Load(); leafs != 3 {
			t.Errorf("quadrant %d: %d leaf muls, expected 3", index, leafs)
		}
		if tasks := eng.Stats().Tasks.Load(); tasks != 1 {
			t.Errorf("quadrant %d: %d tasks, expected 1", index, tasks)
		}
	}
}

func TestFailurePropagationDeep(t *testing.T) {
	eng := newFailEngine(2, 1, fmt.Errorf("%w: out of processes", ErrSpawn))
	_, err := eng.Multiply(parse(t, "12ab"), parse(t, "34cd"))
	if err == nil {
		t.Fatal("Multiply succeeded with failing leaf quadrants")
	}
	// The failure happened one level down, so it surfaces as the
	// worker's failure.
	if !errors.Is(err, ErrChildFailure) {
		t.Errorf("error %q is not ErrChildFailure", err)
	}

	// All four width-2 subtasks dispatched, each drained its three
	// healthy leaf workers.
	if tasks := eng.Stats().Tasks.Load(); tasks != 5 {
		t.Errorf("%d tasks, expected 5", tasks)
	}
	if leafs := eng.Stats().LeafMuls.Load(); leafs != 12 {
		t.Errorf("%d leaf muls, expected 12", leafs)
	}
}
