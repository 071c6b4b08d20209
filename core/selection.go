package core

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Selection tracks which selectable body the host UI is pointing at.
// It is written from UI goroutines and read by the render loop.
type Selection struct {
	n       int32
	current atomic.Int32
}

// NewSelection creates a cyclic selection over n entries starting at initial
func NewSelection(n, initial int) (*Selection, error) {
	if n < 1 {
		return nil, fmt.Errorf("selection needs at least one entry, got %d", n)
	}
	if initial < 0 || initial >= n {
		return nil, fmt.Errorf("%w: initial %d of %d", ErrIndexOutOfRange, initial, n)
	}
	s := &Selection{n: int32(n)}
	s.current.Store(int32(initial))
	return s, nil
}

// Len is the number of entries in the cycle
func (s *Selection) Len() int {
	return int(s.n)
}

// Current returns the selected index
func (s *Selection) Current() int {
	return int(s.current.Load())
}

// SelectNext moves forward, wrapping N-1 -> 0, and returns the new index
func (s *Selection) SelectNext() int {
	return s.shift(1)
}

// SelectPrevious moves back, wrapping 0 -> N-1, and returns the new index
func (s *Selection) SelectPrevious() int {
	return s.shift(-1)
}

// Set jumps straight to index i
func (s *Selection) Set(i int) (int, error) {
	if i < 0 || i >= int(s.n) {
		return s.Current(), fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, s.n)
	}
	s.current.Store(int32(i))
	return i, nil
}

func (s *Selection) shift(delta int32) int {
	for {
		cur := s.current.Load()
		next := ((cur+delta)%s.n + s.n) % s.n
		if s.current.CompareAndSwap(cur, next) {
			return int(next)
		}
	}
}
