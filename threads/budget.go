package threads

import (
	"fmt"
	"math"
)

// Base is the bottom of every BudgetStack: one loop iteration per frame-slice.
const Base = 1

// Unbounded is pushed by a batch scope without an explicit budget. It is large
// enough that no bounded loop inside exhausts it within one frame-slice.
const Unbounded = math.MaxInt32

// BudgetStack controls how many loop iterations a resumed loop may run before
// the Thread suspends. It is never empty and its base cannot be popped.
type BudgetStack struct {
	values []int
}

func NewBudgetStack() *BudgetStack {
	return &BudgetStack{
		values: []int{Base},
	}
}

func (s *BudgetStack) Push(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidBudget, n)
	}
	s.values = append(s.values, n)
	return nil
}

// PushValue pushes a dynamically typed budget, as handed over by a script.
func (s *BudgetStack) PushValue(v any) error {
	n, err := BudgetOf(v)
	if err != nil {
		return err
	}
	return s.Push(n)
}

func (s *BudgetStack) Pop() error {
	if len(s.values) <= 1 {
		return ErrPopBase
	}
	s.values = s.values[:len(s.values)-1]
	return nil
}

func (s *BudgetStack) Current() int {
	return s.values[len(s.values)-1]
}

func (s *BudgetStack) Depth() int {
	return len(s.values)
}

func (s *BudgetStack) Reset() {
	s.values = s.values[:1]
}

func (s *BudgetStack) truncate(depth int) {
	if depth < 1 {
		depth = 1
	}
	if len(s.values) > depth {
		s.values = s.values[:depth]
	}
}

// BudgetOf converts a script value to a budget. Only positive integers are
// accepted.
func BudgetOf(v any) (int, error) {
	var n int64
	switch v := v.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		if uint64(v) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d out of range", ErrInvalidBudget, v)
		}
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, fmt.Errorf("%w: %d out of range", ErrInvalidBudget, v)
		}
		n = int64(v)
	default:
		return 0, fmt.Errorf("%w: got %T", ErrInvalidBudget, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBudget, n)
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return int(n), nil
}
