package configs

import (
	"errors"
	"iter"
)

// First decodes the first value at path, or returns the zero value when no
// source sets it. Invalid configuration panics.
func First[T any](loader Loader, path string) T {
	var value T
	if err := loader.AssignFirst(path, &value); err != nil {
		if errors.Is(err, ErrValueNotFound) {
			return value
		}
		panic(err)
	}
	return value
}

// All decodes every value at path, in source order.
func All[T any](loader Loader, path string) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for value, err := range loader.IterCueValues(path) {
			var v T
			if err == nil {
				err = value.Decode(&v)
			}
			if !yield(v, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
