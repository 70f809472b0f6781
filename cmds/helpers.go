package cmds

import (
	"fmt"
	"slices"
	"strings"
)

// Var defines name to set the value from the next argument, and name+"." to
// reset it to zero.
func Var[T any](name string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(fmt.Sprintf("set %s (%T)", flagName(name), value)))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}).Desc("reset "+flagName(name)))
	return &value
}

// Switch defines name to turn the value on and "!"+name to turn it off.
func Switch(name string) *bool {
	var value bool
	Define(name, Func(func() {
		value = true
	}).Desc("enable "+flagName(name)))
	Define("!"+name, Func(func() {
		value = false
	}).Desc("disable "+flagName(name)))
	return &value
}

// Collect defines name to append the next argument to the values.
func Collect[T any](name string) *[]T {
	var values []T
	Define(name, Func(func(v T) {
		values = append(values, v)
	}).Desc("add to "+flagName(name)))
	return &values
}

// Enum is a string Var that only accepts one of choices.
func Enum(name string, choices ...string) *string {
	var value string
	Define(name, Func(func(v string) error {
		if !slices.Contains(choices, v) {
			return fmt.Errorf("got %q, want one of %s", v, strings.Join(choices, ", "))
		}
		value = v
		return nil
	}).Desc(fmt.Sprintf("set %s (%s)", flagName(name), strings.Join(choices, "|"))))
	return &value
}

func flagName(name string) string {
	return strings.TrimLeft(name, "-")
}
