// Package stepctx provides typed access to a scenario's fixture bag
// (stepbdd.Data). Go has no generic methods, so the typed accessors are
// free functions parameterised over the value type, layered on top of
// Data's untyped Set/Get.
package stepctx

import (
	"fmt"
	"strings"

	"github.com/go-stepbdd/stepbdd/pkg/stepbdd"
)

// Insert stores a typed value under name into the scenario's data store,
// overwriting any previous value registered under the same name.
func Insert[T any](d *stepbdd.Data, name string, value T) {
	d.Set(name, value)
}

// Get retrieves a fixture by name, type-asserting it to T. ok is false
// when the name is absent or holds a value of a different type.
func Get[T any](d *stepbdd.Data, name string) (value T, ok bool) {
	raw, exists := d.Get(name)
	if !exists {
		return value, false
	}
	typed, ok := raw.(T)
	return typed, ok
}

// MustGet retrieves a fixture by name, panicking with a descriptive
// message if it is absent or of the wrong type. The wrapper recovers from
// this panic as a handler panic; it is not reported as a MissingFixture
// error.
func MustGet[T any](d *stepbdd.Data, name string) T {
	value, ok := Get[T](d, name)
	if !ok {
		panic(fmt.Sprintf("stepctx: fixture %q not available or wrong type (have: %s)", name, strings.Join(d.Names(), ", ")))
	}
	return value
}
