// Package builtin registers Tarnish's two host functions, time and str,
// into an interpreter's global environment.
package builtin

import (
	"time"

	"github.com/PA055/Tarnish/internal/object"
)

// Register installs time() and str(x) into globals: time takes no
// arguments and returns seconds since epoch, str takes exactly one
// argument and returns its display form.
func Register(globals *object.Environment) {
	globals.Define("time", &object.HostFn{
		Name:   "time",
		ArityN: 0,
		Fn:     timeNow,
	})
	globals.Define("str", &object.HostFn{
		Name:   "str",
		ArityN: 1,
		Fn:     str,
	})
}

// timeNow returns seconds since epoch with sub-second precision.
func timeNow(args []object.Value) (object.Value, error) {
	return object.Float(float64(time.Now().UnixMilli()) / 1000), nil
}

// str renders a value's display form. true/false/none print in
// lowercase; everything else uses the value's own String(), which
// already lowercases bool/none for the same reason.
func str(args []object.Value) (object.Value, error) {
	return object.Str(args[0].String()), nil
}
