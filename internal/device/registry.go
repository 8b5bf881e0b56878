package device

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownDevice is returned by Open for names nobody registered.
var ErrUnknownDevice = errors.New("device: unknown device")

// Options configures a device at open time.
type Options struct {
	// Workers bounds CPU parallelism; zero selects runtime.NumCPU.
	Workers int
}

// Factory opens a device.
type Factory func(opts Options) (Device, error)

var factories = map[string]Factory{}

// Register adds a device factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	factories[name] = f
}

// Names lists the registered device names in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open constructs the named device.
func Open(name string, opts Options) (Device, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownDevice, name, Names())
	}
	dev, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("opening %s device: %w", name, err)
	}
	return dev, nil
}
