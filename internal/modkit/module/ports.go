package module

import (
	"reflect"
	"sync"
)

// PortsOf finds a T in m.Ports(), either the bundle itself or one of
// its exported fields. Pointer bundles are followed once.
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	bundle := m.Ports()
	if bundle == nil {
		return zero, false
	}
	if v, ok := bundle.(T); ok {
		return v, true
	}

	rv := reflect.ValueOf(bundle)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		if !rv.Type().Field(i).IsExported() {
			continue
		}
		if v, ok := rv.Field(i).Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for startup wiring, where a missing port is a bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " has no port of type " + reflect.TypeFor[T]().String())
	}
	return v
}

// ports registered by name while the api is mounted
var registry sync.Map

// Register publishes ports under name, replacing any earlier value
func Register(name string, ports any) { registry.Store(name, ports) }

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	v, ok := registry.Load(name)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Reset forgets every registration
func Reset() { registry.Clear() }
