package observer

import (
	"reflect"

	"github.com/pkg/errors"
)

// Validate reports ErrInvalidObserver for observers that can never be invoked
// or never be removed again: nil, typed nil pointers and values that cannot be
// compared, such as structs holding a slice behind an interface field.
func Validate(o Observer) error {
	if o == nil {
		return errors.Wrap(ErrInvalidObserver, "observer is nil")
	}
	v := reflect.ValueOf(o)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return errors.Wrapf(ErrInvalidObserver, "observer of type %T is nil", o)
		}
	}
	if !v.Comparable() {
		return errors.Wrapf(ErrInvalidObserver, "observer of type %T is not comparable", o)
	}
	return nil
}

// Truthy reports whether a result counts as an answer for NotifyUntil:
// anything except false and nil (typed nils included).
func Truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// Same reports whether a and b are the same registration. Values that cannot
// be compared are never the same as anything.
func Same(a, b Observer) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !reflect.ValueOf(a).Comparable() || !reflect.ValueOf(b).Comparable() {
		return false
	}
	return a == b
}
