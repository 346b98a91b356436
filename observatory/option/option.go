package option

// Option is either Some (holds a value) or Nothing.
// Lookups that may legitimately find nothing return an Option instead of a
// sentinel error, so "not found" stays distinguishable from a failure.
type Option[T any] struct {
	val   T
	valid bool
}

func Some[T any](val T) Option[T] {
	return Option[T]{val: val, valid: true}
}

func Nothing[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool {
	return o.valid
}

func (o Option[T]) IsNothing() bool {
	return !o.valid
}

// Get returns the value and whether there is one.
func (o Option[T]) Get() (T, bool) {
	return o.val, o.valid
}

// Unwrap panics on Nothing.
func (o Option[T]) Unwrap() T {
	if !o.valid {
		panic("called Unwrap on a Nothing Option")
	}
	return o.val
}

// UnwrapOrZero falls back to the zero value of T.
func (o Option[T]) UnwrapOrZero() T {
	return o.val
}

// Map converts the held value, if any.
func Map[T any, U any](o Option[T], f func(T) U) Option[U] {
	if o.valid {
		return Some(f(o.val))
	}
	return Nothing[U]()
}
