// Copyright 2021 Jonathan Amsterdam.

package parsec

// An Option holds either a value or nothing. It is the value of Opt
// parsers and the result of Stream.Get.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

func (o Option[T]) IsPresent() bool { return o.present }

// OrElse returns the value if present, and v otherwise.
func (o Option[T]) OrElse(v T) T {
	if o.present {
		return o.value
	}
	return v
}

// OrLazyElse is like OrElse, but calls f only when the Option is empty.
func (o Option[T]) OrLazyElse(f func() T) T {
	if o.present {
		return o.value
	}
	return f()
}

// Filter returns o if it is present and pred holds for its value,
// and an empty Option otherwise.
func (o Option[T]) Filter(pred func(T) bool) Option[T] {
	if o.present && pred(o.value) {
		return o
	}
	return None[T]()
}

// MapOption applies f to the value of o, if there is one.
func MapOption[T, U any](o Option[T], f func(T) U) Option[U] {
	if !o.present {
		return None[U]()
	}
	return Some(f(o.value))
}
