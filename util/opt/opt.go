package opt

// Optional value.
//
// The zero value is absent.
type Opt[T any] struct {
	v       T
	present bool
}

func (o Opt[T]) IsNil() bool {
	return !o.present
}

func (o Opt[T]) Get() T {
	return o.v
}

// Get the value and whether it's present.
func (o Opt[T]) MayGet() (T, bool) {
	return o.v, o.present
}

// Get the value or the default one if absent.
func (o Opt[T]) OrElse(v T) T {
	if o.present {
		return o.v
	}
	return v
}

func Nil[T any]() Opt[T] {
	return Opt[T]{}
}

func New[T any](v T) Opt[T] {
	return Opt[T]{
		present: true,
		v:       v,
	}
}

// Create Opt from pointer, nil pointer means absent.
func FromPtr[T any](v *T) Opt[T] {
	if v == nil {
		return Nil[T]()
	}
	return New(*v)
}
