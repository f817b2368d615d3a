package lru

import (
	glru "github.com/hashicorp/golang-lru/v2"
)

// Size bounded cache with string keys, safe for concurrent use.
type LRU[T any] interface {
	Get(k string) (T, bool)

	// Get value by k, or call f to load it when absent.
	//
	// Concurrent calls for the same missing key may call f more than once, the last loaded value wins.
	GetElse(k string, f func() (T, error)) (T, error)

	Set(k string, t T)
	Len() int
}

type lru[T any] struct {
	c *glru.Cache[string, T]
}

func (l *lru[T]) Get(k string) (T, bool) {
	return l.c.Get(k)
}

func (l *lru[T]) GetElse(k string, f func() (T, error)) (T, error) {
	if v, ok := l.c.Get(k); ok {
		return v, nil
	}
	v, err := f()
	if err != nil {
		return v, err
	}
	l.c.Add(k, v)
	return v, nil
}

func (l *lru[T]) Set(k string, t T) {
	l.c.Add(k, t)
}

func (l *lru[T]) Len() int {
	return l.c.Len()
}

func New[T any](cap int) (LRU[T], error) {
	c, err := glru.New[string, T](cap)
	if err != nil {
		return nil, err
	}
	return &lru[T]{c: c}, nil
}

// Same as [New], but panics if cap is not positive.
func MustNew[T any](cap int) LRU[T] {
	l, err := New[T](cap)
	if err != nil {
		panic(err)
	}
	return l
}
