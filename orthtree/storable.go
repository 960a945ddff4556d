package orthtree

import "github.com/royalcat/orthtree/geom"

// Storable is anything that has a location and a payload.
type Storable[V any] interface {
	Point() geom.Point
	Item() V
}

// Entry stores Value at Key.
type Entry[V any] struct {
	Key   geom.Point
	Value V
}

func (e Entry[V]) Point() geom.Point { return e.Key }
func (e Entry[V]) Item() V { return e.Value }
