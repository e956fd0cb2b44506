// Package xref resolves foreign keys against a loaded collection, such as
// an order event's lab_order_id against the loaded orders.
package xref

// Index maps canonical keys to items.  It is built once per load and is
// read-only afterwards.
type Index[T any] struct {
	byKey map[string]T
}

// Build indexes items by keyOf.  When two items share a key the first
// one wins, matching a top-to-bottom scan of the list.
func Build[T any](items []T, keyOf func(T) string) Index[T] {
	byKey := make(map[string]T, len(items))
	for _, item := range items {
		k := keyOf(item)
		if _, dup := byKey[k]; !dup {
			byKey[k] = item
		}
	}
	return Index[T]{byKey: byKey}
}

// Lookup returns the item with key, or false when the reference dangles.
func (ix Index[T]) Lookup(key string) (T, bool) {
	item, ok := ix.byKey[key]
	return item, ok
}

func (ix Index[T]) Len() int { return len(ix.byKey) }

// Label renders the referenced item with found, or falls back to
// missing(key) when the reference does not resolve.
func (ix Index[T]) Label(key string, found func(T) string, missing func(string) string) string {
	if item, ok := ix.byKey[key]; ok {
		return found(item)
	}
	return missing(key)
}
