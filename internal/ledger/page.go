package ledger

// Page is one slice of a longer list.
type Page[T any] struct {
	Items []T
	// Index is zero-based and already clamped into range.
	Index int
	Count int
	Total int
	// Start and End are one-based positions of the first and last item shown.
	Start int
	End   int
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool { return p.Index > 0 }

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool { return p.Index < p.Count-1 }

// Paginate cuts items into pages of size and returns page index, clamped.
func Paginate[T any](items []T, index, size int) Page[T] {
	if size <= 0 {
		size = len(items)
	}
	total := len(items)
	count := 1
	if size > 0 && total > 0 {
		count = (total + size - 1) / size
	}
	index = max(0, min(index, count-1))

	start := index * size
	end := min(start+size, total)
	p := Page[T]{Index: index, Count: count, Total: total}
	if start < end {
		p.Items = items[start:end]
		p.Start = start + 1
		p.End = end
	}
	return p
}
