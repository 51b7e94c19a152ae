package date

import (
	"iter"
	"slices"
)

// History is a series of values by day, with at most one value per day, kept in
// chronological order. The zero value is an empty history.
type History[T any] struct {
	days   []Date
	values []T
}

// Len returns the number of days in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Latest returns the most recent day and its value, or zero values for an empty history.
func (h *History[T]) Latest() (day Date, value T) {
	if len(h.days) == 0 {
		return day, value
	}
	last := len(h.days) - 1
	return h.days[last], h.values[last]
}

// search returns the position of 'day' in the history, or where it would be inserted.
func (h *History[T]) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, Date.Compare)
}

// Append sets the value on day 'on', replacing any previous one.
func (h *History[T]) Append(on Date, q T) *History[T] {
	return h.Merge(on, q, func(_, q T) T { return q })
}

// Merge sets the value on day 'on' to 'q', or to merge(existing, q) if the day already has one.
func (h *History[T]) Merge(on Date, q T, merge func(existing, q T) T) *History[T] {
	i, found := h.search(on)
	if found {
		h.values[i] = merge(h.values[i], q)
		return h
	}
	h.days = slices.Insert(h.days, i, on)
	h.values = slices.Insert(h.values, i, q)
	return h
}

// Values iterates over days and values, oldest first.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value on 'day', if any.
func (h *History[T]) Get(day Date) (T, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on 'day', or else the last one before it.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	if i == 0 {
		var zero T
		return zero, false
	}
	return h.values[i-1], true
}
