package controller

// WindowSize is the number of page buttons shown at once.
const WindowSize = 5

// PageWindow returns the zero-based page numbers to offer as buttons when
// selected is the current page out of pages. The window stays anchored to
// the first pages near the start, to the last pages near the end, and is
// centred on selected otherwise. Pages past the end are never included.
func PageWindow(selected, pages int) []int {
	shift := func(i int) int { return selected + i - 2 }
	switch {
	case selected <= 2 || pages < WindowSize:
		shift = func(i int) int { return i }
	case selected >= pages-2:
		shift = func(i int) int { return pages + i - WindowSize }
	}

	out := make([]int, 0, WindowSize)
	for i := range WindowSize {
		if p := shift(i); p < pages {
			out = append(out, p)
		}
	}
	return out
}

// HasPrev reports whether there is a page before selected.
func HasPrev(selected int) bool { return selected > 0 }

// HasNext reports whether there is a page after selected.
func HasNext(selected, pages int) bool { return selected < pages-1 }
