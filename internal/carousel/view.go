package carousel

import "fmt"

// View is the scrollable surface a controller drives. Both calls are
// fire-and-forget; the view reports where it came to rest through
// Controller.Settled.
type View interface {
	// ScrollToIndex asks the view to bring index into position. A view that
	// cannot do so yet (typically because the target has not been laid out)
	// returns an *IndexScrollError.
	ScrollToIndex(index int, animated bool) error

	// ScrollToOffset scrolls to an absolute offset along the scroll axis.
	ScrollToOffset(offset float64, animated bool)
}

// IndexScrollError reports that a view could not scroll directly to Index.
type IndexScrollError struct {
	Index int
	// AverageItemExtent is the view's estimate of one item's extent, or
	// zero when it has nothing measured.
	AverageItemExtent float64
}

func (e *IndexScrollError) Error() string {
	return fmt.Sprintf("scroll to index %d failed (average extent %.1f)", e.Index, e.AverageItemExtent)
}
