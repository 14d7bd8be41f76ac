// Package scroll computes the page scroll-progress indicator.
package scroll

import "math"

// Progress returns how far the page is scrolled, from 0 to 100. Pages with no
// overflow use a denominator of 1 so the result is always defined.
func Progress(scrollY, documentHeight, viewportHeight float64) float64 {
	scrollable := math.Max(documentHeight-viewportHeight, 1)
	ratio := scrollY / scrollable
	return math.Min(math.Max(ratio, 0), 1) * 100
}
