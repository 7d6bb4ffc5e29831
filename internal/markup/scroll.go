package markup

// DefaultLeadMargin is how far ahead of the viewport top a heading becomes
// active.
const DefaultLeadMargin = 100.0

// Tracker picks the active heading for a scroll position. It holds no state
// between calls, so it may be invoked from any number of goroutines.
type Tracker struct {
	LeadMargin float64
}

// NewTracker returns a Tracker; a negative margin is treated as zero.
func NewTracker(leadMargin float64) Tracker {
	if leadMargin < 0 {
		leadMargin = 0
	}
	return Tracker{LeadMargin: leadMargin}
}

// Active scans headings bottom-up and returns the anchor of the first one
// whose offset minus the lead margin is at or above scroll. offsets[i] is the
// vertical position of headings[i]; extra entries on either side are
// ignored. A negative scroll (overscroll above the document) has no active
// heading.
func (t Tracker) Active(headings []Heading, offsets []float64, scroll float64) (string, bool) {
	if scroll < 0 {
		return "", false
	}
	n := min(len(headings), len(offsets))
	for i := n - 1; i >= 0; i-- {
		if offsets[i]-t.LeadMargin <= scroll {
			return headings[i].AnchorID, true
		}
	}
	return "", false
}
