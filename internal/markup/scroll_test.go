package markup

import "testing"

func TestTrackerActive(t *testing.T) {
	headings := []Heading{{AnchorID: "a", Level: 1}, {AnchorID: "b", Level: 2}}
	offsets := []float64{0, 500}
	tracker := NewTracker(100)

	cases := []struct {
		scroll float64
		want   string
		ok     bool
	}{
		{scroll: 600, want: "b", ok: true},
		{scroll: 400, want: "b", ok: true},
		{scroll: 399, want: "a", ok: true},
		{scroll: 50, want: "a", ok: true},
		{scroll: 0, want: "a", ok: true},
		{scroll: -10, want: "", ok: false},
	}
	for _, tc := range cases {
		got, ok := tracker.Active(headings, offsets, tc.scroll)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("scroll %v: want (%q, %v), got (%q, %v)", tc.scroll, tc.want, tc.ok, got, ok)
		}
	}
}

func TestTrackerNoHeadingAboveViewport(t *testing.T) {
	headings := []Heading{{AnchorID: "late"}}
	if got, ok := NewTracker(DefaultLeadMargin).Active(headings, []float64{900}, 100); ok {
		t.Fatalf("expected no active heading, got %q", got)
	}
}

func TestTrackerIgnoresUnmatchedOffsets(t *testing.T) {
	headings := []Heading{{AnchorID: "a"}, {AnchorID: "b"}, {AnchorID: "c"}}
	got, ok := NewTracker(0).Active(headings, []float64{0, 10}, 1000)
	if !ok || got != "b" {
		t.Fatalf("expected b, got (%q, %v)", got, ok)
	}
	if _, ok := NewTracker(0).Active(nil, nil, 10); ok {
		t.Fatal("expected no active heading for empty outline")
	}
}

func TestNewTrackerClampsNegativeMargin(t *testing.T) {
	if tracker := NewTracker(-5); tracker.LeadMargin != 0 {
		t.Fatalf("expected clamped margin, got %v", tracker.LeadMargin)
	}
}
