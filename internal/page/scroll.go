package page

const (
	// ScrollTopThreshold is the vertical offset past which the
	// scroll-to-top control is shown.
	ScrollTopThreshold = 500.0

	// ActivationLine is the viewport y coordinate a section must span to
	// become the active one.
	ActivationLine = 100.0
)

// Rect is an anchor's vertical extent in viewport coordinates.
type Rect struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Contains reports whether the rect spans viewport line y.
func (r Rect) Contains(y float64) bool {
	return r.Top <= y && r.Bottom >= y
}

// Geometry is a snapshot of the viewport taken on a scroll event. Anchors
// holds one rect per section present in the document; absent sections are
// simply missing from the map.
type Geometry struct {
	ScrollY float64          `json:"scroll_y"`
	Anchors map[Section]Rect `json:"anchors"`
}

// Tracking is the value derived from a Geometry.
type Tracking struct {
	ScrollTopVisible bool
	Active           Section
	Matched          bool
}

// Track derives scroll-to-top visibility and the section under the
// activation line. When no anchor spans the line Matched is false and
// Active is empty; callers keep their previous section.
func Track(g Geometry) Tracking {
	t := Tracking{ScrollTopVisible: g.ScrollY > ScrollTopThreshold}
	for _, sec := range Sections {
		rect, ok := g.Anchors[sec]
		if !ok {
			continue
		}
		if rect.Contains(ActivationLine) {
			t.Active = sec
			t.Matched = true
			break
		}
	}
	return t
}
