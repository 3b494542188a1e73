package backend

// SegmentOp is the type of path operation.
type SegmentOp uint8

const (
	// SegmentMoveTo starts a new contour.
	SegmentMoveTo SegmentOp = iota
	// SegmentLineTo draws a line to the target point.
	SegmentLineTo
	// SegmentQuadTo draws a quadratic bezier curve.
	SegmentQuadTo
	// SegmentCubeTo draws a cubic bezier curve.
	SegmentCubeTo
	// SegmentClose closes the current contour.
	SegmentClose
)

// String returns a string representation of the operation.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "MoveTo"
	case SegmentLineTo:
		return "LineTo"
	case SegmentQuadTo:
		return "QuadTo"
	case SegmentCubeTo:
		return "CubeTo"
	case SegmentClose:
		return "Close"
	default:
		return unknownStr
	}
}

// Segment is one recorded path operation.
// Points holds controls followed by the end point; unused entries are zero.
type Segment struct {
	Op     SegmentOp
	Points [3][2]float32
}

// PathRecorder is a PathBuilder that records segments.
type PathRecorder struct {
	Segments []Segment
}

func (r *PathRecorder) MoveTo(x, y float32) {
	r.Segments = append(r.Segments, Segment{Op: SegmentMoveTo, Points: [3][2]float32{{x, y}}})
}

func (r *PathRecorder) LineTo(x, y float32) {
	r.Segments = append(r.Segments, Segment{Op: SegmentLineTo, Points: [3][2]float32{{x, y}}})
}

func (r *PathRecorder) QuadTo(x1, y1, x, y float32) {
	r.Segments = append(r.Segments, Segment{Op: SegmentQuadTo, Points: [3][2]float32{{x1, y1}, {x, y}}})
}

func (r *PathRecorder) CubeTo(x1, y1, x2, y2, x, y float32) {
	r.Segments = append(r.Segments, Segment{Op: SegmentCubeTo, Points: [3][2]float32{{x1, y1}, {x2, y2}, {x, y}}})
}

func (r *PathRecorder) ClosePath() {
	r.Segments = append(r.Segments, Segment{Op: SegmentClose})
}

// Reset clears the recorded segments, keeping capacity.
func (r *PathRecorder) Reset() {
	r.Segments = r.Segments[:0]
}

// Bounds returns the bounding box of all recorded points.
// ok is false when nothing with coordinates was recorded.
func (r *PathRecorder) Bounds() (minX, minY, maxX, maxY float32, ok bool) {
	for _, s := range r.Segments {
		n := 0
		switch s.Op {
		case SegmentMoveTo, SegmentLineTo:
			n = 1
		case SegmentQuadTo:
			n = 2
		case SegmentCubeTo:
			n = 3
		}
		for _, p := range s.Points[:n] {
			if !ok {
				minX, minY, maxX, maxY, ok = p[0], p[1], p[0], p[1], true
				continue
			}
			minX = min(minX, p[0])
			minY = min(minY, p[1])
			maxX = max(maxX, p[0])
			maxY = max(maxY, p[1])
		}
	}
	return minX, minY, maxX, maxY, ok
}
