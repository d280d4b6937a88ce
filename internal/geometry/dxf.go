// Package geometry measures DXF part drawings so extracted workbook figures
// can be cross-checked against the actual geometry.
package geometry

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/laserquote/internal/model"
)

// Measurement summarizes the cut geometry of one DXF file. Drawing units are
// assumed to be millimeters, the convention of every nesting export we see.
type Measurement struct {
	ContourCount  int
	CutLengthM    float64 // total contour perimeter
	BoundingBoxM2 float64 // overall extents, width x height
	Warnings      []string
}

type point struct {
	X, Y float64
}

type contour []point

type segment struct {
	start point
	end   point
}

// chaining tolerance for loose LINE/ARC endpoints, in drawing units
const chainTolerance = 0.01

// MeasureDXF reads a part drawing and totals the cut length over all closed
// contours. Open chains still count toward the length but are reported as
// warnings since the laser cannot cut them as a part outline.
func MeasureDXF(path string) (*Measurement, error) {
	drawing, err := dxf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dxf: %w", err)
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		return nil, fmt.Errorf("dxf file contains no entities")
	}

	m := &Measurement{}
	var contours []contour
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			c := lwPolylineContour(e)
			if len(c) >= 3 {
				contours = append(contours, c)
			} else {
				m.Warnings = append(m.Warnings, "skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			contours = append(contours, circleContour(e, 64))

		case *entity.Arc:
			pts := arcPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// unsupported entity types carry no cut length
		}
	}

	closed, open := chainSegments(segments)
	contours = append(contours, closed...)
	for _, c := range open {
		m.CutLengthM += pathLength(c, false)
		m.Warnings = append(m.Warnings, fmt.Sprintf(
			"open chain of %d points, counted as length but not as a contour", len(c)))
	}

	if len(contours) == 0 && m.CutLengthM == 0 {
		return nil, fmt.Errorf("no measurable shapes in dxf file")
	}

	minP := point{X: math.Inf(1), Y: math.Inf(1)}
	maxP := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, c := range contours {
		m.ContourCount++
		m.CutLengthM += pathLength(c, true)
		for _, p := range c {
			minP.X = math.Min(minP.X, p.X)
			minP.Y = math.Min(minP.Y, p.Y)
			maxP.X = math.Max(maxP.X, p.X)
			maxP.Y = math.Max(maxP.Y, p.Y)
		}
	}
	if m.ContourCount > 0 {
		m.BoundingBoxM2 = (maxP.X - minP.X) * (maxP.Y - minP.Y) / 1e6
	}

	// mm to meters
	m.CutLengthM /= 1000
	return m, nil
}

// CrossCheck compares a measured drawing against a priced part row. Any
// figure deviating by more than tolerancePct produces a warning naming both
// values.
func CrossCheck(m *Measurement, part model.PartLineItem, tolerancePct float64) []string {
	var warnings []string
	if d := deviationPct(m.CutLengthM, part.CutLengthM); d > tolerancePct {
		warnings = append(warnings, fmt.Sprintf(
			"%s: cut length deviates %.1f%% (drawing %.3f m, workbook %.3f m)",
			part.Name, d, m.CutLengthM, part.CutLengthM))
	}
	if d := deviationPct(float64(m.ContourCount), part.ContourCount); d > tolerancePct {
		warnings = append(warnings, fmt.Sprintf(
			"%s: contour count deviates %.1f%% (drawing %d, workbook %.0f)",
			part.Name, d, m.ContourCount, part.ContourCount))
	}
	return warnings
}

func deviationPct(measured, declared float64) float64 {
	if declared == 0 {
		if measured == 0 {
			return 0
		}
		return 100
	}
	return math.Abs(measured-declared) / declared * 100
}

// lwPolylineContour flattens an LWPOLYLINE, interpolating bulge arcs.
func lwPolylineContour(lw *entity.LwPolyline) contour {
	var c contour
	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := point{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		if math.Abs(bulge) > 1e-9 {
			next := point{
				X: lw.Vertices[(i+1)%len(lw.Vertices)][0],
				Y: lw.Vertices[(i+1)%len(lw.Vertices)][1],
			}
			arc := bulgeArc(current, next, bulge, 32)
			c = append(c, arc[:len(arc)-1]...)
		} else {
			c = append(c, current)
		}
	}
	return c
}

// bulgeArc interpolates the arc between two polyline vertices. The bulge is
// the tangent of a quarter of the included angle.
func bulgeArc(p1, p2 point, bulge float64, steps int) contour {
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chord := math.Hypot(dx, dy)
	if chord < 1e-9 {
		return contour{p1, p2}
	}

	sagitta := math.Abs(bulge) * chord / 2
	radius := (chord*chord/(4*sagitta) + sagitta) / 2

	perpX := -dy / chord
	perpY := dx / chord
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.Y-cy, p1.X-cx)
	endAngle := math.Atan2(p2.Y-cy, p2.X-cx)
	if bulge < 0 && endAngle > startAngle {
		endAngle -= 2 * math.Pi
	}
	if bulge > 0 && endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make(contour, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, point{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)})
	}
	return pts
}

// circleContour approximates a circle as a regular polygon.
func circleContour(c *entity.Circle, steps int) contour {
	out := make(contour, steps)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		out[i] = point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return out
}

// arcPoints samples an ARC entity into line points.
func arcPoints(a *entity.Arc, steps int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius
	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]point, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		angle := startRad + t*(endRad-startRad)
		pts[i] = point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return pts
}

func pointSegments(pts []point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects loose segments by shared endpoints and splits the
// result into closed contours and open chains.
func chainSegments(segs []segment) (closed []contour, open []contour) {
	used := make([]bool, len(segs))

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := contour{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1]) {
			closed = append(closed, chain[:len(chain)-1])
		} else {
			open = append(open, chain)
		}
	}
	return closed, open
}

func pointsClose(a, b point) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= chainTolerance
}

// pathLength sums the segment lengths of a point path, closing the loop when
// asked.
func pathLength(c contour, closeLoop bool) float64 {
	if len(c) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(c)-1; i++ {
		total += math.Hypot(c[i+1].X-c[i].X, c[i+1].Y-c[i].Y)
	}
	if closeLoop {
		total += math.Hypot(c[0].X-c[len(c)-1].X, c[0].Y-c[len(c)-1].Y)
	}
	return total
}
