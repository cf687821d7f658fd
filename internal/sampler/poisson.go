package sampler

import (
	"math"

	"github.com/cubesphere-engine/terra/internal/detgen"
)

// Point2D is a 2D point in a feature-placement region's own coordinates.
type Point2D struct {
	X, Y float64
}

// Region is an axis-aligned rectangle candidates are drawn within.
type Region struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Region) width() float64  { return r.MaxX - r.MinX }
func (r Region) height() float64 { return r.MaxY - r.MinY }

// mitchellSaturation bounds the expected point count for a Poisson-disk
// fill of a region at a given minimum distance, used to size the
// candidate budget before best-candidate search gives up.
const mitchellSaturation = 0.7

// PoissonDisk generates deterministic 2D points within region with
// pairwise distance at least minDistance, via Mitchell's best-candidate
// algorithm: each round draws up to maxAttempts candidates and keeps the
// one with the largest minimum distance to the accepted set, provided
// that distance is at least minDistance. A round with no qualifying
// candidate means the region is saturated and generation stops.
//
// Identical (seed, region, minDistance, maxAttempts) always returns an
// identical point list: all randomness is drawn, in a fixed order, from
// a detgen.RNG seeded directly from seed.
func PoissonDisk(seed uint64, region Region, minDistance float64, maxAttempts int) []Point2D {
	rng := detgen.NewRNGFromSeed(seed)

	area := region.width() * region.height()
	maxPoints := int(area / (minDistance * minDistance * mitchellSaturation))
	if maxPoints < 1 {
		maxPoints = 1
	}

	points := make([]Point2D, 0, maxPoints)
	for len(points) < maxPoints {
		bestDist := -1.0
		var best Point2D
		found := false

		for attempt := 0; attempt < maxAttempts; attempt++ {
			cand := Point2D{
				X: rng.Float64Range(region.MinX, region.MaxX),
				Y: rng.Float64Range(region.MinY, region.MaxY),
			}
			d := minDistanceTo(cand, points)
			if d >= minDistance && d > bestDist {
				bestDist = d
				best = cand
				found = true
			}
		}

		if !found {
			break
		}
		points = append(points, best)
	}
	return points
}

func minDistanceTo(p Point2D, points []Point2D) float64 {
	if len(points) == 0 {
		return math.MaxFloat64
	}
	min := math.MaxFloat64
	for _, q := range points {
		dx := p.X - q.X
		dy := p.Y - q.Y
		d := detgen.DetSqrt(dx*dx + dy*dy)
		if d < min {
			min = d
		}
	}
	return min
}
