package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoissonDiskMinDistance(t *testing.T) {
	region := Region{MinX: 0, MinY: 0, MaxX: 200, MaxY: 200}
	points := PoissonDisk(123, region, 10, 30)
	require.Greater(t, len(points), 0)

	for i := range points {
		for j := range points {
			if i == j {
				continue
			}
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			d := math.Sqrt(dx*dx + dy*dy)
			require.GreaterOrEqual(t, d, 10-1e-6)
		}
	}
}

func TestPoissonDiskPointsStayWithinRegion(t *testing.T) {
	region := Region{MinX: 5, MinY: 5, MaxX: 55, MaxY: 55}
	points := PoissonDisk(7, region, 6, 20)
	for _, p := range points {
		require.GreaterOrEqual(t, p.X, region.MinX)
		require.LessOrEqual(t, p.X, region.MaxX)
		require.GreaterOrEqual(t, p.Y, region.MinY)
		require.LessOrEqual(t, p.Y, region.MaxY)
	}
}

func TestPoissonDiskIsDeterministic(t *testing.T) {
	region := Region{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100}
	a := PoissonDisk(55, region, 8, 25)
	b := PoissonDisk(55, region, 8, 25)
	require.Equal(t, a, b)
}
