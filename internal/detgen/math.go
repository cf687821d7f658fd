package detgen

import "math"

// DetSin, DetCos, and DetAtan2 are software polynomial implementations,
// not thin wrappers over math.Sin/Cos/Atan2. Go's trig functions are
// backed by architecture-specific assembly (amd64 and arm64 take
// different code paths) and are not specified to be correctly rounded,
// so two platforms can legitimately disagree by a ULP. Every sampler
// routes its sphere-point trig through cubesphere.FaceCoordToSphere,
// which calls DetSin/DetCos, so a single ULP there changes noise input
// and therefore chunk contents - unacceptable when the same (address,
// seed) pair must generate byte-identical chunks on every platform.
// These implementations use only add/sub/mul/div and int64 truncation,
// all of which IEEE 754 (and the Go spec) pin down exactly, so the
// result is bit-identical regardless of architecture.
//
// DetSqrt is left as math.Sqrt: IEEE 754 requires sqrt to be correctly
// rounded, and every conforming platform (hardware or software) agrees
// bit-for-bit, so it carries none of Sin/Cos/Atan2's risk.
func DetSqrt(x float64) float64 { return math.Sqrt(x) }

// DetSin returns a deterministic approximation of sin(x), accurate to
// within about 1.2e-10 (the cosKernel bound) over any practical input
// range.
func DetSin(x float64) float64 {
	r, q := reduceQuadrant(x)
	switch q {
	case 0:
		return sinKernel(r)
	case 1:
		return cosKernel(r)
	case 2:
		return -sinKernel(r)
	default: // 3
		return -cosKernel(r)
	}
}

// DetCos returns a deterministic approximation of cos(x).
func DetCos(x float64) float64 {
	r, q := reduceQuadrant(x)
	switch q {
	case 0:
		return cosKernel(r)
	case 1:
		return -sinKernel(r)
	case 2:
		return -cosKernel(r)
	default: // 3
		return sinKernel(r)
	}
}

// DetAtan2 returns a deterministic approximation of atan2(y, x), with
// the same quadrant conventions as math.Atan2.
func DetAtan2(y, x float64) float64 {
	switch {
	case x > 0:
		return detAtan(y / x)
	case x < 0:
		if y >= 0 {
			return detAtan(y/x) + math.Pi
		}
		return detAtan(y/x) - math.Pi
	case y > 0:
		return math.Pi / 2
	case y < 0:
		return -math.Pi / 2
	default:
		return 0
	}
}

// reduceQuadrant folds x into r in [-pi/4, pi/4] plus which multiple of
// pi/2 (mod 4) it fell in, the standard kernel-based range reduction
// that keeps the Taylor kernels below accurate over their whole domain.
func reduceQuadrant(x float64) (r float64, quadrant int64) {
	const quarterTurn = math.Pi / 2
	n := detRound(x / quarterTurn)
	r = x - n*quarterTurn
	quadrant = int64(n) % 4
	if quadrant < 0 {
		quadrant += 4
	}
	return r, quadrant
}

// sinKernel is the Taylor series for sin, accurate to better than 1e-11
// over [-pi/4, pi/4].
func sinKernel(r float64) float64 {
	r2 := r * r
	return r * (1 + r2*(-1.0/6+r2*(1.0/120+r2*(-1.0/5040+r2*(1.0/362880+r2*(-1.0/39916800))))))
}

// cosKernel is the Taylor series for cos, accurate to better than 1.2e-10
// over [-pi/4, pi/4].
func cosKernel(r float64) float64 {
	r2 := r * r
	return 1 + r2*(-1.0/2+r2*(1.0/24+r2*(-1.0/720+r2*(1.0/40320+r2*(-1.0/3628800)))))
}

// detAtan approximates atan(t) for any t via a minimax polynomial valid
// on [-1, 1], using the atan(t) = pi/2 - atan(1/t) identity to fold
// |t| > 1 back into that range.
func detAtan(t float64) float64 {
	if t == 0 {
		return 0
	}
	neg := t < 0
	if neg {
		t = -t
	}
	var result float64
	if t > 1 {
		result = math.Pi/2 - atanKernel(1/t)
	} else {
		result = atanKernel(t)
	}
	if neg {
		return -result
	}
	return result
}

// atanKernel is a degree-9 minimax polynomial approximation of atan,
// accurate to within 1e-5 over [0, 1] - ample for sampling angles that
// only ever feed a noise field.
func atanKernel(t float64) float64 {
	t2 := t * t
	return t * (0.9998660 + t2*(-0.3302995+t2*(0.1801410+t2*(-0.0851330+t2*0.0208351))))
}

// detRound rounds to the nearest integer, ties away from zero, using
// only truncating int64 conversion so the result never depends on a
// platform's rounding-mode default.
func detRound(x float64) float64 {
	if x >= 0 {
		return detTrunc(x + 0.5)
	}
	return -detTrunc(-x + 0.5)
}

func detTrunc(x float64) float64 {
	return float64(int64(x))
}
