package ballistics

import (
	"fmt"
	"math"
)

// zeroSearch finds the launch angle, relative to the line of sight, at which a level,
// windless shot crosses the line of sight at the zero range.
type zeroSearch struct {
	shot       *shot
	profile    BulletProfile
	sight      SightConfig
	tolerance  float64 // inches
	maxAngle   float64 // radians
	maxIter    int
	iterations int
}

// heightError returns the signed height (inches) above the line of sight at the zero
// range for a launch angle. ok is false when the zero range is never reached.
func (z *zeroSearch) heightError(angle float64) (float64, bool) {
	z.iterations++
	target := []float64{z.sight.ZeroRangeYards * metersPerYard}
	var height float64
	reached := z.shot.fly(muzzleState(z.profile.MuzzleVelocityFps, z.sight.SightHeightInches, angle), target,
		func(_ int, at state) { height = at.pos.Y / metersPerInch })
	return height, reached == 1
}

// solve brackets the root by doubling up from the geometric guess, then bisects.
func (z *zeroSearch) solve() (float64, error) {
	lo := 0.0
	hi := math.Atan(z.sight.SightHeightInches / (z.sight.ZeroRangeYards * 36))

	for {
		h, ok := z.heightError(hi)
		if ok && math.Abs(h) <= z.tolerance {
			return hi, nil
		}
		if ok && h > 0 {
			break
		}
		if hi >= z.maxAngle {
			return 0, fmt.Errorf("%w: no launch angle up to %.1f deg reaches %.0f yd at line of sight",
				ErrZeroNotAchievable, z.maxAngle*180/math.Pi, z.sight.ZeroRangeYards)
		}
		lo = hi
		hi = math.Min(hi*2, z.maxAngle)
	}

	for z.iterations < z.maxIter {
		mid := (lo + hi) / 2
		h, ok := z.heightError(mid)
		if ok && math.Abs(h) <= z.tolerance {
			return mid, nil
		}
		if !ok || h < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0, fmt.Errorf("%w: not converged to %.4g in after %d iterations",
		ErrZeroNotAchievable, z.tolerance, z.iterations)
}
