package ballistics

import "math"

// Vector is a shot-frame vector: X downrange along the line of sight,
// Y up perpendicular to it, Z toward the shooter's left
type Vector struct{ X, Y, Z float64 }

// Add returns the sum of two vectors
func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale multiplies a vector by a scalar
func (v Vector) Scale(k float64) Vector { return Vector{v.X * k, v.Y * k, v.Z * k} }

// Norm returns the Euclidean length
func (v Vector) Norm() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Lerp interpolates linearly from v (f=0) to o (f=1)
func (v Vector) Lerp(o Vector, f float64) Vector { return v.Add(o.Sub(v).Scale(f)) }
