package physics

// Kinetic is the float motion state shared by climber, obstacles and particles
// Units are canvas units and canvas units per tick
type Kinetic struct {
	X, Y   float64
	VX, VY float64
}

// Integrate performs one explicit Euler step: v = v + g; p = p + v
func Integrate(k *Kinetic, gravity float64) {
	k.VY += gravity
	k.X += k.VX
	k.Y += k.VY
}

// ApplyImpulse adds velocity delta
func ApplyImpulse(k *Kinetic, vx, vy float64) {
	k.VX += vx
	k.VY += vy
}

// SetImpulse overrides velocity
func SetImpulse(k *Kinetic, vx, vy float64) {
	k.VX = vx
	k.VY = vy
}

// ClampX pins X into [minX, maxX] and kills horizontal velocity on contact, returns true if clamped
func ClampX(k *Kinetic, minX, maxX float64) bool {
	if k.X < minX {
		k.X = minX
		k.VX = 0
		return true
	}
	if k.X > maxX {
		k.X = maxX
		k.VX = 0
		return true
	}
	return false
}

// LimitVY caps downward speed
func LimitVY(k *Kinetic, maxVY float64) {
	if k.VY > maxVY {
		k.VY = maxVY
	}
}
