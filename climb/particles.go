package climb

import (
	"math"

	"github.com/portfolio-lab/summit/parameter"
	"github.com/portfolio-lab/summit/physics"
	"github.com/portfolio-lab/summit/vmath"
)

var particlePalette = map[ParticleType][]uint32{
	ParticleDust:   {0xA89F91, 0x8C8478, 0xC2B8A3},
	ParticleSpark:  {0xFFD54F, 0xFFF176, 0xFFB300},
	ParticleDebris: {0x795548, 0x5D4037, 0x8D6E63},
	ParticleStar:   {0x80DEEA, 0xE1F5FE, 0xB388FF},
}

// spawnBurst emits n particles radiating from x, y
func (w *World) spawnBurst(t ParticleType, x, y float64, n int) {
	colors := particlePalette[t]
	speed := 1.5
	switch t {
	case ParticleSpark, ParticleStar:
		speed = 3
	case ParticleDebris:
		speed = 2.2
	}

	for i := 0; i < n; i++ {
		angle := vmath.Range(w.rng, 0, 2*math.Pi)
		s := vmath.Range(w.rng, speed*0.3, speed)
		life := parameter.ParticleMinLife + w.rng.Intn(parameter.ParticleMaxLife-parameter.ParticleMinLife+1)
		p := Particle{
			Life:    life,
			MaxLife: life,
			Size:    vmath.Range(w.rng, 1, 3),
			Color:   colors[w.rng.Intn(len(colors))],
			Type:    t,
		}
		p.X, p.Y = x, y
		p.VX, p.VY = math.Cos(angle)*s, math.Sin(angle)*s
		w.Particles = append(w.Particles, p)
	}

	if over := len(w.Particles) - parameter.MaxParticles; over > 0 {
		w.Particles = append(w.Particles[:0], w.Particles[over:]...)
	}
}

// updateParticles integrates particles and drops expired ones
func (w *World) updateParticles() {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		g := 0.0
		if p.Type == ParticleDust || p.Type == ParticleDebris {
			g = parameter.ParticleGravity
		}
		physics.Integrate(&p.Kinetic, g)
		p.VX *= 0.98
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	w.Particles = kept
	w.statParticles.Store(int64(len(w.Particles)))
}
