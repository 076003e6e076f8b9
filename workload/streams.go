package workload

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

func newSource(seed uint64) *rand.PCG {
	return rand.NewPCG(seed, seed^seedStreamSalt)
}

// A Uniform stream draws integers uniformly.
type Uniform struct {
	rng *rand.Rand
}

// NewUniform creates a uniform stream.
func NewUniform(seed uint64) *Uniform {
	return &Uniform{rng: rand.New(newSource(seed))}
}

// IntFromTo draws from [lo, hi], both ends included.
func (u *Uniform) IntFromTo(lo, hi int) int {
	if hi < lo {
		panic("empty range")
	}

	return lo + u.rng.IntN(hi-lo+1)
}

// A Poisson stream draws non-negative counts with a fixed mean.
type Poisson struct {
	dist distuv.Poisson
}

// NewPoisson creates a Poisson stream.
func NewPoisson(mean float64, seed uint64) *Poisson {
	if mean <= 0 {
		panic("poisson mean must be positive")
	}

	return &Poisson{
		dist: distuv.Poisson{Lambda: mean, Src: newSource(seed)},
	}
}

// Mean returns the mean of the stream.
func (p *Poisson) Mean() float64 {
	return p.dist.Lambda
}

// Next draws a count.
func (p *Poisson) Next() int {
	return int(p.dist.Rand())
}

// A Bernoulli stream draws true with a fixed probability.
type Bernoulli struct {
	dist distuv.Bernoulli
}

// NewBernoulli creates a Bernoulli stream.
func NewBernoulli(p float64, seed uint64) *Bernoulli {
	return &Bernoulli{
		dist: distuv.Bernoulli{P: p, Src: newSource(seed)},
	}
}

// Next draws one trial.
func (b *Bernoulli) Next() bool {
	return b.dist.Rand() == 1
}
