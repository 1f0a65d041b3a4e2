package particle

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/decaysim/internal/conservation"
	"github.com/san-kum/decaysim/internal/kinematics"
)

// Recorder receives decay outcomes. metrics.Recorder implements it.
type Recorder interface {
	Decayed(typ, channel string)
	Redistributed(typ string, res kinematics.Result)
	Violated(v conservation.Violation)
}

// Decayer runs decays with one random source. It is not safe for
// concurrent use; give each goroutine its own.
type Decayer struct {
	seed          int64
	rng           *rand.Rand
	redist        *kinematics.Redistributor
	validator     *conservation.Validator
	logger        *zap.Logger
	recorder      Recorder
	maxIterations int
	tolerance     float64
	basis         kinematics.Basis
	massTolerance float64
}

type Option func(*Decayer)

// WithSeed fixes the random source. Zero selects a time based seed.
func WithSeed(seed int64) Option { return func(d *Decayer) { d.seed = seed } }

func WithRand(rng *rand.Rand) Option { return func(d *Decayer) { d.rng = rng } }

func WithLogger(l *zap.Logger) Option {
	return func(d *Decayer) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithRecorder(r Recorder) Option { return func(d *Decayer) { d.recorder = r } }

func WithMaxIterations(n int) Option { return func(d *Decayer) { d.maxIterations = n } }

func WithTolerance(tol float64, basis kinematics.Basis) Option {
	return func(d *Decayer) {
		d.tolerance = tol
		d.basis = basis
	}
}

func WithMassTolerance(tol float64) Option { return func(d *Decayer) { d.massTolerance = tol } }

func WithValidator(v *conservation.Validator) Option { return func(d *Decayer) { d.validator = v } }

func NewDecayer(opts ...Option) *Decayer {
	d := &Decayer{
		logger:        zap.NewNop(),
		maxIterations: kinematics.DefaultMaxIterations,
		tolerance:     kinematics.DefaultTolerance,
		basis:         kinematics.TargetBasis,
		massTolerance: conservation.DefaultMassTolerance,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.rng == nil {
		seed := d.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		d.rng = rand.New(rand.NewSource(seed))
	}
	d.redist = kinematics.NewRedistributor(d.seed).WithRand(d.rng)
	d.redist.MaxIterations = d.maxIterations
	d.redist.Tolerance = d.tolerance
	d.redist.Basis = d.basis
	if d.validator == nil {
		d.validator = conservation.NewValidator(d.massTolerance)
	}
	return d
}

func decayWith(d *Decayer, p Particle) *Report {
	if d == nil {
		d = NewDecayer()
	}
	return d.Decay(p)
}

// Decay draws a channel for p and builds its products. Calling it on a
// particle that already has products appends a second set; use Redecay
// to replace them.
func (d *Decayer) Decay(p Particle) *Report {
	rep := &Report{Type: p.Type()}
	channels := ChannelsFor(p)
	if len(channels) == 0 {
		rep.Stable = true
		return rep
	}

	ch := Select(channels, d.rng.Float64())
	p.base().channel = ch.Label
	rep.Channel, rep.Group = ch.Label, ch.Group
	if ch.Borrowed != nil {
		rep.Borrowed = ch.Borrowed(p)
	}

	products := ch.Build(p)
	bodies := make([]kinematics.Body, len(products))
	for i, c := range products {
		p.AddProduct(c)
		bodies[i] = c
	}
	rep.Redistribution = d.redist.Distribute(bodies, p.Momentum(), rep.Borrowed)

	for _, c := range products {
		if e, ok := c.(*Electron); ok {
			e.AdjustDeposits()
		}
		rep.Products = append(rep.Products, c.Type())
	}
	for _, c := range products {
		if !c.Stable() {
			rep.Subdecays = append(rep.Subdecays, d.Decay(c))
		}
	}

	quanta := make([]conservation.Quanta, len(products))
	for i, c := range products {
		quanta[i] = c
		rep.Notices = append(rep.Notices, c.Notices()...)
	}
	rep.Violations = d.validator.Validate(p, quanta, rep.Borrowed)

	d.observe(rep)
	return rep
}

// Redecay discards the products of p and decays it again.
func (d *Decayer) Redecay(p Particle) *Report {
	p.ClearProducts()
	return d.Decay(p)
}

func (d *Decayer) observe(rep *Report) {
	d.logger.Debug("decayed",
		zap.String("type", rep.Type),
		zap.String("channel", rep.Channel),
		zap.Strings("products", rep.Products),
		zap.Int("iterations", rep.Redistribution.Iterations),
	)
	if !rep.Redistribution.Converged {
		d.logger.Warn("energy-momentum redistribution did not converge",
			zap.String("type", rep.Type),
			zap.String("channel", rep.Channel),
			zap.Int("iterations", rep.Redistribution.Iterations),
		)
	}
	for _, v := range rep.Violations {
		d.logger.Warn("conservation check failed",
			zap.String("type", rep.Type),
			zap.String("channel", rep.Channel),
			zap.String("check", v.Check),
			zap.String("expected", v.Expected),
			zap.String("actual", v.Actual),
		)
	}

	if d.recorder == nil {
		return
	}
	d.recorder.Decayed(rep.Type, rep.Channel)
	d.recorder.Redistributed(rep.Type, rep.Redistribution)
	for _, v := range rep.Violations {
		d.recorder.Violated(v)
	}
}
