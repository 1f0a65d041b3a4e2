package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/san-kum/decaysim/internal/fourvec"
	"github.com/san-kum/decaysim/internal/particle"
)

var (
	ErrNilParticle = errors.New("catalogue: nil particle")
	ErrDuplicate   = errors.New("catalogue: particle already registered")
	ErrNameTaken   = errors.New("catalogue: name already in use")
)

// Entry is a registered catalogue root.
type Entry struct {
	ID       uuid.UUID
	Name     string
	Particle particle.Particle
}

// Catalogue indexes catalogue roots by type. It does not own the particles
// and is not safe for concurrent mutation.
type Catalogue struct {
	entries map[uuid.UUID]*Entry
	order   []uuid.UUID
	byType  map[string][]uuid.UUID
	names   map[string]uuid.UUID
	logger  *zap.Logger
}

type Option func(*Catalogue)

func WithLogger(l *zap.Logger) Option {
	return func(c *Catalogue) {
		if l != nil {
			c.logger = l
		}
	}
}

func New(opts ...Option) *Catalogue {
	c := &Catalogue{
		entries: make(map[uuid.UUID]*Entry),
		byType:  make(map[string][]uuid.UUID),
		names:   make(map[string]uuid.UUID),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalogue) Add(p particle.Particle) (uuid.UUID, error) {
	return c.AddNamed("", p)
}

// AddNamed registers p under an optional unique name.
func (c *Catalogue) AddNamed(name string, p particle.Particle) (uuid.UUID, error) {
	if p == nil {
		return uuid.Nil, ErrNilParticle
	}
	for _, e := range c.entries {
		if e.Particle == p {
			return uuid.Nil, fmt.Errorf("%s: %w", p.Type(), ErrDuplicate)
		}
	}
	if name != "" {
		if _, ok := c.names[name]; ok {
			return uuid.Nil, fmt.Errorf("%q: %w", name, ErrNameTaken)
		}
	}

	id := uuid.New()
	c.entries[id] = &Entry{ID: id, Name: name, Particle: p}
	c.order = append(c.order, id)
	c.byType[p.Type()] = append(c.byType[p.Type()], id)
	if name != "" {
		c.names[name] = id
	}
	return id, nil
}

// Create runs factory and registers the result. A factory error is logged
// and returned; nothing is registered.
func (c *Catalogue) Create(factory func() (particle.Particle, error)) (particle.Particle, error) {
	return c.CreateNamed("", factory)
}

func (c *Catalogue) CreateNamed(name string, factory func() (particle.Particle, error)) (particle.Particle, error) {
	p, err := factory()
	if err != nil {
		c.logger.Warn("particle not created", zap.Error(err))
		return nil, err
	}
	if _, err := c.AddNamed(name, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Catalogue) Remove(id uuid.UUID) bool {
	e, ok := c.entries[id]
	if !ok {
		return false
	}
	delete(c.entries, id)
	c.order = deleteID(c.order, id)

	typ := e.Particle.Type()
	c.byType[typ] = deleteID(c.byType[typ], id)
	if len(c.byType[typ]) == 0 {
		delete(c.byType, typ)
	}
	if e.Name != "" {
		delete(c.names, e.Name)
	}
	return true
}

func deleteID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (c *Catalogue) Get(id uuid.UUID) (particle.Particle, bool) {
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	return e.Particle, true
}

func (c *Catalogue) Named(name string) (particle.Particle, bool) {
	id, ok := c.names[name]
	if !ok {
		return nil, false
	}
	return c.Get(id)
}

// ByType returns the roots of exactly typ in insertion order.
func (c *Catalogue) ByType(typ string) []particle.Particle {
	ids := c.byType[typ]
	out := make([]particle.Particle, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.entries[id].Particle)
	}
	return out
}

// Lookup resolves name against the registered types case-insensitively and
// returns the canonical type with its roots.
func (c *Catalogue) Lookup(name string) (string, []particle.Particle, bool) {
	fold := cases.Fold()
	key := fold.String(name)
	for typ := range c.byType {
		if fold.String(typ) == key {
			return typ, c.ByType(typ), true
		}
	}
	return "", nil, false
}

func (c *Catalogue) Types() []string {
	types := make([]string, 0, len(c.byType))
	for typ := range c.byType {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

func (c *Catalogue) Count(typ string) int { return len(c.byType[typ]) }

func (c *Catalogue) Len() int { return len(c.order) }

// Each visits the entries in insertion order.
func (c *Catalogue) Each(fn func(Entry)) {
	for _, id := range c.order {
		fn(*c.entries[id])
	}
}

type Summary struct {
	Roots              int
	Descendants        int
	ByType             map[string]int
	RootMomentum       fourvec.FourVector
	RootMass           float64
	DescendantMomentum fourvec.FourVector
	DescendantMass     float64
}

func (c *Catalogue) Summary() Summary {
	s := Summary{ByType: make(map[string]int, len(c.byType))}
	for typ, ids := range c.byType {
		s.ByType[typ] = len(ids)
	}
	roots := fourvec.Zero()
	desc := fourvec.Zero()
	c.Each(func(e Entry) {
		s.Roots++
		s.Descendants += e.Particle.TotalDecayProducts()
		roots = roots.Add(e.Particle.Momentum())
		desc = desc.Add(e.Particle.SumDescendantFourMomentum())
	})
	s.RootMomentum, s.RootMass = roots, roots.InvariantMass()
	s.DescendantMomentum, s.DescendantMass = desc, desc.InvariantMass()
	return s
}
