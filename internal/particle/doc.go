// Package particle implements decay-tree nodes and the decay engine.
//
// Every concrete species is a pointer type satisfying Particle. A node owns
// its products exclusively; the tree is extended only through AddProduct
// and a Decayer. A Decayer draws one channel per decay from the species'
// cumulative table, builds the products, redistributes the parent's
// four-momentum over them, decays unstable products recursively and
// validates conservation on the direct products. Construction failures are
// returned as errors; everything that goes wrong after construction is
// reported in a Report.
package particle
