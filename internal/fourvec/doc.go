// Package fourvec provides the energy-momentum four-vector used throughout
// the decay engine.
//
// A [FourVector] holds (E, px, py, pz) in MeV and uses the Minkowski metric
// with signature (+,-,-,-):
//
//   - [New]: bound-checked construction (|p_i| <= [MaxComponent])
//   - [FourVector.Add], [FourVector.Sub]: pure componentwise arithmetic
//   - [Dot]: Minkowski inner product
//   - [FourVector.InvariantMass]: sqrt(max(E^2-|p|^2, 0))
//
// # Example
//
//	p, err := fourvec.New(91187.6, 0, 0, 0)
//	if err != nil {
//	    return err
//	}
//	m := p.InvariantMass() // 91187.6
package fourvec
