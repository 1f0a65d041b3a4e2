// Package analysis summarises decay trees and ensembles.
//
//   - [LeafEnergies]: final-state energies below a particle
//   - [EnergySpectrum]: fixed-width histogram of energies
//   - [ChannelFrequencies]: how often each channel was drawn
//   - [KinematicScatter]: cos(theta) against energy for final states
//
// A spectrum over many decays of one species:
//
//	var energies []float64
//	for _, p := range roots {
//	    energies = append(energies, analysis.LeafEnergies(p)...)
//	}
//	h := analysis.EnergySpectrum(energies, 40)
package analysis
