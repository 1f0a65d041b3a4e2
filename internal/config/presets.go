package config

import "sort"

var electronDeposits = []float64{0.1, 0.2, 0.15, 0.05}

// demoRoster is the reference catalogue. The first muon is far out of
// range and the anti-down quark starts with the wrong colour.
var demoRoster = []ParticleSpec{
	{Name: "electron", Type: "Electron", Px: 1, Py: 2, Pz: 3, Deposits: electronDeposits},
	{Type: "AntiElectron", Px: 1, Py: 2, Pz: 3, Deposits: electronDeposits},
	{Type: "Muon", Px: 1e13, Py: 3.5e10, Pz: 3, Isolated: true},
	{Type: "Muon", Px: 1, Py: 2, Pz: 3, Isolated: true},
	{Type: "AntiMuon", Px: 454, Py: 2546, Pz: 46},
	{Type: "Tau", Px: 24, Py: 256, Pz: 34, Decay: true},
	{Type: "AntiTau", Px: 24, Py: 256, Pz: 34, Decay: true},
	{Type: "ElectronNeutrino", Px: 23, Py: 4, Pz: 2, Interacted: true},
	{Type: "AntiElectronNeutrino", Px: 35, Py: 4, Pz: 2},
	{Type: "MuonNeutrino", Px: 35, Py: 4, Pz: 2, Interacted: true},
	{Type: "AntiMuonNeutrino", Px: 35, Py: 4, Pz: 2},
	{Type: "TauNeutrino", Px: 57, Py: 44, Pz: 27},
	{Type: "AntiTauNeutrino", Px: 6, Py: 42, Pz: 21},
	{Type: "UpQuark", Px: 1, Py: 2, Pz: 3, Colour: "Green"},
	{Type: "AntiUpQuark", Px: 1, Py: 2.46, Pz: 75, Colour: "AntiRed"},
	{Type: "DownQuark", Px: 1, Py: 2, Pz: 3, Colour: "Green"},
	{Type: "AntiDownQuark", Px: 1, Py: 2.46, Pz: 75, Colour: "Blue"},
	{Type: "CharmQuark", Px: 1, Py: 2, Pz: 3, Colour: "Green"},
	{Type: "AntiCharmQuark", Px: 1, Py: 2.46, Pz: 75, Colour: "AntiRed"},
	{Type: "StrangeQuark", Px: 1, Py: 2, Pz: 3, Colour: "Green"},
	{Type: "AntiStrangeQuark", Px: 1, Py: 2.46, Pz: 75, Colour: "AntiRed"},
	{Type: "TopQuark", Px: 1, Py: 2, Pz: 3, Colour: "Green"},
	{Type: "AntiTopQuark", Px: 1, Py: 2.46, Pz: 75, Colour: "AntiRed"},
	{Type: "BottomQuark", Px: 1, Py: 2, Pz: 3, Colour: "Green"},
	{Type: "AntiBottomQuark", Px: 1, Py: 2.46, Pz: 75, Colour: "AntiRed"},
	{Type: "Photon", Px: 105, Py: 407, Pz: 7},
	{Type: "W+", Px: 1, Py: 4, Pz: 7, Decay: true},
	{Name: "w_minus", Type: "W-", Px: 10, Py: 76, Pz: 82, Decay: true},
	{Type: "W-", Px: 204, Py: 676, Pz: 78, Decay: true},
	{Type: "W-", Px: 4326, Py: 325, Pz: 9, Decay: true},
	{Name: "z", Type: "ZBoson", Px: 190, Py: 423, Pz: 780, Decay: true},
	{Type: "HiggsBoson", Px: 200, Py: 300, Pz: 900, Decay: true},
	{Type: "HiggsBoson", Px: 2004, Py: 334, Pz: 754, Decay: true},
	{Type: "Gluon", Px: 4, Py: 7, Pz: 2, Colour: "Green", Anticolour: "AntiGreen"},
}

var presets = map[string][]ParticleSpec{
	"demo": demoRoster,
	"bosons": {
		{Type: "W+", Px: 1, Py: 4, Pz: 7, Decay: true},
		{Type: "W-", Px: 10, Py: 76, Pz: 82, Decay: true},
		{Type: "ZBoson", Px: 190, Py: 423, Pz: 780, Decay: true},
		{Type: "Photon", Px: 105, Py: 407, Pz: 7},
		{Type: "Gluon", Px: 4, Py: 7, Pz: 2, Colour: "Red", Anticolour: "AntiBlue"},
	},
	"leptons": {
		{Type: "Electron", Px: 1, Py: 2, Pz: 3, Deposits: electronDeposits},
		{Type: "AntiMuon", Px: 454, Py: 2546, Pz: 46},
		{Type: "Tau", Px: 24, Py: 256, Pz: 34, Decay: true},
		{Type: "AntiTau", Px: 24, Py: 256, Pz: 34, Decay: true},
		{Type: "TauNeutrino", Px: 57, Py: 44, Pz: 27},
	},
	"higgs": {
		{Type: "HiggsBoson", Decay: true},
		{Type: "HiggsBoson", Px: 200, Py: 300, Pz: 900, Decay: true},
		{Type: "HiggsBoson", Px: 2004, Py: 334, Pz: 754, Decay: true},
	},
}

// GetPreset returns the default configuration seeded with the named
// roster, or nil when no such preset exists.
func GetPreset(name string) *Config {
	roster, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Particles = make([]ParticleSpec, len(roster))
	copy(cfg.Particles, roster)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
