package particle

import "errors"

var (
	ErrInvalidColourPair = errors.New("particle: gluon needs one colour and one anticolour")
	ErrInvalidColour     = errors.New("particle: quark colour must not be neutral")
	ErrNonPositiveMass   = errors.New("particle: rest mass must be positive")
	ErrInvalidCharge     = errors.New("particle: W charge must be +1 or -1")
	ErrInvalidFlavour    = errors.New("particle: flavour does not match particle kind")
)
