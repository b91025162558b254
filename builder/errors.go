package builder

import "errors"

var (
	ErrUnsupportedEndian = errors.New("unsupported endianness")
	ErrDerivationCycle   = errors.New("peripherals derive from each other")
	ErrNoDevice          = errors.New("no device to load")
	ErrNoDatabase        = errors.New("no program database")
)
