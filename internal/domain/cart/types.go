package cart

import "errors"

var ErrInvalidMode = errors.New("invalid cart line mode")

// Mode distinguishes an outright purchase from a timed rental.
type Mode string

const (
	ModeBuy  Mode = "buy"
	ModeRent Mode = "rent"
)

func (m Mode) String() string {
	return string(m)
}

func (m Mode) IsValid() bool {
	switch m {
	case ModeBuy, ModeRent:
		return true
	default:
		return false
	}
}

func NewMode(s string) (Mode, error) {
	mode := Mode(s)
	if !mode.IsValid() {
		return "", ErrInvalidMode
	}
	return mode, nil
}
