package reactor

import "errors"

var (
	ErrInvalidGeometry = errors.New("reactor: invalid geometry")
	ErrInvalidMaterial = errors.New("reactor: invalid wall material")
)
