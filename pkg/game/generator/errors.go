package generator

import "errors"

var (
	// ErrNoPath indicates the corridor search gave up before reaching its target.
	ErrNoPath = errors.New("generator: no path between connection points")
	// ErrStartPlacement indicates the start room could not be sited at all.
	ErrStartPlacement = errors.New("generator: start room cannot be placed")
	// ErrInvalidConfig wraps profile validation failures.
	ErrInvalidConfig = errors.New("generator: invalid configuration")
	// ErrLayoutInvariant indicates a published layout breaks a structural rule.
	ErrLayoutInvariant = errors.New("generator: layout invariant violated")
)
