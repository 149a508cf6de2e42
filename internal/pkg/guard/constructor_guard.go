// Package guard holds ConstructorGuard, a marker that lets value objects
// detect that they were built as zero values instead of through their
// constructor.
package guard

import "errors"

var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded as a field and set by the owning constructor.
// The zero value reports "not constructed".
type ConstructorGuard struct {
	constructed bool
}

func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns err (or ErrDefaultConstructorGuard when err is nil) if the
// guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(err error) error {
	if g.constructed {
		return nil
	}
	if err == nil {
		return ErrDefaultConstructorGuard
	}
	return err
}
