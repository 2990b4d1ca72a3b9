package docml

import (
	"errors"
	"fmt"
)

// ErrMissingSection is the sentinel wrapped by MissingSectionError.
var ErrMissingSection = errors.New("missing section")

// MissingSectionError reports a mandatory section absent from the source.
type MissingSectionError struct {
	Section string
}

func (e *MissingSectionError) Error() string {
	return fmt.Sprintf("missing section ---%s---", e.Section)
}

func (e *MissingSectionError) Unwrap() error {
	return ErrMissingSection
}
