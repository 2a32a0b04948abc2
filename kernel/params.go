package kernel

import (
	"strings"

	"github.com/pkg/errors"
)

// OutsidePolicy decides how a kernel treats neighbors that fall outside the volume.
type OutsidePolicy int

const (
	// OutsideIgnore excludes outside neighbors from evaluation entirely.
	OutsideIgnore OutsidePolicy = iota
	// OutsideOn treats outside neighbors as on.
	OutsideOn
	// OutsideOff treats outside neighbors as off.
	OutsideOff
)

// ParseOutsidePolicy converts "ignore", "on" or "off" into a policy.
func ParseOutsidePolicy(s string) (OutsidePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore":
		return OutsideIgnore, nil
	case "on":
		return OutsideOn, nil
	case "off":
		return OutsideOff, nil
	default:
		return 0, errors.Errorf("unknown outside policy %q, expected one of ignore, on, off", s)
	}
}

func (p OutsidePolicy) String() string {
	switch p {
	case OutsideIgnore:
		return "ignore"
	case OutsideOn:
		return "on"
	case OutsideOff:
		return "off"
	default:
		return "unknown"
	}
}

// ApplicationParameters configures a single kernel application. It is an immutable value.
type ApplicationParameters struct {
	outside OutsidePolicy
	useZ    bool
}

// NewApplicationParameters returns parameters for the given outside policy. When useZ is
// false the neighborhood is restricted to the XY plane.
func NewApplicationParameters(outside OutsidePolicy, useZ bool) ApplicationParameters {
	return ApplicationParameters{outside: outside, useZ: useZ}
}

// Outside is the outside policy.
func (p ApplicationParameters) Outside() OutsidePolicy {
	return p.outside
}

// UseZ reports whether neighbors in adjacent z slices participate.
func (p ApplicationParameters) UseZ() bool {
	return p.useZ
}

// IgnoreOutside reports whether outside neighbors are excluded.
func (p ApplicationParameters) IgnoreOutside() bool {
	return p.outside == OutsideIgnore
}

// OutsideIsOn reports whether outside neighbors count as on. Only meaningful when not ignoring.
func (p ApplicationParameters) OutsideIsOn() bool {
	return p.outside == OutsideOn
}

// WindowSize is the number of z slices a kernel of the given size needs resident.
func (p ApplicationParameters) WindowSize(kernelSize int) int {
	if p.useZ {
		return kernelSize
	}
	return 1
}
