package domain

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// VersionRange is a semantic version constraint such as "^1.2.0" or ">=1.0.0, <2.0.0".
// The zero value accepts every version.
type VersionRange struct {
	raw         string
	constraints *semver.Constraints
}

// ParseVersionRange parses a constraint expression.
func ParseVersionRange(s string) (VersionRange, error) {
	if s == "" {
		return VersionRange{}, nil
	}
	c, err := semver.NewConstraint(s)
	if err != nil {
		return VersionRange{}, zerr.With(zerr.Wrap(ErrInvalidVersionRange, err.Error()), "range", s)
	}
	return VersionRange{raw: s, constraints: c}, nil
}

// MustParseVersionRange is like ParseVersionRange but panics on error.
func MustParseVersionRange(s string) VersionRange {
	r, err := ParseVersionRange(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Allows reports whether v satisfies the range.
func (r VersionRange) Allows(v *semver.Version) bool {
	if v == nil {
		return false
	}
	if r.constraints == nil {
		return true
	}
	return r.constraints.Check(v)
}

// String returns the range as written.
func (r VersionRange) String() string {
	if r.raw == "" {
		return "*"
	}
	return r.raw
}

// MarshalJSON encodes the range as its original string.
func (r VersionRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a range from a JSON string.
func (r *VersionRange) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return zerr.Wrap(err, ErrInvalidVersionRange.Error())
	}
	parsed, err := ParseVersionRange(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseVersion parses a concrete semantic version.
func ParseVersion(s string) (*semver.Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(ErrInvalidVersion, err.Error()), "version", s)
	}
	return v, nil
}
