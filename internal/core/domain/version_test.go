package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/core/domain"
)

func TestParseVersionRange(t *testing.T) {
	r, err := domain.ParseVersionRange(">=1.0.0, <2.0.0")
	require.NoError(t, err)

	assert.True(t, r.Allows(semver.MustParse("1.5.0")))
	assert.False(t, r.Allows(semver.MustParse("2.0.0")))
	assert.False(t, r.Allows(nil))
	assert.Equal(t, ">=1.0.0, <2.0.0", r.String())
}

func TestParseVersionRange_Invalid(t *testing.T) {
	_, err := domain.ParseVersionRange("not a range")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidVersionRange)
}

func TestVersionRange_ZeroValue(t *testing.T) {
	var r domain.VersionRange

	assert.True(t, r.Allows(semver.MustParse("0.0.1")))
	assert.Equal(t, "*", r.String())
}

func TestVersionRange_UnmarshalInvalid(t *testing.T) {
	var r domain.VersionRange

	err := json.Unmarshal([]byte(`"~~1"`), &r)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidVersionRange)

	err = json.Unmarshal([]byte(`12`), &r)
	require.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	v, err := domain.ParseVersion("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	_, err = domain.ParseVersion("one")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidVersion)
}
