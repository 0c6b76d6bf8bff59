package cassowary

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrengthOrdering(t *testing.T) {
	require.True(t, Weak < Medium)
	require.True(t, Medium < Strong)
	require.True(t, Strong < Required)
}

func TestStrengthLexicographicDominance(t *testing.T) {
	// The encoding guarantees ordering only while every individual level
	// stays below 1000 (spec's clamp proviso): a higher-level
	// contribution then outweighs any lower-level one.
	strong := NewStrength(1, 0, 0)
	mediumAndWeak := NewStrength(0, 500, 999)
	require.True(t, mediumAndWeak < strong)

	medium := NewStrength(0, 1, 0)
	weak := NewStrength(0, 0, 999)
	require.True(t, weak < medium)
}

func TestStrengthClip(t *testing.T) {
	require.Equal(t, Strength(0), Strength(-5).Clip())
	require.Equal(t, Required, (Required + 1).Clip())
	require.Equal(t, Strong, Strong.Clip())
}

func TestStrengthRequiredValue(t *testing.T) {
	require.InDelta(t, 1.001001e9, float64(Required), 1)
}

func TestStrengthWeight(t *testing.T) {
	base := NewStrength(1, 2, 3)
	doubled := NewStrength(1, 2, 3, 2)
	require.True(t, doubled > base)
}

func TestStrengthString(t *testing.T) {
	require.Equal(t, "required", Required.String())
	require.Equal(t, "strong", Strong.String())
	require.Equal(t, "medium", Medium.String())
	require.Equal(t, "weak", Weak.String())
}
