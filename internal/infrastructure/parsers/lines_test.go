package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineParser_HeaderThenResult(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("500M JUNIOR A"))
	r := p.ParseLine("1 123 SMITH JOHN GSSC 42.123")

	require.NotNil(t, r)
	assert.Equal(t, 1, r.Rank)
	assert.Contains(t, r.Skater, "SMITH JOHN")
	assert.Equal(t, "42.123", r.Time)
	assert.Equal(t, "500m", r.Distance)
	assert.Equal(t, "JUNIOR A", r.Category)
	assert.Equal(t, "Test Meet", r.Competition)
}

func TestLineParser_NoResultBeforeDistanceMarker(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	assert.Nil(t, p.ParseLine("1 SMITH JOHN 42.123"))
}

func TestLineParser_CategoryHeaderUpdatesState(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("1500M"))
	require.Nil(t, p.ParseLine("SENIOR WOMEN"))
	r := p.ParseLine("2 DOE JANE PSSC 2:38.840")

	require.NotNil(t, r)
	assert.Equal(t, "1500m", r.Distance)
	assert.Equal(t, "SENIOR WOMEN", r.Category)
	assert.Equal(t, "2:38.840", r.Time)
}

func TestLineParser_UnknownCategoryDefault(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("1000M"))
	r := p.ParseLine("3 TRAN AARON 1:27.792")

	require.NotNil(t, r)
	assert.Equal(t, "Unknown", r.Category)
}

func TestLineParser_DistancePersistsAcrossRows(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("500M MEN"))
	first := p.ParseLine("1 SMITH JOHN 41.900")
	second := p.ParseLine("2 JONES ALICE 42.100")

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, "500m", first.Distance)
	assert.Equal(t, "500m", second.Distance)
}

func TestLineParser_IgnoresNoise(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("500M MEN"))
	assert.Nil(t, p.ParseLine(""))
	assert.Nil(t, p.ParseLine("Official Results"))
	assert.Nil(t, p.ParseLine("1 SMITH JOHN"))   // no time
	assert.Nil(t, p.ParseLine("750M JUNIOR C")) // not a marker distance, no place
}

func TestLineParser_NonMarkerDistanceIgnored(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("800M WOMEN")) // 800 is not a marker distance
	assert.Nil(t, p.ParseLine("1 SMITH JOHN 42.123"))
}

func TestLineParser_BibAndShortCodesStripped(t *testing.T) {
	p := NewLineParser("Test Meet", nil)

	require.Nil(t, p.ParseLine("500M MEN"))
	r := p.ParseLine("4 207 NGUYEN MINH SSC 43.001")

	require.NotNil(t, r)
	assert.Equal(t, "NGUYEN MINH", r.Skater)
}
