package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitionsParser_Parse(t *testing.T) {
	doc := `{
		"competitions": [
			{
				"date": "2018-11-10",
				"name": "AmCup 2",
				"season": "2018-2019",
				"races": [
					{
						"distance": "500m",
						"category": "Senior Men",
						"results": [
							{"place": 1, "name": "SMITH John", "club": "GSSC", "time": "42.123"},
							{"place": 2, "name": "TRAN Aaron", "club": null, "time": null}
						]
					}
				]
			}
		]
	}`

	comps, err := (&CompetitionsParser{}).Parse(strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, "AmCup 2", comps[0].Name)
	assert.Equal(t, "2018-2019", comps[0].Season)
	require.Len(t, comps[0].Races, 1)
	race := comps[0].Races[0]
	assert.Equal(t, "500m", race.Distance)
	require.Len(t, race.Results, 2)
	require.NotNil(t, race.Results[0].Place)
	assert.Equal(t, 1, *race.Results[0].Place)
	assert.Nil(t, race.Results[1].Time)
}

func TestCompetitionsParser_Invalid(t *testing.T) {
	_, err := (&CompetitionsParser{}).Parse(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestResultsParser_Parse(t *testing.T) {
	doc := `{
		"results": [
			{"rank": 1, "skater": "SMITH John", "time": "42.123", "distance": "500m",
			 "category": "SENIOR MEN", "competition": "AmCup 2", "date": "2018-11-10"},
			{"rank": 2, "skater": "TRAN Aaron", "time": "42.245", "distance": "500m",
			 "category": "SENIOR MEN", "competition": "AmCup 2", "date": null}
		]
	}`

	results, err := (&ResultsParser{}).Parse(strings.NewReader(doc))

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "SMITH John", results[0].Skater)
	require.NotNil(t, results[0].Date)
	assert.Equal(t, "2018-11-10", *results[0].Date)
	assert.Nil(t, results[1].Date)
}
