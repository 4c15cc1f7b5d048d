package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skatedata/shorttrack/internal/domain/entities"
)

func validResult(skater, competition string, place int, timeStr string) entities.Result {
	return entities.Result{
		Skater:      skater,
		Competition: competition,
		Season:      "2023-2024",
		Date:        strPtr("2023-11-12"),
		Distance:    "500m",
		Category:    "Men",
		Place:       intPtr(place),
		Time:        strPtr(timeStr),
	}
}

func TestValidateCleanSet(t *testing.T) {
	svc := NewValidateService()

	rep := svc.Validate([]entities.Result{
		validResult("John Smith", "AmCup 1", 1, "0:42.123"),
		validResult("Aaron Tran", "AmCup 1", 2, "0:42.900"),
	})

	assert.Equal(t, 2, rep.TotalRecords)
	assert.Equal(t, 0, rep.Duplicates)
	assert.Empty(t, rep.OutOfRange)
	assert.Empty(t, rep.NameIssues)
	assert.Equal(t, 2, rep.TimeFormats["M:SS.mmm"])
	assert.Equal(t, 100.0, rep.Score)
	assert.Equal(t, "A", rep.Grade)
}

func TestValidateFieldStats(t *testing.T) {
	svc := NewValidateService()

	broken := validResult("", "AmCup 1", 1, "0:42.123")
	broken.Date = nil
	broken.Time = nil
	broken.Place = nil
	broken.Season = "unknown"

	rep := svc.Validate([]entities.Result{broken, validResult("Aaron Tran", "AmCup 1", 2, "0:42.900")})

	assert.Equal(t, 1, rep.Fields["skater"].Empty)
	assert.Equal(t, 1, rep.Fields["date"].Null)
	assert.Equal(t, 1, rep.Fields["time"].Null)
	assert.Equal(t, 1, rep.Fields["place"].Null)
	assert.Equal(t, 1, rep.UnknownSeason)
}

func TestValidateTimeFormats(t *testing.T) {
	svc := NewValidateService()

	rows := []entities.Result{
		validResult("A B", "AmCup 1", 1, "0:42.123"),
		validResult("C D", "AmCup 1", 2, "42.123"),
		validResult("E F", "AmCup 1", 3, "1:02:42.123"),
		validResult("G H", "AmCup 1", 4, "fast"),
	}

	rep := svc.Validate(rows)

	assert.Equal(t, 1, rep.TimeFormats["M:SS.mmm"])
	assert.Equal(t, 1, rep.TimeFormats["SS.mmm"])
	assert.Equal(t, 1, rep.TimeFormats["H:MM:SS.mmm"])
	assert.Equal(t, 1, rep.TimeFormats["other"])
}

func TestValidateOutOfRange(t *testing.T) {
	svc := NewValidateService()

	slow := validResult("John Smith", "AmCup 1", 1, "1:28.500")

	rep := svc.Validate([]entities.Result{slow, validResult("Aaron Tran", "AmCup 1", 2, "0:42.900")})

	require.Len(t, rep.OutOfRange, 1)
	issue := rep.OutOfRange[0]
	assert.Equal(t, "John Smith", issue.Skater)
	assert.Equal(t, "500m", issue.Distance)
	assert.InDelta(t, 88.5, issue.Seconds, 0.001)
	assert.Less(t, rep.Score, 100.0)
}

func TestValidateDuplicates(t *testing.T) {
	svc := NewValidateService()

	a := validResult("John Smith", "AmCup 1", 1, "0:42.123")
	rep := svc.Validate([]entities.Result{a, a, validResult("Aaron Tran", "AmCup 1", 2, "0:42.900")})

	assert.Equal(t, 1, rep.Duplicates)
}

func TestValidateNameIssues(t *testing.T) {
	svc := NewValidateService()

	dash := validResult("John Smith -", "AmCup 1", 1, "0:42.123")
	code := validResult("DNS", "AmCup 1", 2, "0:42.900")

	rep := svc.Validate([]entities.Result{dash, code})

	assert.Equal(t, []string{"DNS", "John Smith -"}, rep.NameIssues)
}

func TestValidateDistributions(t *testing.T) {
	svc := NewValidateService()

	a := validResult("A B", "AmCup 1", 1, "0:42.123")
	b := validResult("C D", "AmCup 1", 2, "0:42.900")
	b.Category = ""
	b.Season = ""

	rep := svc.Validate([]entities.Result{a, b})

	assert.Equal(t, 1, rep.Categories["Men"])
	assert.Equal(t, 1, rep.Categories["null"])
	assert.Equal(t, 1, rep.Seasons["2023-2024"])
	assert.Equal(t, 1, rep.Seasons["unknown"])
}

func TestValidateEmptySet(t *testing.T) {
	svc := NewValidateService()

	rep := svc.Validate(nil)

	assert.Equal(t, 0, rep.TotalRecords)
	assert.Equal(t, 0.0, rep.Score)
	assert.Equal(t, "F", rep.Grade)
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"},
		{90, "A"},
		{85, "B"},
		{72, "C"},
		{61, "D"},
		{40, "F"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, gradeFor(tt.score))
	}
}
