package tmdbcsv

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(id, votes, avg string) Row {
	return Row{ID: id, Title: "Movie " + id, VoteCount: votes, VoteAverage: avg}
}

func ids(cs []Candidate) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = c.MovieID
	}
	return out
}

func TestRankFiltersAndSorts(t *testing.T) {
	rows := []Row{
		row("1", "1000", "9.9"), // exactly the threshold: excluded
		row("2", "1001", "7.0"),
		row("3", "5415.0", "8.3"),
		row("4", "20", "10"),
		row("5", "2500", "8.45"),
	}

	got, stats := Rank(rows, 1000, 250)

	assert.Equal(t, RankStats{}, stats)
	assert.Equal(t, []int{5, 3, 2}, ids(got))
}

func TestRankBreaksTiesByID(t *testing.T) {
	rows := []Row{
		row("30", "2000", "8.0"),
		row("10", "2000", "8.0"),
		row("20", "2000", "8.00"),
	}

	got, _ := Rank(rows, 1000, 250)

	assert.Equal(t, []int{10, 20, 30}, ids(got))
}

func TestRankKeepsFirstOccurrenceOfID(t *testing.T) {
	rows := []Row{
		row("141971", "5000", "7.0"),
		row("10", "2000", "8.0"),
		row("141971", "5000", "7.0"),
		row("10", "3000", "8.0"),
		row("99", "4000", "6.0"),
		row("99", "4000", "9.0"), // better-ranked copy wins
	}

	got, stats := Rank(rows, 1000, 250)

	assert.Equal(t, []int{99, 10, 141971}, ids(got))
	assert.Equal(t, 3, stats.Duplicates)
	assert.Equal(t, 0, stats.Skipped)
	assert.Equal(t, 2000.0, got[1].Votes)
	assert.EqualValues(t, 9, got[0].Average.IntPart())
}

func TestRankLimitCountsUniqueIDs(t *testing.T) {
	rows := []Row{
		row("1", "5000", "9.0"),
		row("1", "5000", "9.0"),
		row("2", "5000", "8.0"),
	}

	got, stats := Rank(rows, 1000, 2)

	assert.Equal(t, []int{1, 2}, ids(got))
	assert.Equal(t, 1, stats.Duplicates)
}

func TestRankSkipsUnparsableRows(t *testing.T) {
	rows := []Row{
		row("1997-08-20", "5000", "7.0"),
		row("2", "", "7.0"),
		row("3", "5000", "n/a"),
		row("4", "5000", "7.0"),
	}

	got, stats := Rank(rows, 1000, 250)

	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, []int{4}, ids(got))
}

func TestRankTruncates(t *testing.T) {
	rows := make([]Row, 0, 300)
	for i := 1; i <= 300; i++ {
		rows = append(rows, row(strconv.Itoa(i), "5000", "7.5"))
	}

	got, _ := Rank(rows, 1000, 250)
	assert.Len(t, got, 250)
	assert.Equal(t, 1, got[0].MovieID)
	assert.Equal(t, 250, got[249].MovieID)

	got, _ = Rank(rows, 1000, 0)
	assert.Empty(t, got)
}
