package tmdbcsv

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Candidate is a row whose ranking columns parsed.
type Candidate struct {
	Row
	MovieID int
	Votes   float64
	Average decimal.Decimal
	index   int // position in the file, last tie-break
}

// RankStats counts the rows Rank dropped besides the vote filter and the limit.
type RankStats struct {
	Skipped    int // id, vote_count or vote_average did not parse
	Duplicates int // id already taken by a better-ranked row
}

// Rank keeps rows with more than minVotes votes, orders them by vote average
// descending, breaks ties by id ascending then file order, drops repeated ids
// after their first occurrence, and keeps at most limit.
// Parameters:
//   - rows: loaded CSV rows.
//   - minVotes: exclusive lower bound on vote_count.
//   - limit: maximum number of rows kept; <= 0 keeps none.
// Returns:
//   - []Candidate: selected rows in output order, ids unique.
//   - RankStats: unparsable and duplicate row counts.
func Rank(rows []Row, minVotes, limit int) ([]Candidate, RankStats) {
	var stats RankStats
	candidates := make([]Candidate, 0, len(rows))

	for i, row := range rows {
		c, ok := toCandidate(row, i)
		if !ok {
			stats.Skipped++
			continue
		}
		if c.Votes > float64(minVotes) {
			candidates = append(candidates, c)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if cmp := a.Average.Cmp(b.Average); cmp != 0 {
			return cmp > 0
		}
		if a.MovieID != b.MovieID {
			return a.MovieID < b.MovieID
		}
		return a.index < b.index
	})

	seen := make(map[int]struct{}, len(candidates))
	unique := candidates[:0]
	for _, c := range candidates {
		if _, dup := seen[c.MovieID]; dup {
			stats.Duplicates++
			continue
		}
		seen[c.MovieID] = struct{}{}
		unique = append(unique, c)
	}
	candidates = unique

	if limit < 0 {
		limit = 0
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, stats
}

func toCandidate(row Row, index int) (Candidate, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(row.ID))
	if err != nil {
		return Candidate{}, false
	}
	votes, err := strconv.ParseFloat(strings.TrimSpace(row.VoteCount), 64)
	if err != nil {
		return Candidate{}, false
	}
	avg, err := decimal.NewFromString(strings.TrimSpace(row.VoteAverage))
	if err != nil {
		return Candidate{}, false
	}
	return Candidate{
		Row:     row,
		MovieID: id,
		Votes:   votes,
		Average: avg,
		index:   index,
	}, true
}
