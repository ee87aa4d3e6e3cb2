package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Sample accumulates observations of a single quantity, such as rounds per
// match
type Sample struct {
	Count  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // Store all values for median/percentile calculation
}

// Add incorporates an observation
func (s *Sample) Add(v float64) {
	s.Count++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	return max(0, (s.SumSq-float64(s.Count)*mean*mean)/float64(s.Count-1))
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median value
func (s *Sample) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0),
// interpolating between neighbours
func (s *Sample) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Min returns the smallest value
func (s *Sample) Min() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return slices.Min(s.Values)
}

// Max returns the largest value
func (s *Sample) Max() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return slices.Max(s.Values)
}

func (s *Sample) sorted() []float64 {
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)
	return sorted
}

// MatchResult represents the outcome of a single simulated match
type MatchResult struct {
	Seed          int64 // RNG seed for this match (for replay)
	WinnerSeat    int
	Rounds        int
	Totals        []int // Final cumulative totals in seat order
	Busts         int
	Freezes       int
	Stays         int
	SecondChances int
}

// Summary aggregates many match results for a fixed set of seats
type Summary struct {
	Matches int
	Wins    []int    // Indexed by seat
	Rounds  Sample   // Rounds per match
	Scores  []Sample // Final total per seat

	Busts         int
	Freezes       int
	Stays         int
	SecondChances int
}

// NewSummary creates an empty summary for the given number of seats
func NewSummary(seats int) *Summary {
	return &Summary{
		Wins:   make([]int, seats),
		Scores: make([]Sample, seats),
	}
}

// Add incorporates a match result
func (s *Summary) Add(result MatchResult) {
	s.Matches++
	if result.WinnerSeat >= 0 && result.WinnerSeat < len(s.Wins) {
		s.Wins[result.WinnerSeat]++
	}
	s.Rounds.Add(float64(result.Rounds))
	for seat, total := range result.Totals {
		if seat < len(s.Scores) {
			s.Scores[seat].Add(float64(total))
		}
	}

	s.Busts += result.Busts
	s.Freezes += result.Freezes
	s.Stays += result.Stays
	s.SecondChances += result.SecondChances
}

// WinRate returns the fraction of matches won by seat
func (s *Summary) WinRate(seat int) float64 {
	if s.Matches == 0 || seat < 0 || seat >= len(s.Wins) {
		return 0
	}
	return float64(s.Wins[seat]) / float64(s.Matches)
}

// BustsPerRound returns the average number of busts in a round
func (s *Summary) BustsPerRound() float64 {
	if s.Rounds.Sum == 0 {
		return 0
	}
	return float64(s.Busts) / s.Rounds.Sum
}

// Validate checks that the aggregates are consistent
func (s *Summary) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid match count: %d", s.Matches)
	}

	totalWins := 0
	for _, w := range s.Wins {
		totalWins += w
	}
	if totalWins != s.Matches {
		return fmt.Errorf("total wins (%d) does not match total matches (%d)", totalWins, s.Matches)
	}

	if s.Rounds.Count != s.Matches {
		return fmt.Errorf("rounds sample size (%d) does not match total matches (%d)", s.Rounds.Count, s.Matches)
	}
	if s.Rounds.Min() < 1 {
		return fmt.Errorf("a match finished in %v rounds", s.Rounds.Min())
	}

	return nil
}
