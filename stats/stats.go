package stats

import (
	"sort"
	"sync"
	"time"
)

// MaxRecords bounds the recent history kept for the stats panel
const MaxRecords = 100

// GameRecord is one finished session
type GameRecord struct {
	Session   string    `json:"session"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
}

func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// GameStats aggregates the sessions played by this process. Nothing is written to disk.
type GameStats struct {
	games []GameRecord

	played        int
	totalScore    int
	maxScore      int
	totalDuration time.Duration

	mutex sync.RWMutex
}

func NewGameStats() *GameStats {
	return &GameStats{
		games: make([]GameRecord, 0),
	}
}

// AddGame records a finished session
func (s *GameStats) AddGame(session string, score int, startTime, endTime time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	record := GameRecord{
		Session:   session,
		StartTime: startTime,
		EndTime:   endTime,
		Score:     score,
	}
	if len(s.games) == MaxRecords {
		s.games = s.games[1:]
	}
	s.games = append(s.games, record)

	s.played++
	s.totalScore += score
	s.totalDuration += record.Duration()
	if score > s.maxScore {
		s.maxScore = score
	}
}

func (s *GameStats) GetGamesPlayed() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.played
}

func (s *GameStats) GetAverageScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.played == 0 {
		return 0
	}
	return float64(s.totalScore) / float64(s.played)
}

// GetMedianScore is computed over the recent history only
func (s *GameStats) GetMedianScore() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if len(s.games) == 0 {
		return 0
	}
	scores := make([]int, len(s.games))
	for i, g := range s.games {
		scores[i] = g.Score
	}
	sort.Ints(scores)

	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return float64(scores[mid-1]+scores[mid]) / 2
	}
	return float64(scores[mid])
}

func (s *GameStats) GetMaxScore() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.maxScore
}

func (s *GameStats) GetAverageDuration() time.Duration {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.played == 0 {
		return 0
	}
	return s.totalDuration / time.Duration(s.played)
}

// Recent returns up to n of the latest records, oldest first
func (s *GameStats) Recent(n int) []GameRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if n > len(s.games) {
		n = len(s.games)
	}
	out := make([]GameRecord, n)
	copy(out, s.games[len(s.games)-n:])
	return out
}
