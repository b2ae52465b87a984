package library

import (
	"github.com/mfigueroa/lectrack/internal/constants"
)

const dayFormat = "2006-01-02"

// recordActivity bumps today's engagement counter, capped to prevent
// inflation. Must be called with the lock held.
func (s *Store) recordActivity() {
	day := s.now().Format(dayFormat)
	if s.dailyActivity[day] >= constants.MaxDailyActivity {
		return
	}
	s.dailyActivity[day]++
	s.persist(constants.CollectionDailyActivity, s.dailyActivity)
}

// DailyActivity returns a copy of the per-day engagement counters.
func (s *Store) DailyActivity() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]int, len(s.dailyActivity))
	for k, v := range s.dailyActivity {
		out[k] = v
	}
	return out
}

// CurrentStreak counts consecutive days with activity ending today. A day
// without activity, including today, ends the streak.
func (s *Store) CurrentStreak() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	streak := 0
	day := s.now()
	for {
		if s.dailyActivity[day.Format(dayFormat)] <= 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
