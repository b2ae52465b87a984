package library

import (
	"testing"
	"time"

	"github.com/mfigueroa/lectrack/internal/constants"
	"github.com/mfigueroa/lectrack/internal/domain"
)

func TestCurrentStreak(t *testing.T) {
	base := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		activeOn []int // days ago with recorded activity
		want     int
	}{
		{"no activity", nil, 0},
		{"today only", []int{0}, 1},
		{"today and yesterday", []int{0, 1}, 2},
		{"gap yesterday", []int{0, 2, 3}, 1},
		{"ended yesterday", []int{1, 2, 3}, 0},
		{"five day run", []int{0, 1, 2, 3, 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			v := s.AddVideo(domain.Video{Title: "Lecture", Instructor: "Ada", Category: "Math"})
			for _, ago := range tt.activeOn {
				day := base.AddDate(0, 0, -ago)
				s.SetNow(func() time.Time { return day })
				s.AddBookmark(v.ID, ago, "checkpoint")
			}
			s.SetNow(func() time.Time { return base })

			if got := s.CurrentStreak(); got != tt.want {
				t.Errorf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDailyActivityCap(t *testing.T) {
	s := testStore(t)
	day := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	s.SetNow(func() time.Time { return day })

	v := s.AddVideo(domain.Video{Title: "Lecture", Instructor: "Ada", Category: "Math"})
	for i := 0; i < constants.MaxDailyActivity+10; i++ {
		s.AddBookmark(v.ID, i, "checkpoint")
	}

	got := s.DailyActivity()[day.Format(dayFormat)]
	if got != constants.MaxDailyActivity {
		t.Errorf("daily activity = %d, want capped at %d", got, constants.MaxDailyActivity)
	}
}

func TestDailyActivityTracksPerDay(t *testing.T) {
	s := testStore(t)
	day1 := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	v := s.AddVideo(domain.Video{Title: "Lecture", Instructor: "Ada", Category: "Math"})

	s.SetNow(func() time.Time { return day1 })
	s.AddBookmark(v.ID, 10, "a")
	s.AddBookmark(v.ID, 20, "b")

	s.SetNow(func() time.Time { return day2 })
	s.AddBookmark(v.ID, 30, "c")

	activity := s.DailyActivity()
	if activity[day1.Format(dayFormat)] != 2 {
		t.Errorf("day1 activity = %d, want 2", activity[day1.Format(dayFormat)])
	}
	if activity[day2.Format(dayFormat)] != 1 {
		t.Errorf("day2 activity = %d, want 1", activity[day2.Format(dayFormat)])
	}
}
