package timeline

import (
	"sort"

	"wanderlog/internal/entity"
)

// DayGroup holds every post whose event date falls on one calendar day.
type DayGroup struct {
	Date  string         `json:"date"`
	Posts []*entity.Post `json:"posts"`
}

// Group partitions posts into calendar-day buckets for display. Groups
// are ordered most recent day first; within a day posts are ordered by
// the time they were written, most recent first. The input is not
// mutated and identical input always yields identical output.
func Group(posts []*entity.Post) []DayGroup {
	if len(posts) == 0 {
		return []DayGroup{}
	}

	byDay := make(map[string][]*entity.Post)
	days := make([]string, 0)
	for _, post := range posts {
		day := dayKey(post.Date)
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], post)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	groups := make([]DayGroup, 0, len(days))
	for _, day := range days {
		dayPosts := byDay[day]
		sort.SliceStable(dayPosts, func(i, j int) bool {
			return dayPosts[i].CreatedAt.After(dayPosts[j].CreatedAt)
		})
		groups = append(groups, DayGroup{Date: day, Posts: dayPosts})
	}
	return groups
}

// dayKey strips any time-of-day suffix, keeping the YYYY-MM-DD portion.
func dayKey(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
