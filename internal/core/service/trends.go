package service

import (
	"github.com/healthwhisperer/wellness/internal/core/domain"
	"github.com/healthwhisperer/wellness/internal/core/ports"
)

// BuildTrends turns a newest-first slice of interactions into chart data in
// chronological order. Counts only include categories that occur, ordered as
// domain.MoodCategories.
func BuildTrends(newestFirst []domain.Interaction) ports.Trends {
	counts := make(map[domain.MoodCategory]int)
	timeline := make([]ports.TimelinePoint, 0, len(newestFirst))

	for i := len(newestFirst) - 1; i >= 0; i-- {
		in := newestFirst[i]
		cat := in.Category()
		counts[cat]++
		timeline = append(timeline, ports.TimelinePoint{
			Date:     in.CreatedAt.Format("01/02"),
			Category: cat,
		})
	}

	total := len(newestFirst)
	bars := make([]ports.MoodCount, 0, len(counts))
	for _, cat := range domain.MoodCategories {
		n, ok := counts[cat]
		if !ok {
			continue
		}
		bars = append(bars, ports.MoodCount{
			Category: cat,
			Count:    n,
			Percent:  n * 100 / total,
		})
	}

	return ports.Trends{Counts: bars, Timeline: timeline}
}
