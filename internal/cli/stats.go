package cli

import (
	"fmt"

	"github.com/juliexu77/babyrhythm/internal/pattern"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
	"github.com/juliexu77/babyrhythm/internal/transition"
)

type StatsCmd struct{}

func (cmd *StatsCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Learned patterns (last 14 days)"))
	for _, sub := range pattern.All() {
		stats := pattern.Analyze(eng.Events, sub, eng.Now, eng.Cfg)
		if stats == nil {
			fmt.Printf("  %-16s %s\n", sub, dimStyle.Render("not enough data yet"))
			continue
		}
		note := ""
		if stats.HighlyPredictable() {
			note = dimStyle.Render("  very consistent")
		}
		fmt.Printf("  %-16s around %-8s  ±%-3.0fm  n=%-2d  %s%s\n",
			sub, timeutil.FormatMinutes(stats.MedianMinutes), stats.StdDevMinutes,
			stats.Count, badge(stats.ConfidenceLabel()), note)
	}

	// Completed days only: today's nap count is still in progress.
	counts := pattern.DailyDaytimeNapCounts(eng.Events, 10, eng.Now.AddDate(0, 0, -1), eng.Cfg)
	if info := transition.Detect(counts); info != nil {
		fmt.Println()
		fmt.Printf("  Nap transition: daily naps dropping from %d to %d over the last %d logged days.\n",
			info.FromNaps, info.ToNaps, len(counts))
	}
	return nil
}
