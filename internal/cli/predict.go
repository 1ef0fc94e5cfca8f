package cli

import (
	"fmt"

	"github.com/juliexu77/babyrhythm/internal/baseline"
	"github.com/juliexu77/babyrhythm/internal/logger"
	"github.com/juliexu77/babyrhythm/internal/predictor"
)

type PredictCmd struct{}

func (cmd *PredictCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	var ageWeeks *int
	if eng.Settings.Birthdate != "" {
		weeks, err := baseline.AgeWeeks(eng.Settings.Birthdate, eng.Now)
		if err != nil {
			logger.Warn("Ignoring invalid birthdate", "birthdate", eng.Settings.Birthdate, "error", err)
		} else {
			ageWeeks = &weeks
		}
	}

	p := predictor.Predict(eng.Events, ageWeeks, eng.Now, eng.Cfg)

	if p.Confidence == "low" && p.NapCountToday == 0 {
		fmt.Println(dimStyle.Render(p.Rationale))
		return nil
	}

	fmt.Printf("%s %d naps expected today  %s\n",
		titleStyle.Render("Today:"), p.NapCountToday, badge(p.Confidence))
	fmt.Println(dimStyle.Render("  " + p.Rationale))
	if p.IsTransitioning && p.TransitionNote != "" {
		fmt.Println("  " + p.TransitionNote)
	}
	return nil
}
