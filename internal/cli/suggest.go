package cli

import (
	"fmt"

	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

type SuggestCmd struct {
	Explain bool `help:"Show the evaluation state of every sub-pattern, not just the winner."`
}

func (cmd *SuggestCmd) Run(ctx *Context) error {
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}

	sugg, evaluations, err := eng.Evaluator.Evaluate(eng.Events, eng.Now)
	if err != nil {
		return err
	}

	if sugg != nil {
		body := fmt.Sprintf("%s\n%s", titleStyle.Render(sugg.Message),
			dimStyle.Render(fmt.Sprintf("confidence %.2f · dismiss with `babyrhythm dismiss %s`", sugg.Confidence, sugg.SubPattern)))
		fmt.Println(suggestionStyle.Render(body))
	} else {
		fmt.Println(dimStyle.Render("Nothing looks forgotten right now."))
	}

	if cmd.Explain {
		fmt.Println()
		for _, eval := range evaluations {
			line := fmt.Sprintf("  %-16s %s", eval.SubPattern, eval.State)
			if eval.Stats != nil {
				line += dimStyle.Render(fmt.Sprintf("  (median %s, n=%d, confidence %.2f)",
					timeutil.FormatMinutes(eval.Stats.MedianMinutes), eval.Stats.Count, eval.Stats.Confidence))
			}
			fmt.Println(line)
		}
	}
	return nil
}

type DismissCmd struct {
	SubPattern string `arg:"" help:"Sub-pattern to silence for the rest of the day (bedtime, morningWake, feed, firstDaytimeNap)."`
}

func (cmd *DismissCmd) Run(ctx *Context) error {
	sub, err := ParseSubPattern(cmd.SubPattern)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	if err := eng.Evaluator.Dismiss(sub, eng.Now); err != nil {
		return err
	}
	fmt.Printf("Dismissed %s suggestions for today.\n", sub.Label())
	return nil
}

type AcceptCmd struct {
	SubPattern string `arg:"" help:"Sub-pattern whose suggestion was acted on."`
}

func (cmd *AcceptCmd) Run(ctx *Context) error {
	sub, err := ParseSubPattern(cmd.SubPattern)
	if err != nil {
		return err
	}
	eng, err := ctx.Engine()
	if err != nil {
		return err
	}
	if err := eng.Evaluator.Accept(sub, eng.Now); err != nil {
		return err
	}
	fmt.Printf("Marked the %s suggestion as accepted.\n", sub.Label())
	return nil
}
