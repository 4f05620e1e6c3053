// Package view renders the three screens as fixed-width text.
package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/animation"
	"github.com/mamadbah2/retrocalc/internal/service/calculator"
	"github.com/mamadbah2/retrocalc/internal/service/history"
)

const (
	width      = 64
	timeLayout = "2006-01-02 15:04:05"
)

func rule(b *strings.Builder) {
	b.WriteString(strings.Repeat("=", width))
	b.WriteByte('\n')
}

func bar(b *strings.Builder, left, right string) {
	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", gap))
	b.WriteString(right)
	b.WriteByte('\n')
}

// Steps renders steps as tagged chips: [op +] [num 3] [= 13].
func Steps(steps []models.Step) string {
	chips := make([]string, 0, len(steps))
	for _, s := range steps {
		switch s.Type {
		case models.StepOperator:
			chips = append(chips, "[op "+s.Value+"]")
		case models.StepResult:
			chips = append(chips, "[= "+s.Value+"]")
		default:
			chips = append(chips, "[num "+s.Value+"]")
		}
	}
	return strings.Join(chips, " ")
}

// Calculator renders the calculator screen.
func Calculator(st calculator.State) string {
	var b strings.Builder

	rule(&b)
	bar(&b, "Mode: "+strings.ToUpper(string(st.Mode)), "F1: Command  F2: Menu  F3: Help")
	rule(&b)

	if st.Mode == models.ModeCommand {
		cursor := " "
		if st.CursorVisible {
			cursor = "_"
		}
		if st.Input == "" {
			fmt.Fprintf(&b, "> %s  (%s)\n", cursor, st.Banner)
		} else {
			fmt.Fprintf(&b, "> %s%s\n", st.Input, cursor)
		}
	} else {
		b.WriteString(st.Banner)
		b.WriteByte('\n')
	}

	if st.Result != nil {
		fmt.Fprintf(&b, "\n= %s\n", calculator.FormatNumber(*st.Result))
	}
	if st.Error != "" {
		fmt.Fprintf(&b, "\nError: %s\n", st.Error)
	}
	if len(st.Steps) > 0 {
		b.WriteString("\nCalculation steps:\n")
		b.WriteString(Steps(st.Steps))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	rule(&b)
	bar(&b, "View History: /history", "Animation Demo: /animation")
	return b.String()
}

// History renders the history screen.
func History(v history.View) string {
	var b strings.Builder

	rule(&b)
	bar(&b, "HISTORY", "Esc: back")
	rule(&b)

	if len(v.Records) == 0 {
		b.WriteString("No history yet\n")
	}
	for i, rec := range v.Records {
		marker := " "
		if i == v.Selected {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %-30s %s\n", marker, rec.Expression, clock(rec.Timestamp))
		fmt.Fprintf(&b, "    = %s\n", calculator.FormatNumber(rec.Result))
		if i == v.Selected && len(rec.Steps) > 0 {
			fmt.Fprintf(&b, "    steps: %s\n", Steps(rec.Steps))
		}
	}

	rule(&b)
	b.WriteString("ArrowUp/ArrowDown: select | Esc: back\n")
	return b.String()
}

// Animation renders the animation screen.
func Animation(v animation.View) string {
	var b strings.Builder

	rule(&b)
	bar(&b, v.Title, "/ : back")
	rule(&b)

	ops := make([]string, 0, len(models.Operations))
	for _, op := range models.Operations {
		if op == v.Operation {
			ops = append(ops, "("+string(op)+")")
			continue
		}
		ops = append(ops, string(op))
	}
	b.WriteString(strings.Join(ops, "  "))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "    %s\n\n", v.Current.Graphic)
	fmt.Fprintf(&b, "    %s\n\n", v.Current.Description)

	action := "pause"
	if !v.Playing {
		action = "resume"
	}
	rule(&b)
	fmt.Fprintf(&b, "Space: %s | Step %d/%d\n", action, v.CurrentStep+1, len(v.Steps))
	return b.String()
}

func clock(t time.Time) string {
	return t.Local().Format(timeLayout)
}
