package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rnwolfe/triage/internal/task"
	"github.com/rnwolfe/triage/internal/view"
)

// NoSuggestions is printed when the service has nothing to suggest.
const NoSuggestions = "No tasks found yet"

// RenderView writes the ranked list. Explanations wrap at width.
func RenderView(w io.Writer, v view.View, width int) {
	if v.Empty {
		fmt.Fprintln(w, Muted.Render(v.Summary))
		return
	}

	fmt.Fprintln(w, Title.Render(v.Summary))
	fmt.Fprintln(w)
	for i, it := range v.Items {
		fmt.Fprint(w, RenderItem(it, i+1, width))
		if i < len(v.Items)-1 {
			fmt.Fprintln(w)
		}
	}
}

// RenderItem formats one ranked row as a block of lines.
func RenderItem(it view.Item, n int, width int) string {
	var b strings.Builder

	head := fmt.Sprintf("%2d. %s %s  %s",
		n,
		LevelStyle(it.Level).Render(it.Level.Label()),
		TaskTitle.Render(it.Description),
		Score.Render(it.Score))
	b.WriteString(head + "\n")

	meta := strings.Join([]string{
		BandStyle(it.Band).Render("due " + it.Deadline.String() + " (" + DaysPhrase(it.DaysLeft) + ")"),
		Muted.Render(fmt.Sprintf("importance %d", it.Importance)),
		Muted.Render(fmt.Sprintf("difficulty %d", it.Difficulty)),
		Muted.Render(view.FormatHours(it.EstimatedTime)),
	}, Muted.Render(" "+IconDot+" "))
	b.WriteString("    " + meta + "\n")

	b.WriteString(wrap(it.Explanation, width, 4) + "\n")
	return b.String()
}

// RenderSuggestions writes the service's suggested tasks in the order
// received.
func RenderSuggestions(w io.Writer, tasks []task.Scored) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, Muted.Render(NoSuggestions))
		return
	}
	fmt.Fprintln(w, Title.Render("Suggested next"))
	for i, t := range tasks {
		fmt.Fprintf(w, "%2d. %s  %s  %s\n",
			i+1,
			TaskTitle.Render(t.Description),
			Score.Render(view.FormatScore(t.PriorityScore)),
			Muted.Render("due "+t.Deadline.String()))
	}
}

// DaysPhrase describes a signed day count.
func DaysPhrase(days int) string {
	switch {
	case days < -1:
		return fmt.Sprintf("%d days overdue", -days)
	case days == -1:
		return "1 day overdue"
	case days == 0:
		return "due today"
	case days == 1:
		return "1 day left"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}

func wrap(s string, width, indent int) string {
	if width <= indent+10 {
		width = DefaultWidth
	}
	return lipgloss.NewStyle().
		PaddingLeft(indent).
		Width(width).
		Render(s)
}
