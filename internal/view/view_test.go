package view

import (
	"bytes"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/rnwolfe/triage/internal/rank"
	"github.com/rnwolfe/triage/internal/task"
	"pgregory.net/rapid"
)

var now = time.Date(2026, 2, 24, 9, 0, 0, 0, time.UTC)

func scored(desc, deadline string, imp, diff int, est, score float64) task.Scored {
	return task.Scored{
		Request: task.Request{
			Description:   desc,
			Deadline:      task.MustDate(deadline),
			Difficulty:    diff,
			Importance:    imp,
			EstimatedTime: est,
		},
		PriorityScore: score,
	}
}

func TestBuild_Empty(t *testing.T) {
	v := Build(nil, rank.Balanced, now)
	if !v.Empty {
		t.Fatal("expected empty signal")
	}
	if len(v.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(v.Items))
	}
	if v.Summary != EmptyHint {
		t.Errorf("summary = %q", v.Summary)
	}
}

func TestBuild_RanksAndAnnotates(t *testing.T) {
	tasks := []task.Scored{
		scored("report", "2026-03-10", 2, 2, 3, 1.5),
		scored("hotfix", "2026-02-25", 3, 3, 2, 2.7),
		scored("review", "2026-02-27", 2, 1, 1, 1.8),
	}

	v := Build(tasks, rank.Balanced, now)
	if v.Empty {
		t.Fatal("populated set must not be empty")
	}
	if v.Summary != "Showing 3 tasks sorted by Smart Balance (overall score)." {
		t.Errorf("summary = %q", v.Summary)
	}

	want := []struct {
		desc, score, expl string
		level             rank.Level
	}{
		{"hotfix", "2.70", "Because importance is 3, difficulty is 3, and deadline is very close.", rank.LevelHigh},
		{"review", "1.80", "Because importance is 2, difficulty is 1, and deadline is coming up soon.", rank.LevelMedium},
		{"report", "1.50", "Because importance is 2, difficulty is 2, and deadline is further away.", rank.LevelLow},
	}
	for i, w := range want {
		it := v.Items[i]
		if it.Description != w.desc || it.Score != w.score || it.Level != w.level || it.Explanation != w.expl {
			t.Errorf("item %d = {%s %s %s %q}, want %+v", i, it.Description, it.Score, it.Level, it.Explanation, w)
		}
	}
}

func TestBuild_StrategyChangeReordersOnly(t *testing.T) {
	tasks := []task.Scored{
		scored("long", "2026-03-10", 3, 2, 8, 2.6),
		scored("short", "2026-03-20", 1, 1, 1, 1.1),
	}
	balanced := Build(tasks, rank.Balanced, now)
	fastest := Build(tasks, rank.Fastest, now)

	if balanced.Items[0].Description != "long" || fastest.Items[0].Description != "short" {
		t.Fatalf("unexpected orders: %s / %s", balanced.Items[0].Description, fastest.Items[0].Description)
	}
	if fastest.StrategyLabel != "Fastest Wins (low effort first)" || fastest.StrategyName != "fastest" {
		t.Errorf("strategy fields = %q %q", fastest.StrategyName, fastest.StrategyLabel)
	}
	if tasks[0].Description != "long" {
		t.Fatal("input mutated")
	}
}

func TestFormatScore(t *testing.T) {
	tests := map[float64]string{
		2.5:   "2.50",
		1.234: "1.23",
		3:     "3.00",
		0:     "0.00",
	}
	for in, want := range tests {
		if got := FormatScore(in); got != want {
			t.Errorf("FormatScore(%v) = %q, want %q", in, got, want)
		}
	}
	if FormatHours(1.5) != "1.5h" || FormatHours(3) != "3h" {
		t.Errorf("FormatHours: %q %q", FormatHours(1.5), FormatHours(3))
	}
}

func TestBuild_ReferentiallyTransparent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "n")
		tasks := make([]task.Scored, n)
		for i := range tasks {
			day := rapid.IntRange(-5, 20).Draw(t, "day")
			tasks[i] = scored(
				strconv.Itoa(i),
				now.AddDate(0, 0, day).Format(task.DateLayout),
				rapid.IntRange(1, 3).Draw(t, "imp"),
				rapid.IntRange(1, 3).Draw(t, "diff"),
				float64(rapid.IntRange(0, 8).Draw(t, "est")),
				rapid.Float64Range(0, 3.5).Draw(t, "score"),
			)
		}
		s := rapid.SampledFrom(rank.Strategies).Draw(t, "strategy")

		first, err := json.Marshal(Build(tasks, s, now))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		second, err := json.Marshal(Build(tasks, s, now))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Fatalf("outputs differ:\n%s\n%s", first, second)
		}
	})
}
