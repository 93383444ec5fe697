package cmd

import (
	"github.com/spf13/pflag"

	"github.com/rnwolfe/triage/internal/rank"
)

var _ pflag.Value = (*strategyFlag)(nil)

// strategyFlag accepts any string so unknown names can fall back to
// balanced with a warning instead of failing flag parsing.
type strategyFlag struct {
	value string
	set   bool
}

func (f *strategyFlag) String() string {
	if !f.set {
		return ""
	}
	return f.value
}

func (f *strategyFlag) Set(v string) error {
	f.value = v
	f.set = true
	return nil
}

func (f *strategyFlag) Type() string {
	return "strategy"
}

// Strategy resolves the flag without logging.
func (f *strategyFlag) Strategy() rank.Strategy {
	return rank.ParseStrategy(f.value)
}
