package graph

import (
	"github.com/HisQu/paredros-debugger/internal/atn"
	"github.com/HisQu/paredros-debugger/internal/trace"
)

// InferChosen determines which alternative a decision took when the engine
// did not report it. It scans the event-stream suffix for the first action
// that reveals the path — a consumed token or an entered rule — and returns
// the first alternative, in network-declared order, whose prediction is
// consistent with it. A rule exit, an error, or stream end before any such
// action means the decision left its rule, so the first alternative that can
// exit wins. Returns 0 when nothing matches.
//
// Pure function over (alternatives, suffix); no live engine involved.
func InferChosen(alts []atn.Alt, suffix []trace.Event) int {
	for _, ev := range suffix {
		switch ev.Kind {
		case trace.KindDecision:
			// Nested decisions consume nothing; keep scanning.
			continue
		case trace.KindTokenConsume:
			for _, a := range alts {
				if a.ConsistentWithToken(ev.Token.Type) {
					return a.Index
				}
			}
			return 0
		case trace.KindRuleEnter:
			for _, a := range alts {
				if a.ConsistentWithRule(ev.Rule) {
					return a.Index
				}
			}
			return 0
		case trace.KindRuleExit, trace.KindError:
			return firstExit(alts)
		}
	}
	return firstExit(alts)
}

func firstExit(alts []atn.Alt) int {
	for _, a := range alts {
		if a.HasExit() {
			return a.Index
		}
	}
	return 0
}
