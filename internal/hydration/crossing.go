package hydration

// Phase is the goal progress state.
type Phase int

const (
	BelowGoal Phase = iota
	GoalMet
)

func (p Phase) String() string {
	if p == GoalMet {
		return "GoalMet"
	}
	return "BelowGoal"
}

// crossingDetector is edge-triggered: it reports only the BelowGoal ->
// GoalMet transition. Falling back below the goal re-arms it silently.
type crossingDetector struct {
	phase Phase
}

func phaseFor(pct int) Phase {
	if pct >= 100 {
		return GoalMet
	}
	return BelowGoal
}

// observe records pct and reports whether the goal was just crossed.
func (d *crossingDetector) observe(pct int) bool {
	next := phaseFor(pct)
	fired := d.phase == BelowGoal && next == GoalMet
	d.phase = next
	return fired
}

// prime sets the phase without firing, used after a reload.
func (d *crossingDetector) prime(pct int) {
	d.phase = phaseFor(pct)
}
