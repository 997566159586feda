package model

// Subtracker is a named numeric goal shown as a progress bar.
type Subtracker struct {
	ID       string  `json:"id" yaml:"id"`
	Name     string  `json:"name" yaml:"name"`
	Progress float64 `json:"progress" yaml:"progress"`
	Target   float64 `json:"target" yaml:"target"`
	Unit     string  `json:"unit" yaml:"unit"`
}

// Ratio returns progress/target clamped to [0, 1].
func (s Subtracker) Ratio() float64 {
	return clampRatio(s.Progress, s.Target)
}

func clampRatio(progress, target float64) float64 {
	if target <= 0 || progress <= 0 {
		return 0
	}
	if progress >= target {
		return 1
	}
	return progress / target
}
