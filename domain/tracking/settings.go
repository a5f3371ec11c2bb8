package tracking

// Bounds for the user-adjustable settings.
const (
	MinRate  = 1
	MaxRate  = 120
	MinTrail = 0
	MaxTrail = 100
)

// Settings are the sampling and display settings of a session. The sampling
// rate is SamplingNum samples per SamplingDen seconds.
type Settings struct {
	SamplingNum  int
	SamplingDen  int
	TrailLength  int
	MarkerRadius float64
}

// DefaultSettings samples once per second with a three-sample trail.
func DefaultSettings() Settings {
	return Settings{SamplingNum: 1, SamplingDen: 1, TrailLength: 3}
}

// Clamped returns s with every field inside its bounds.
func (s Settings) Clamped() Settings {
	s.SamplingNum = clampInt(s.SamplingNum, MinRate, MaxRate)
	s.SamplingDen = clampInt(s.SamplingDen, MinRate, MaxRate)
	s.TrailLength = clampInt(s.TrailLength, MinTrail, MaxTrail)
	if s.MarkerRadius < 0 {
		s.MarkerRadius = 0
	}
	return s
}

// SettingsListener observes settings changes.
type SettingsListener func(Settings)

// IncNum raises the samples-per-period numerator.
func (s *Session) IncNum() { s.adjust(func(st *Settings) { st.SamplingNum++ }) }

// DecNum lowers the samples-per-period numerator.
func (s *Session) DecNum() { s.adjust(func(st *Settings) { st.SamplingNum-- }) }

// IncDen lengthens the sampling period.
func (s *Session) IncDen() { s.adjust(func(st *Settings) { st.SamplingDen++ }) }

// DecDen shortens the sampling period.
func (s *Session) DecDen() { s.adjust(func(st *Settings) { st.SamplingDen-- }) }

// IncTrail shows one more sampling interval of trail.
func (s *Session) IncTrail() { s.adjust(func(st *Settings) { st.TrailLength++ }) }

// DecTrail shows one less sampling interval of trail.
func (s *Session) DecTrail() { s.adjust(func(st *Settings) { st.TrailLength-- }) }

func (s *Session) adjust(fn func(*Settings)) {
	next := s.settings
	fn(&next)
	s.SetSettings(next)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
