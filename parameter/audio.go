package parameter

import "time"

// Soundtrack format
const (
	SampleRate = 44100
	MasterGain = 0.6
)

// Cue timing
const (
	StartCueDuration   = 400 * time.Millisecond
	StartCueAttack     = 5 * time.Millisecond
	StartCueRelease    = 350 * time.Millisecond
	EndCueDuration     = 700 * time.Millisecond
	EndCueRelease      = 600 * time.Millisecond
	SweepCueDuration   = 300 * time.Millisecond
	SweepCueAttack     = 80 * time.Millisecond
	SweepCueRelease    = 200 * time.Millisecond
	SettleCueDuration  = 250 * time.Millisecond
	SettleCueRelease   = 200 * time.Millisecond
	ChimeNote1Duration = 90 * time.Millisecond
	ChimeNote2Duration = 220 * time.Millisecond
	ChimeAttack        = 2 * time.Millisecond
	ChimeNote1Release  = 40 * time.Millisecond
	ChimeNote2Release  = 180 * time.Millisecond
	BuzzCueDuration    = 150 * time.Millisecond
	BuzzCueAttack      = 5 * time.Millisecond
	BuzzCueRelease     = 60 * time.Millisecond
)
