package resolve

// Stage is the progress of one compilation unit through the pipeline.
// Stages only move forward; StageFailed is terminal.
type Stage int

const (
	StageLoaded Stage = iota
	StagePackageResolved
	StageTypeResolved
	// StageCompleting marks a unit whose bodies are being resolved. Meeting
	// it again while completing dependencies means a supertype cycle.
	StageCompleting
	StageFullyResolved
	StageNumbered
	StageFailed
)

var stageNames = map[Stage]string{
	StageLoaded:          "loaded",
	StagePackageResolved: "package-resolved",
	StageTypeResolved:    "type-resolved",
	StageCompleting:      "completing",
	StageFullyResolved:   "fully-resolved",
	StageNumbered:        "numbered",
	StageFailed:          "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsResolved reports whether a unit in stage s has every reference bound.
func (s Stage) IsResolved() bool {
	return s == StageFullyResolved || s == StageNumbered
}
