package domain

import "time"

// PassResult describes one filtering pass over all cards present on the page
type PassResult struct {
	Hidden   int           // cards newly hidden by rules in this pass
	Restored int           // cards made visible again because no rule matched anymore
	Cards    int           // cards evaluated
	Noise    int           // always-hidden cards (promoted, live, unopted recommendations) newly hidden
	Faults   int           // cards whose evaluation failed and was skipped
	Finished time.Time     // when the pass completed
	Duration time.Duration // pass wall time
}

// Stats is the snapshot the management panel renders
type Stats struct {
	Keywords int `json:"keywords"`
	Authors  int `json:"authors"`
	Hidden   int `json:"hidden"`
}
