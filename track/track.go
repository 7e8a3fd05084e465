// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package track renders per-line execution progress for a program whose
// instructions are executed remotely.
//
// A Track is rebuilt from scratch on every update from the program text and
// the count of executed lines reported by the simulator. The only mutation
// ever applied to an existing Track is MarkLastFailed, used when a single
// step fails and no new line count is available.
package track

import (
	"strings"
)

// Marker is the state of a single source line.
type Marker int

const (
	Blank   Marker = iota // Placeholder for an empty source line.
	Done                  // Line has been executed.
	Current               // Next line to execute.
	Failed                // Execution of the line failed.
)

var markerGlyph = map[Marker]string{
	Blank:   "",
	Done:    "✔",
	Current: "▶",
	Failed:  "❌",
}

func (m Marker) String() string {
	return markerGlyph[m]
}

// Track is the ordered marker sequence shown beside the program text.
type Track []Marker

// Render builds the track for program after executed lines have run.
// Counts past the end of the program give a fully done track.
func Render(program string, executed int) (track Track) {
	lines := strings.Split(program, "\n")

	for i := 0; i < executed && i < len(lines); i++ {
		if lines[i] == "" {
			// Empty lines are not steps; keep alignment with the source.
			track = append(track, Blank)
			i++
		}
		track = append(track, Done)
	}

	if executed < len(lines) {
		track = append(track, Current)
	}

	return
}

// MarkLastFailed returns a copy of the track with its final marker replaced
// by Failed. An empty track becomes a single Failed marker.
func (track Track) MarkLastFailed() (failed Track) {
	if len(track) == 0 {
		return Track{Failed}
	}

	failed = append(Track{}, track...)
	failed[len(failed)-1] = Failed

	return
}

// Done returns the number of Done markers.
func (track Track) Done() (count int) {
	for _, m := range track {
		if m == Done {
			count++
		}
	}

	return
}

// Finished is true when the track has no current position marker.
func (track Track) Finished() bool {
	return len(track) > 0 && track[len(track)-1] == Done
}

// String renders one marker per line.
func (track Track) String() string {
	var sb strings.Builder

	for n, m := range track {
		sb.WriteString(m.String())
		if m != Current || n != len(track)-1 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
