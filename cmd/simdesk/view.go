// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/simdesk/client"
	"github.com/ezrec/simdesk/track"
)

// termView prints the session to a terminal.
type termView struct {
	out      io.Writer
	program  func() string
	runnable bool
}

func (tv *termView) Alert(msg string) {
	fmt.Fprintf(tv.out, "!! %v\n", strings.TrimRight(msg, "\n"))
}

func (tv *termView) ShowPanels(panels client.Panels) {
	fmt.Fprintf(tv.out, "-- registers/flags --\n%v\n", panels.RegistersFlags)
	tv.ShowMemory(panels.Memory)
	fmt.Fprintf(tv.out, "-- assembler --\n%v\n", panels.Assembler)
}

func (tv *termView) ShowMemory(memory string) {
	fmt.Fprintf(tv.out, "-- memory --\n%v\n", strings.TrimRight(memory, "\n"))
}

// ShowTrack prints the progress markers beside the program lines.
func (tv *termView) ShowTrack(progress track.Track) {
	if len(progress) == 0 {
		return
	}

	lines := strings.Split(tv.program(), "\n")
	for n, marker := range progress {
		line := ""
		if n < len(lines) {
			line = lines[n]
		}
		glyph := marker.String()
		if len(glyph) == 0 {
			glyph = " "
		}
		fmt.Fprintf(tv.out, "%v %3d  %v\n", glyph, n+1, line)
	}

	if progress.Finished() {
		fmt.Fprintf(tv.out, "-- finished, %d done --\n", progress.Done())
	} else {
		fmt.Fprintf(tv.out, "-- %d done --\n", progress.Done())
	}
}

func (tv *termView) SetRunnable(runnable bool) {
	tv.runnable = runnable
}
