// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package session is the controller between the user, the simulator server
// and the display.
//
// Every action builds its request on the caller's goroutine and dispatches
// it without blocking. The reply comes back as a Result on the controller's
// completion channel, and is applied to the State only by Next or Drain, so
// State is never touched by more than one goroutine. Requests are not
// de-duplicated; when actions overlap, the last reply applied wins.
package session

import (
	"context"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/simdesk/client"
	"github.com/ezrec/simdesk/memedit"
	"github.com/ezrec/simdesk/store"
	"github.com/ezrec/simdesk/track"
)

// Simulator is the remote execution engine.
type Simulator interface {
	Assemble(ctx context.Context, code string, flags map[string]bool) (memory string, err error)
	Run(ctx context.Context, code string) (panels client.Panels, err error)
	RunOnce(ctx context.Context, code string) (panels client.Panels, err error)
	Reset(ctx context.Context) (panels client.Panels, err error)
	EditMemory(ctx context.Context, pairs []memedit.Pair) (panels client.Panels, err error)
}

var _ Simulator = &client.Client{}

// View displays the session.
type View interface {
	Alert(msg string)                // Blocking notification.
	ShowPanels(panels client.Panels) // Registers and flags, memory, assembler listing.
	ShowMemory(memory string)        // Memory panel alone.
	ShowTrack(progress track.Track)  // Progress beside the program text.
	SetRunnable(runnable bool)       // Enable or disable run and step.
}

// Action is a user action that talks to the simulator.
type Action int

const (
	ACTION_ASSEMBLE Action = iota
	ACTION_RUN
	ACTION_STEP
	ACTION_RESET
	ACTION_MEMORY_EDIT
)

var actionName = map[Action]string{
	ACTION_ASSEMBLE:    "assemble",
	ACTION_RUN:         "run",
	ACTION_STEP:        "step",
	ACTION_RESET:       "reset",
	ACTION_MEMORY_EDIT: "memory-edit",
}

func (a Action) String() string {
	return actionName[a]
}

// Result is the outcome of one dispatched action.
type Result struct {
	Action Action
	Code   string        // Program text the request was built from.
	Memory string        // ACTION_ASSEMBLE memory panel.
	Panels client.Panels // Other actions.
	Err    error
}

// State is everything the controller knows between actions.
type State struct {
	Program  string          // Program text, as edited.
	Flags    map[string]bool // Assembler flag inputs.
	Track    track.Track     // Last rendered progress.
	Runnable bool            // Run and step are enabled.
	Panels   client.Panels   // Last panels shown.
}

// Controller drives a Simulator from user actions.
type Controller struct {
	State

	Simulator Simulator
	View      View
	Store     store.Store    // If nil, the program is not cached.
	Parser    memedit.Parser // Memory edit parser.
	Verbose   bool           // If set, logs every action.

	results chan Result
	pending int
}

// NewController creates a controller.
func NewController(sim Simulator, view View) (ctl *Controller) {
	ctl = &Controller{
		Simulator: sim,
		View:      view,
		results:   make(chan Result, 16),
	}
	ctl.State.Flags = map[string]bool{}

	return
}

func (ctl *Controller) logf(format string, args ...any) {
	if ctl.Verbose {
		log.Printf(format, args...)
	}
}

// Load restores the cached program text, if any.
func (ctl *Controller) Load() (err error) {
	if ctl.Store == nil {
		return
	}

	program, err := ctl.Store.Load()
	if err != nil {
		return
	}

	ctl.State.Program = program
	return
}

// SetProgram replaces the program text.
func (ctl *Controller) SetProgram(program string) {
	ctl.State.Program = program
}

// SetFlag sets an assembler flag input.
func (ctl *Controller) SetFlag(name string, value bool) {
	if ctl.State.Flags == nil {
		ctl.State.Flags = map[string]bool{}
	}
	ctl.State.Flags[name] = value
}

// Pending returns the number of dispatched actions not yet applied.
func (ctl *Controller) Pending() int {
	return ctl.pending
}

// code is the program text as sent to the simulator.
func (ctl *Controller) code() string {
	return strings.TrimSpace(ctl.State.Program)
}

// dispatch runs request on its own goroutine, and posts the result.
func (ctl *Controller) dispatch(action Action, code string, request func(res *Result)) {
	if ctl.results == nil {
		ctl.results = make(chan Result, 16)
	}

	ctl.logf("%v: dispatch", action)

	ctl.pending++
	go func() {
		res := Result{Action: action, Code: code}
		request(&res)
		ctl.results <- res
	}()
}

// Assemble sends the program and flags for assembly. An empty program is
// not sent.
func (ctl *Controller) Assemble(ctx context.Context) (err error) {
	code := ctl.code()
	if len(code) == 0 {
		err = ErrProgramEmpty
		return
	}

	if ctl.Store != nil {
		err := ctl.Store.Save(code)
		if err != nil {
			log.Printf("simdesk: cache: %v", err)
		}
	}

	flags := maps.Clone(ctl.State.Flags)
	ctl.dispatch(ACTION_ASSEMBLE, code, func(res *Result) {
		res.Memory, res.Err = ctl.Simulator.Assemble(ctx, code, flags)
	})

	return
}

// Run executes the program to completion.
func (ctl *Controller) Run(ctx context.Context) (err error) {
	if !ctl.State.Runnable {
		err = ErrNotRunnable
		return
	}

	code := ctl.code()
	ctl.dispatch(ACTION_RUN, code, func(res *Result) {
		res.Panels, res.Err = ctl.Simulator.Run(ctx, code)
	})

	return
}

// Step executes a single instruction.
func (ctl *Controller) Step(ctx context.Context) (err error) {
	if !ctl.State.Runnable {
		err = ErrNotRunnable
		return
	}

	code := ctl.code()
	ctl.dispatch(ACTION_STEP, code, func(res *Result) {
		res.Panels, res.Err = ctl.Simulator.RunOnce(ctx, code)
	})

	return
}

// Reset discards the simulator state.
func (ctl *Controller) Reset(ctx context.Context) (err error) {
	ctl.dispatch(ACTION_RESET, ctl.code(), func(res *Result) {
		res.Panels, res.Err = ctl.Simulator.Reset(ctx)
	})

	return
}

// EditMemory parses raw as a memory edit and sends it. Input that does
// not parse is not sent.
func (ctl *Controller) EditMemory(ctx context.Context, raw string) (err error) {
	edit, err := ctl.Parser.Parse(raw)
	if err != nil {
		return
	}

	pairs := edit.Pairs()
	ctl.dispatch(ACTION_MEMORY_EDIT, ctl.code(), func(res *Result) {
		res.Panels, res.Err = ctl.Simulator.EditMemory(ctx, pairs)
	})

	return
}

// Next waits for one dispatched action to complete, and applies it.
func (ctl *Controller) Next(ctx context.Context) (res Result, err error) {
	if ctl.pending == 0 {
		err = ErrIdle
		return
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	case res = <-ctl.results:
	}

	ctl.pending--
	ctl.Apply(res)

	return
}

// Drain applies results until nothing is in flight.
func (ctl *Controller) Drain(ctx context.Context) (err error) {
	for ctl.pending > 0 {
		_, err = ctl.Next(ctx)
		if err != nil {
			return
		}
	}

	return
}

// executable counts the lines the simulator treats as instructions.
func executable(code string) (count int) {
	for _, line := range strings.Split(code, "\n") {
		if len(line) > 0 {
			count++
		}
	}
	return
}

func (ctl *Controller) showTrack(progress track.Track) {
	ctl.State.Track = progress
	ctl.View.ShowTrack(progress)
}

func (ctl *Controller) showPanels(panels client.Panels) {
	ctl.State.Panels = panels
	ctl.View.ShowPanels(panels)
}

func (ctl *Controller) setRunnable(runnable bool) {
	ctl.State.Runnable = runnable
	ctl.View.SetRunnable(runnable)
}

// Apply updates the State and View from a completed action.
func (ctl *Controller) Apply(res Result) {
	if res.Err != nil {
		ctl.logf("%v: %v", res.Action, res.Err)
		if res.Action == ACTION_STEP {
			ctl.showTrack(ctl.State.Track.MarkLastFailed())
		}
		ctl.View.Alert(res.Err.Error())
		return
	}

	ctl.logf("%v: ok", res.Action)

	switch res.Action {
	case ACTION_ASSEMBLE:
		ctl.setRunnable(true)
		ctl.State.Panels.Memory = res.Memory
		ctl.View.ShowMemory(res.Memory)
		ctl.showTrack(track.Render(res.Code, 0))
	case ACTION_RUN:
		ctl.showPanels(res.Panels)
		ctl.showTrack(track.Render(res.Code, executable(res.Code)))
	case ACTION_STEP:
		ctl.showPanels(res.Panels)
		ctl.State.Program = res.Code
		index := 0
		if res.Panels.Index != nil {
			index = *res.Panels.Index
		}
		ctl.showTrack(track.Render(res.Code, index))
	case ACTION_RESET:
		ctl.showPanels(res.Panels)
		ctl.setRunnable(false)
		ctl.showTrack(nil)
	case ACTION_MEMORY_EDIT:
		ctl.showPanels(res.Panels)
		if ctl.State.Runnable && res.Panels.Index != nil {
			ctl.showTrack(track.Render(res.Code, *res.Panels.Index))
		}
	}
}
