package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/simdesk/client"
	"github.com/ezrec/simdesk/internal/loopback"
	"github.com/ezrec/simdesk/session"
)

func doRepl(t *testing.T, commands []string) (output string, srv *loopback.Server) {
	assert := assert.New(t)

	srv = &loopback.Server{}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	sim := client.New(ts.URL)
	sim.HTTP = ts.Client()

	out := &bytes.Buffer{}
	view := &termView{out: out}
	ctl := session.NewController(sim, view)
	view.program = func() string { return strings.TrimSpace(ctl.Program) }

	in := strings.NewReader(strings.Join(commands, "\n") + "\n")
	err := repl(context.Background(), ctl, in, out, false)
	assert.NoError(err)

	output = out.String()
	return
}

func TestReplStep(t *testing.T) {
	assert := assert.New(t)

	output, srv := doRepl(t, []string{
		"code",
		"STORE 10 20",
		"",
		"NOP",
		".",
		"flag hex true",
		"assemble",
		"step",
		"step",
		"quit",
		"step",
	})

	assert.Equal([]string{"/assemble", "/run-once", "/run-once"}, srv.Requests)
	assert.Equal(map[string]bool{"hex": true}, srv.Flags())
	assert.Contains(output, "✔   1  STORE 10 20\n")
	assert.Contains(output, "    2  \n")
	assert.Contains(output, "✔   3  NOP\n")
	assert.Contains(output, "PC=0002")
	assert.Contains(output, "-- 2 done --\n")
	assert.NotContains(output, "finished")
}

func TestReplRunShow(t *testing.T) {
	assert := assert.New(t)

	output, srv := doRepl(t, []string{
		"code",
		"STORE 10 20",
		"NOP",
		".",
		"assemble",
		"run",
		"show",
	})

	assert.Equal([]string{"/assemble", "/run"}, srv.Requests)
	assert.Equal(2, strings.Count(output, "-- finished, 2 done --\n"))
	assert.Equal(2, strings.Count(output, "0010: 20\n"))
}

func TestReplErrors(t *testing.T) {
	assert := assert.New(t)

	output, srv := doRepl(t, []string{
		"run",
		"mem nothing",
		"mem 10 = 20",
		"bogus",
		"flag hex maybe",
	})

	assert.Equal([]string{"/memory-edit"}, srv.Requests)
	assert.Equal(uint8(0x20), srv.Peek(0x10))
	assert.Contains(output, "!! assemble the program first\n")
	assert.Contains(output, "!! invalid: expected ADDR=VALUE or START:END\n")
	assert.Contains(output, "!! unknown command \"bogus\", try help\n")
	assert.Contains(output, "!! strconv.ParseBool")
}

func TestFlagInputs(t *testing.T) {
	assert := assert.New(t)

	fi := flagInputs{}
	assert.NoError(fi.Set("hex"))
	assert.NoError(fi.Set("trace=false"))
	assert.Error(fi.Set("x=maybe"))

	assert.Equal(flagInputs{"hex": true, "trace": false}, fi)
}
