// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package client talks to the simulator server.
//
// The server assembles and executes programs; this package only moves
// program text, assembler flags and memory edits to it, and brings back
// the display panels it renders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/ezrec/simdesk/memedit"
)

// Endpoints.
const (
	ENDPOINT_ASSEMBLE    = "/assemble"
	ENDPOINT_RUN         = "/run"
	ENDPOINT_RUN_ONCE    = "/run-once"
	ENDPOINT_RESET       = "/reset"
	ENDPOINT_MEMORY_EDIT = "/memory-edit"
)

// Panels are the display fragments returned by the server.
type Panels struct {
	RegistersFlags string `json:"registers_flags"`
	Memory         string `json:"memory"`
	Assembler      string `json:"assembler"`
	Index          *int   `json:"index,omitempty"` // Next line to execute, when reported.
}

// AssembleRequest is the /assemble body.
type AssembleRequest struct {
	Code  string          `json:"code"`
	Flags map[string]bool `json:"flags"`
}

// Client is a simulator server connection.
type Client struct {
	BaseURL string       // Server root, e.g. http://localhost:5000
	HTTP    *http.Client // If nil, http.DefaultClient is used.
	Verbose bool         // If set, logs every request.
	Logger  *log.Logger  // If nil, the standard logger is used.
}

// New creates a client for the server at base.
func New(base string) *Client {
	return &Client{BaseURL: strings.TrimSuffix(base, "/")}
}

func (c *Client) logf(format string, args ...any) {
	if !c.Verbose {
		return
	}
	if c.Logger == nil {
		log.Printf(format, args...)
	} else {
		c.Logger.Printf(format, args...)
	}
}

// post sends body to endpoint, and returns the reply body on status 200.
func (c *Client) post(ctx context.Context, endpoint string, content_type string, body []byte) (reply []byte, err error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+endpoint, rd)
	if err != nil {
		return
	}
	if body != nil {
		req.Header.Set("Content-Type", content_type)
	}

	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}

	c.logf("POST %v (%d bytes)", endpoint, len(body))

	resp, err := hc.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	reply, err = io.ReadAll(resp.Body)
	if err != nil {
		return
	}

	c.logf("POST %v: %v (%d bytes)", endpoint, resp.StatusCode, len(reply))

	if resp.StatusCode != http.StatusOK {
		err = &ErrStatus{Endpoint: endpoint, Code: resp.StatusCode, Message: string(reply)}
		reply = nil
		return
	}

	return
}

func (c *Client) postPanels(ctx context.Context, endpoint string, content_type string, body []byte) (panels Panels, err error) {
	reply, err := c.post(ctx, endpoint, content_type, body)
	if err != nil {
		return
	}

	err = json.Unmarshal(reply, &panels)
	if err != nil {
		err = &ErrDecode{Endpoint: endpoint, Err: err}
		return
	}

	return
}

// Assemble sends code and the assembler flags. On success the memory
// panel is returned.
func (c *Client) Assemble(ctx context.Context, code string, flags map[string]bool) (memory string, err error) {
	if flags == nil {
		flags = map[string]bool{}
	}
	body, err := json.Marshal(&AssembleRequest{Code: code, Flags: flags})
	if err != nil {
		return
	}

	reply, err := c.post(ctx, ENDPOINT_ASSEMBLE, "application/json", body)
	if err != nil {
		return
	}

	memory = string(reply)
	return
}

// Run executes the assembled program to completion.
func (c *Client) Run(ctx context.Context, code string) (panels Panels, err error) {
	return c.postPanels(ctx, ENDPOINT_RUN, "text/plain", []byte(code))
}

// RunOnce executes a single instruction. Panels.Index is always set.
func (c *Client) RunOnce(ctx context.Context, code string) (panels Panels, err error) {
	panels, err = c.postPanels(ctx, ENDPOINT_RUN_ONCE, "text/plain", []byte(code))
	if err == nil && panels.Index == nil {
		err = &ErrDecode{Endpoint: ENDPOINT_RUN_ONCE, Err: ErrIndexMissing}
	}
	return
}

// Reset discards the assembled program and all machine state.
func (c *Client) Reset(ctx context.Context) (panels Panels, err error) {
	return c.postPanels(ctx, ENDPOINT_RESET, "", nil)
}

// EditMemory writes each pair to memory.
func (c *Client) EditMemory(ctx context.Context, pairs []memedit.Pair) (panels Panels, err error) {
	if pairs == nil {
		pairs = []memedit.Pair{}
	}
	body, err := json.Marshal(pairs)
	if err != nil {
		return
	}

	return c.postPanels(ctx, ENDPOINT_MEMORY_EDIT, "application/json", body)
}
