// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package loopback is an in-process stand-in for the simulator server.
//
// It speaks the same five endpoints with the same status and body
// conventions, but its machine is trivial: every non-empty line is one
// instruction, `STORE addr value` writes a memory cell, `FAIL` fails at
// run time, and everything else is a no-op.
package loopback

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Server is the loopback simulator. The zero value is ready to use.
type Server struct {
	mutex  sync.Mutex
	lines  []string
	flags  map[string]bool
	memory map[uint16]uint8
	index  int
	ready  bool

	Requests []string // Endpoints hit, in order.
}

var _ http.Handler = &Server{}

func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	srv.mutex.Lock()
	defer srv.mutex.Unlock()

	srv.Requests = append(srv.Requests, r.URL.Path)

	switch r.URL.Path {
	case "/assemble":
		srv.assemble(w, body)
	case "/run":
		srv.run(w, false)
	case "/run-once":
		srv.run(w, true)
	case "/reset":
		srv.reset()
		srv.reply(w, false)
	case "/memory-edit":
		srv.memoryEdit(w, body)
	default:
		http.NotFound(w, r)
	}
}

// Flags returns the assembler flags last received.
func (srv *Server) Flags() map[string]bool {
	srv.mutex.Lock()
	defer srv.mutex.Unlock()

	return maps.Clone(srv.flags)
}

// Peek returns a memory cell.
func (srv *Server) Peek(addr uint16) uint8 {
	srv.mutex.Lock()
	defer srv.mutex.Unlock()

	return srv.memory[addr]
}

func (srv *Server) reset() {
	srv.lines = nil
	srv.flags = nil
	srv.memory = nil
	srv.index = 0
	srv.ready = false
}

func (srv *Server) assemble(w http.ResponseWriter, body []byte) {
	var req struct {
		Code  string          `json:"code"`
		Flags map[string]bool `json:"flags"`
	}

	err := json.Unmarshal(body, &req)
	if err != nil || len(req.Code) == 0 || req.Flags == nil {
		http.Error(w, "Record not found", http.StatusBadRequest)
		return
	}

	var lines []string
	for n, line := range strings.Split(req.Code, "\n") {
		if len(line) == 0 {
			continue
		}
		words := strings.Fields(line)
		if len(words) > 0 && words[0] == "STORE" && len(words) != 3 {
			http.Error(w, fmt.Sprintf("Exception raised line %d: STORE needs two operands", n+1), http.StatusBadRequest)
			return
		}
		lines = append(lines, line)
	}

	srv.reset()
	srv.lines = lines
	srv.flags = req.Flags
	srv.ready = true

	io.WriteString(w, srv.memoryPanel())
}

func (srv *Server) step() (err error) {
	line := srv.lines[srv.index]
	srv.index++

	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case "FAIL":
		err = fmt.Errorf("Exception raised %v", line)
	case "STORE":
		err = srv.write(words[1], words[2])
	}

	return
}

func (srv *Server) run(w http.ResponseWriter, once bool) {
	if !srv.ready {
		http.Error(w, "Controller not ready", http.StatusBadRequest)
		return
	}

	for srv.index < len(srv.lines) {
		err := srv.step()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if once {
			break
		}
	}

	srv.reply(w, once)
}

func parseHex(word string) (value uint64, err error) {
	word = strings.TrimPrefix(strings.TrimPrefix(word, "0x"), "0X")
	return strconv.ParseUint(word, 16, 16)
}

func (srv *Server) write(addr_word string, value_word string) (err error) {
	addr, err := parseHex(addr_word)
	if err != nil {
		return fmt.Errorf("Exception raised bad address %v", addr_word)
	}
	value, err := parseHex(value_word)
	if err != nil || value > 0xff {
		return fmt.Errorf("Exception raised bad value %v", value_word)
	}

	if srv.memory == nil {
		srv.memory = make(map[uint16]uint8)
	}
	srv.memory[uint16(addr)] = uint8(value)

	return nil
}

func (srv *Server) memoryEdit(w http.ResponseWriter, body []byte) {
	var pairs [][2]string

	err := json.Unmarshal(body, &pairs)
	if err != nil {
		http.Error(w, "Controller not ready", http.StatusBadRequest)
		return
	}

	for _, pair := range pairs {
		err = srv.write(pair[0], pair[1])
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	srv.reply(w, true)
}

func (srv *Server) memoryPanel() string {
	var sb strings.Builder
	for _, addr := range slices.Sorted(maps.Keys(srv.memory)) {
		fmt.Fprintf(&sb, "%04x: %02x\n", addr, srv.memory[addr])
	}
	return sb.String()
}

func (srv *Server) reply(w http.ResponseWriter, with_index bool) {
	reply := map[string]any{
		"registers_flags": fmt.Sprintf("PC=%04x", srv.index),
		"memory":          srv.memoryPanel(),
		"assembler":       strings.Join(srv.lines, "\n"),
	}
	if with_index {
		reply["index"] = srv.index
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reply)
}
