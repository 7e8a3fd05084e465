// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/ezrec/simdesk/client"
	"github.com/ezrec/simdesk/internal/loopback"
	"github.com/ezrec/simdesk/session"
	"github.com/ezrec/simdesk/store"
	"github.com/ezrec/simdesk/translate"
)

// flagInputs collects repeated -flag NAME[=BOOL] options.
type flagInputs map[string]bool

func (fi flagInputs) String() string {
	return fmt.Sprintf("%v", map[string]bool(fi))
}

func (fi flagInputs) Set(value string) (err error) {
	name, text, found := strings.Cut(value, "=")
	enabled := true
	if found {
		enabled, err = strconv.ParseBool(text)
		if err != nil {
			return
		}
	}
	fi[name] = enabled
	return
}

const usage = `commands:
  load FILE        read program text from FILE
  code             enter program text, end with a line holding only '.'
  list             print the program text
  flag NAME BOOL   set an assembler flag
  assemble         assemble the program
  run              run to completion
  step             run one instruction
  reset            reset the simulator
  mem EDIT         edit memory: ADDR=VALUE or START:END (random fill)
  show             print the last panels and progress
  quit
`

func main() {
	var server string
	var program string
	var cache string
	var local bool
	var lang string
	var verbose bool
	flags := flagInputs{}

	flag.StringVar(&server, "s", "http://localhost:5000", "Simulator server URL")
	flag.StringVar(&program, "f", "", "Program file to load")
	flag.StringVar(&cache, "c", "", "Program cache file (default: user cache dir)")
	flag.BoolVar(&local, "l", false, "Use the built-in loopback simulator")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&lang, "locale", "", "Message locale (default: system locale)")
	flag.Var(flags, "flag", "Assembler flag NAME[=BOOL], may be repeated")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(lang) != 0 {
		translate.SetLocales(lang)
	}
	if verbose {
		log.Printf("simdesk: locale %v", translate.Language())
	}

	if local {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("loopback: %v", err)
		}
		defer ln.Close()
		go http.Serve(ln, &loopback.Server{})
		server = "http://" + ln.Addr().String()
	}

	sim := client.New(server)
	sim.Verbose = verbose
	sim.Logger = log.New(os.Stderr, "simdesk: ", log.LstdFlags)

	view := &termView{out: os.Stdout}
	ctl := session.NewController(sim, view)
	ctl.Verbose = verbose
	view.program = func() string { return strings.TrimSpace(ctl.Program) }

	if len(cache) == 0 {
		path, err := store.DefaultPath()
		if err != nil {
			log.Printf("simdesk: cache: %v", err)
		}
		cache = path
	}
	if len(cache) != 0 {
		ctl.Store = &store.File{Path: cache}
		err := ctl.Load()
		if err != nil {
			log.Printf("simdesk: cache: %v", err)
		}
	}

	for name, enabled := range flags {
		ctl.SetFlag(name, enabled)
	}

	if len(program) != 0 {
		data, err := os.ReadFile(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		ctl.SetProgram(string(data))
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	err := repl(context.Background(), ctl, os.Stdin, os.Stdout, interactive)
	if err != nil {
		log.Fatal(err)
	}
}

// repl runs commands from in until EOF or quit.
func repl(ctx context.Context, ctl *session.Controller, in io.Reader, out io.Writer, interactive bool) (err error) {
	scanner := bufio.NewScanner(in)

	prompt := func(text string) {
		if interactive {
			fmt.Fprint(out, text)
		}
	}

	for prompt("simdesk> "); scanner.Scan(); prompt("simdesk> ") {
		words := strings.Fields(scanner.Text())
		if len(words) == 0 {
			continue
		}

		var cmd_err error
		switch words[0] {
		case "quit", "exit":
			return
		case "help", "?":
			fmt.Fprint(out, usage)
		case "load":
			if len(words) != 2 {
				cmd_err = fmt.Errorf("usage: load FILE")
				break
			}
			var data []byte
			data, cmd_err = os.ReadFile(words[1])
			if cmd_err == nil {
				ctl.SetProgram(string(data))
			}
		case "code":
			var lines []string
			for prompt(".. "); scanner.Scan(); prompt(".. ") {
				if scanner.Text() == "." {
					break
				}
				lines = append(lines, scanner.Text())
			}
			ctl.SetProgram(strings.Join(lines, "\n"))
		case "list":
			fmt.Fprintln(out, ctl.Program)
		case "flag":
			if len(words) != 3 {
				cmd_err = fmt.Errorf("usage: flag NAME BOOL")
				break
			}
			var enabled bool
			enabled, cmd_err = strconv.ParseBool(words[2])
			if cmd_err == nil {
				ctl.SetFlag(words[1], enabled)
			}
		case "assemble":
			cmd_err = ctl.Assemble(ctx)
		case "run":
			cmd_err = ctl.Run(ctx)
		case "step":
			cmd_err = ctl.Step(ctx)
		case "reset":
			cmd_err = ctl.Reset(ctx)
		case "mem":
			cmd_err = ctl.EditMemory(ctx, strings.Join(words[1:], ""))
		case "show":
			ctl.View.ShowPanels(ctl.Panels)
			ctl.View.ShowTrack(ctl.Track)
		default:
			cmd_err = fmt.Errorf("unknown command %q, try help", words[0])
		}

		if cmd_err != nil {
			fmt.Fprintf(out, "!! %v\n", cmd_err)
		}

		err = ctl.Drain(ctx)
		if err != nil {
			return
		}
	}

	return scanner.Err()
}
