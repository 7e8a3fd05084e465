package session

import (
	"errors"

	"github.com/ezrec/simdesk/translate"
)

var f = translate.From

var (
	ErrProgramEmpty = errors.New(f("no program to assemble"))
	ErrNotRunnable  = errors.New(f("assemble the program first"))
	ErrIdle         = errors.New(f("no request in flight"))
)
