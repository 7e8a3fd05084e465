package memedit

import (
	"errors"

	"github.com/ezrec/simdesk/translate"
)

var f = translate.From

var (
	ErrNoOperator       = errors.New(f("invalid: expected ADDR=VALUE or START:END"))
	ErrTooManyOperators = errors.New(f("invalid: more than one ':' or '='"))
	ErrRangeTooLarge    = errors.New(f("invalid: range exceeds address space"))
)

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a hex number", string(err))
}

type ErrExpression struct {
	Expr string
	Err  error
}

func (err *ErrExpression) Error() string {
	if err.Err == nil {
		return f("$(%v) is not a valid expression", err.Expr)
	}
	return f("$(%v) %v", err.Expr, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}
