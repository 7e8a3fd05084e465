package memedit

import (
	"fmt"
	"regexp"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var reExpr = regexp.MustCompile(`\$\([^\$]*\)`)

// eval does $(...) evaluations.
func eval(expr string) (value int64, err error) {
	thread := starlark.Thread{Name: "memedit"}
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, nil)
	if err != nil {
		err = &ErrExpression{Expr: expr, Err: err}
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = &ErrExpression{Expr: expr}
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = &ErrExpression{Expr: expr}
		return
	}

	return
}

// expand replaces every $(...) in line with its value as a 0x literal.
func expand(line string) (expanded string, err error) {
	expanded = reExpr.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := eval(str[2 : len(str)-1])
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		return fmt.Sprintf("%#x", value)
	})

	return
}
