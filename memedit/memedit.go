// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package memedit parses the memory edit mini-language.
//
// Two forms are accepted:
//
//	ADDR=VALUE    write VALUE to ADDR
//	START:END     fill START..END (inclusive) with random bytes
//
// Every number is a hex literal in any of the forms `0x12`, `0X12`, `12H`,
// `12h` or bare `12`. A `$(expr)` anywhere in the line is evaluated first,
// so `$(0x10 + 4)=ff` writes 0xff to 0x14.
package memedit

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// MaxRange is the largest number of cells a single range edit may fill.
const MaxRange = 0x10000

// Pair is a single address/value write, encoded as a two element array.
type Pair struct {
	Address string
	Value   string
}

func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{p.Address, p.Value})
}

func (p *Pair) UnmarshalJSON(data []byte) (err error) {
	var pair [2]string
	err = json.Unmarshal(data, &pair)
	if err != nil {
		return
	}
	p.Address, p.Value = pair[0], pair[1]
	return
}

// Edit is a parsed memory edit request.
type Edit interface {
	Pairs() []Pair
}

// SingleEdit writes one value to one address. Neither side is validated.
type SingleEdit Pair

func (se SingleEdit) Pairs() []Pair {
	return []Pair{Pair(se)}
}

// RangeEdit fills Start..End inclusive with Values.
type RangeEdit struct {
	Start  int64
	End    int64
	Values []byte // One per address, Values[0] at Start.
}

func (re RangeEdit) Pairs() (pairs []Pair) {
	pairs = []Pair{}
	for n, value := range re.Values {
		pairs = append(pairs, Pair{
			Address: fmt.Sprintf("%#x", re.Start+int64(n)),
			Value:   fmt.Sprintf("%#x", value),
		})
	}
	return
}

// Parser parses memory edits. The zero value is ready to use.
type Parser struct {
	Rand *rand.Rand // Source of range fill values. If nil, the global source is used.
}

var defaultParser Parser

// Parse parses raw with the default parser.
func Parse(raw string) (Edit, error) {
	return defaultParser.Parse(raw)
}

func (p *Parser) randomByte() byte {
	if p.Rand == nil {
		return byte(rand.IntN(256))
	}
	return byte(p.Rand.IntN(256))
}

// Parse decides between a range and a single edit.
func (p *Parser) Parse(raw string) (edit Edit, err error) {
	line, err := expand(raw)
	if err != nil {
		return
	}

	switch {
	case strings.Contains(line, ":"):
		edit, err = p.parseRange(line)
	case !strings.Contains(line, "="):
		err = ErrNoOperator
	default:
		edit, err = p.parseSingle(line)
	}

	return
}

func tokens(line string, sep string) (words []string, err error) {
	words = strings.Split(line, sep)
	if len(words) != 2 {
		err = ErrTooManyOperators
		return
	}

	for n, word := range words {
		words[n] = ToHex(strings.TrimSpace(word))
	}

	return
}

func parseHex(word string) (value int64, err error) {
	value, err = strconv.ParseInt(strings.TrimPrefix(strings.ToLower(word), "0x"), 16, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

func (p *Parser) parseRange(line string) (edit Edit, err error) {
	words, err := tokens(line, ":")
	if err != nil {
		return
	}

	start, err := parseHex(words[0])
	if err != nil {
		return
	}
	end, err := parseHex(words[1])
	if err != nil {
		return
	}

	re := RangeEdit{Start: start, End: end}
	if end >= start {
		if end-start >= MaxRange {
			err = ErrRangeTooLarge
			return
		}
		re.Values = make([]byte, end-start+1)
		for n := range re.Values {
			re.Values[n] = p.randomByte()
		}
	}

	edit = re
	return
}

func (p *Parser) parseSingle(line string) (edit Edit, err error) {
	words, err := tokens(line, "=")
	if err != nil {
		return
	}

	edit = SingleEdit{Address: words[0], Value: words[1]}
	return
}
