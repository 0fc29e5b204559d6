// Package enum translates between the symbolic labels used by the client
// and the integer ordinals used on the wire.
//
// Every table is declared as an explicit list of label/ordinal pairs and is
// checked for duplicates when built, so a mismatch between client and
// server ordering is a visible edit rather than an array shuffle.
package enum

import (
	"errors"
	"fmt"
	"strings"
)

var ErrDecode = errors.New("unknown enumeration value")

// DecodeError reports a label or ordinal that is not part of a table.
type DecodeError struct {
	Enum  string
	Value any
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unknown value %v", e.Enum, e.Value)
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Pair binds a label to its wire ordinal.
type Pair[T ~string] struct {
	Label   T
	Ordinal int
}

// Table is an immutable bijection between labels and ordinals.
type Table[T ~string] struct {
	name       string
	pairs      []Pair[T]
	byLabel    map[T]int
	byOrdinal  map[int]T
	byFoldName map[string]T
}

// NewTable validates pairs and builds a table. Duplicate labels or ordinals
// and empty labels are rejected.
func NewTable[T ~string](name string, pairs ...Pair[T]) (*Table[T], error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("enum %s: no values", name)
	}

	t := &Table[T]{
		name:       name,
		pairs:      append([]Pair[T](nil), pairs...),
		byLabel:    make(map[T]int, len(pairs)),
		byOrdinal:  make(map[int]T, len(pairs)),
		byFoldName: make(map[string]T, len(pairs)),
	}
	for _, p := range pairs {
		if p.Label == "" {
			return nil, fmt.Errorf("enum %s: empty label for ordinal %d", name, p.Ordinal)
		}
		if _, dup := t.byLabel[p.Label]; dup {
			return nil, fmt.Errorf("enum %s: duplicate label %q", name, p.Label)
		}
		if _, dup := t.byOrdinal[p.Ordinal]; dup {
			return nil, fmt.Errorf("enum %s: duplicate ordinal %d", name, p.Ordinal)
		}
		t.byLabel[p.Label] = p.Ordinal
		t.byOrdinal[p.Ordinal] = p.Label
		t.byFoldName[strings.ToLower(string(p.Label))] = p.Label
	}
	return t, nil
}

// MustTable is NewTable that panics. Meant for package-level tables so a bad
// declaration fails at start-up.
func MustTable[T ~string](name string, pairs ...Pair[T]) *Table[T] {
	t, err := NewTable(name, pairs...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) Encode(label T) (int, error) {
	o, ok := t.byLabel[label]
	if !ok {
		return 0, &DecodeError{Enum: t.name, Value: label}
	}
	return o, nil
}

func (t *Table[T]) Decode(ordinal int) (T, error) {
	l, ok := t.byOrdinal[ordinal]
	if !ok {
		return "", &DecodeError{Enum: t.name, Value: ordinal}
	}
	return l, nil
}

// Parse looks a label up ignoring case and surrounding blanks.
func (t *Table[T]) Parse(text string) (T, error) {
	l, ok := t.byFoldName[strings.ToLower(strings.TrimSpace(text))]
	if !ok {
		return "", &DecodeError{Enum: t.name, Value: text}
	}
	return l, nil
}

func (t *Table[T]) Valid(label T) bool {
	_, ok := t.byLabel[label]
	return ok
}

// Labels lists labels in declaration order.
func (t *Table[T]) Labels() []T {
	out := make([]T, len(t.pairs))
	for i, p := range t.pairs {
		out[i] = p.Label
	}
	return out
}
