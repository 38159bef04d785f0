package cv

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrTermNotFound means the requested term is not present in a parameter list
	ErrTermNotFound = errors.New("cv: term not found")
	// ErrConversion means a term value could not be parsed as the requested type
	ErrConversion = errors.New("cv: value conversion failed")
)

// ConversionError reports a term whose raw value does not parse as the
// requested type. It matches ErrConversion with errors.Is.
type ConversionError struct {
	Term  TermID
	Value string
	Type  string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cv: value %q of %s is not a valid %s: %v", e.Value, e.Term, e.Type, e.Err)
}

// Is makes errors.Is(err, ErrConversion) work
func (e *ConversionError) Is(target error) bool { return target == ErrConversion }

func (e *ConversionError) Unwrap() error { return e.Err }

// Param is either a CVParam or a UserParam
type Param interface {
	param()
	// Label returns the human readable name of the parameter
	Label() string
	// RawValue returns the unparsed value
	RawValue() string
}

// CVParam is a controlled vocabulary term with value and optional unit
type CVParam struct {
	Term  TermID
	Name  string // informational, not used for equality
	Value string
	Unit  TermID // empty if there is no unit
}

// UserParam is a free-text parameter
type UserParam struct {
	Name  string
	Type  string
	Value string
	Unit  TermID
}

func (CVParam) param()   {}
func (UserParam) param() {}

func (p CVParam) Label() string      { return p.Name }
func (p CVParam) RawValue() string   { return p.Value }
func (p UserParam) Label() string    { return p.Name }
func (p UserParam) RawValue() string { return p.Value }

// ParamList is the annotation list every entity holds
type ParamList []Param

// CV returns the first cvParam with the given term
func (l ParamList) CV(id TermID) (CVParam, bool) {
	for _, p := range l {
		if c, ok := p.(CVParam); ok && c.Term == id {
			return c, true
		}
	}
	return CVParam{}, false
}

// User returns the first userParam with the given name
func (l ParamList) User(name string) (UserParam, bool) {
	for _, p := range l {
		if u, ok := p.(UserParam); ok && u.Name == name {
			return u, true
		}
	}
	return UserParam{}, false
}

// CVParams returns only the cvParams, in order
func (l ParamList) CVParams() []CVParam {
	var out []CVParam
	for _, p := range l {
		if c, ok := p.(CVParam); ok {
			out = append(out, c)
		}
	}
	return out
}

// UserParams returns only the userParams, in order
func (l ParamList) UserParams() []UserParam {
	var out []UserParam
	for _, p := range l {
		if u, ok := p.(UserParam); ok {
			out = append(out, u)
		}
	}
	return out
}

// Has reports whether a cvParam with the given term is present
func (l ParamList) Has(id TermID) bool {
	_, ok := l.CV(id)
	return ok
}

func paramEqual(a, b Param) bool {
	switch a := a.(type) {
	case CVParam:
		c, ok := b.(CVParam)
		return ok && a.Term == c.Term && a.Value == c.Value && a.Unit == c.Unit
	case UserParam:
		u, ok := b.(UserParam)
		return ok && a == u
	}
	return false
}

// ParamEqual compares two parameters. The name of a cvParam is ignored,
// it is implied by the term. Two nil parameters are equal.
func ParamEqual(a, b Param) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return paramEqual(a, b)
}

// Equal compares two parameter lists regardless of order
func (l ParamList) Equal(o ParamList) bool {
	if len(l) != len(o) {
		return false
	}
	used := make([]bool, len(o))
outer:
	for _, p := range l {
		for j, q := range o {
			if !used[j] && paramEqual(p, q) {
				used[j] = true
				continue outer
			}
		}
		return false
	}
	return true
}

// Scalar lists the types Value can convert to
type Scalar interface {
	string | bool | int | int64 | float64
}

// Value parses the value of the cvParam with term id as type T.
// It returns ErrTermNotFound if the term is missing and a *ConversionError
// if the value can't be parsed.
func Value[T Scalar](l ParamList, id TermID) (T, error) {
	var v T
	p, ok := l.CV(id)
	if !ok {
		return v, errors.Wrapf(ErrTermNotFound, "%s", id)
	}
	return parseAs[T](id, p.Value)
}

func parseAs[T Scalar](id TermID, s string) (T, error) {
	var v T
	var err error
	var typ string
	switch p := any(&v).(type) {
	case *string:
		*p = s
	case *bool:
		typ = "bool"
		*p, err = strconv.ParseBool(s)
	case *int:
		typ = "int"
		*p, err = strconv.Atoi(s)
	case *int64:
		typ = "int64"
		*p, err = strconv.ParseInt(s, 10, 64)
	case *float64:
		typ = "float64"
		*p, err = strconv.ParseFloat(s, 64)
	}
	if err != nil {
		return v, &ConversionError{Term: id, Value: s, Type: typ, Err: err}
	}
	return v, nil
}
