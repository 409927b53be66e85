package models

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// ArgKind distinguishes literal constructor/call values from references to
// the address of an earlier step.
type ArgKind string

const (
	ArgLiteral   ArgKind = "literal"
	ArgReference ArgKind = "ref"
)

// Arg is a single constructor or call argument.
// Literal values are one of string, bool or *big.Int.
type Arg struct {
	Kind  ArgKind
	Value any
	Ref   string
}

// Literal builds a literal argument. Integer values are normalized to *big.Int.
func Literal(v any) Arg {
	switch n := v.(type) {
	case int:
		v = big.NewInt(int64(n))
	case int32:
		v = big.NewInt(int64(n))
	case int64:
		v = big.NewInt(n)
	case uint:
		v = new(big.Int).SetUint64(uint64(n))
	case uint32:
		v = new(big.Int).SetUint64(uint64(n))
	case uint64:
		v = new(big.Int).SetUint64(n)
	}
	return Arg{Kind: ArgLiteral, Value: v}
}

// Ref builds an argument that resolves to the address of the named step.
func Ref(step string) Arg {
	return Arg{Kind: ArgReference, Ref: step}
}

// IsRef reports whether the argument is a step reference
func (a Arg) IsRef() bool {
	return a.Kind == ArgReference
}

// IsEmpty reports whether the argument is neither a literal nor a reference
func (a Arg) IsEmpty() bool {
	switch a.Kind {
	case ArgReference:
		return a.Ref == ""
	case ArgLiteral:
		return a.Value == nil
	}
	return true
}

func (a Arg) String() string {
	if a.IsRef() {
		return "ref(" + a.Ref + ")"
	}
	switch v := a.Value.(type) {
	case *big.Int:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Values returns the literal values of already resolved arguments.
func Values(args []Arg) []any {
	values := make([]any, len(args))
	for i, a := range args {
		values[i] = a.Value
	}
	return values
}

type argJSON struct {
	Ref    string  `json:"ref,omitempty"`
	String *string `json:"string,omitempty"`
	Int    string  `json:"int,omitempty"`
	Bool   *bool   `json:"bool,omitempty"`
}

func (a Arg) MarshalJSON() ([]byte, error) {
	var out argJSON
	if a.IsRef() {
		out.Ref = a.Ref
		return json.Marshal(out)
	}
	switch v := a.Value.(type) {
	case string:
		out.String = &v
	case bool:
		out.Bool = &v
	case *big.Int:
		out.Int = v.String()
	default:
		return nil, fmt.Errorf("unsupported literal type %T", a.Value)
	}
	return json.Marshal(out)
}

func (a *Arg) UnmarshalJSON(data []byte) error {
	var in argJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch {
	case in.Ref != "":
		*a = Ref(in.Ref)
	case in.String != nil:
		*a = Literal(*in.String)
	case in.Bool != nil:
		*a = Literal(*in.Bool)
	case in.Int != "":
		n, ok := new(big.Int).SetString(in.Int, 10)
		if !ok {
			return fmt.Errorf("invalid integer literal %q", in.Int)
		}
		*a = Literal(n)
	default:
		return fmt.Errorf("empty argument")
	}
	return nil
}
