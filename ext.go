package cheby

import "fmt"

// Extensions holds a node's x_hdl and x_driver_edge annotations,
// keyed by the dotted path used in the front end (e.g.
// "x_hdl.busgroup", "x_driver_edge.reg-role"). The set of recognized
// keys is closed (§3.1); an unrecognized key is stored but never
// consulted by any component here, matching upstream convention.
type Extensions map[string]ExtValue

type extKind int

const (
	extUndefined extKind = iota
	extBool
	extInt
	extString
	extList
	extMap
)

// ExtValue is a tagged union over the value shapes an extension can
// carry: a bare scalar, a list (e.g. interrupt-controllers), or a
// nested map (e.g. reg-role's args).
type ExtValue struct {
	kind   extKind
	bval   bool
	ival   int
	sval   string
	lval   []ExtValue
	mval   map[string]ExtValue
}

func BoolExt(v bool) ExtValue     { return ExtValue{kind: extBool, bval: v} }
func IntExt(v int) ExtValue       { return ExtValue{kind: extInt, ival: v} }
func StringExt(v string) ExtValue { return ExtValue{kind: extString, sval: v} }
func ListExt(v []ExtValue) ExtValue {
	return ExtValue{kind: extList, lval: v}
}
func MapExt(v map[string]ExtValue) ExtValue {
	return ExtValue{kind: extMap, mval: v}
}

// Bool returns the key's boolean value, or def if the key is absent
// or not a bool.
func (e Extensions) Bool(key string, def bool) bool {
	if v, ok := e[key]; ok && v.kind == extBool {
		return v.bval
	}
	return def
}

// Int returns the key's integer value, or def if the key is absent or
// not an int.
func (e Extensions) Int(key string, def int) int {
	if v, ok := e[key]; ok && v.kind == extInt {
		return v.ival
	}
	return def
}

// String returns the key's string value, or def if the key is absent
// or not a string.
func (e Extensions) String(key string, def string) string {
	if v, ok := e[key]; ok && v.kind == extString {
		return v.sval
	}
	return def
}

// List returns the key's list value, or nil if the key is absent or
// not a list.
func (e Extensions) List(key string) []ExtValue {
	if v, ok := e[key]; ok && v.kind == extList {
		return v.lval
	}
	return nil
}

// Map returns the key's map value, or nil if the key is absent or not
// a map.
func (e Extensions) Map(key string) map[string]ExtValue {
	if v, ok := e[key]; ok && v.kind == extMap {
		return v.mval
	}
	return nil
}

// Has reports whether key is present at all, regardless of kind.
func (e Extensions) Has(key string) bool {
	_, ok := e[key]
	return ok
}

// Int returns v's integer value, or 0 if v is not an int.
func (v ExtValue) Int() int {
	if v.kind == extInt {
		return v.ival
	}
	return 0
}

// Map returns v's nested map, or nil if v is not a map.
func (v ExtValue) Map() map[string]ExtValue {
	if v.kind == extMap {
		return v.mval
	}
	return nil
}

// List returns v's nested list, or nil if v is not a list.
func (v ExtValue) List() []ExtValue {
	if v.kind == extList {
		return v.lval
	}
	return nil
}

// AsString renders a scalar ExtValue for use in formatted output
// (e.g. role args rendered as "min-val=0x10"). Lists and maps are not
// supported and return a placeholder rather than panicking, since
// this is only ever used for human-readable diagnostics.
func (v ExtValue) AsString() string {
	switch v.kind {
	case extBool:
		return fmt.Sprintf("%t", v.bval)
	case extInt:
		return fmt.Sprintf("%d", v.ival)
	case extString:
		return v.sval
	default:
		return "<complex>"
	}
}

// Generate reports the effective x_driver_edge.generate flag, which
// defaults to true when absent.
func (e Extensions) Generate() bool {
	return e.Bool("x_driver_edge.generate", true)
}
