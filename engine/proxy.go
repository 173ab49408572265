package engine

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// invokeByName calls a method on a native provider interface by its wire
// name, decoding JSON arguments into the method's parameter types and
// encoding non-error results back to JSON. Wire names are kebab-case
// (frame-duration matches FrameDuration). A trailing error result turns
// into a call failure.
func invokeByName(iface any, method string, args []json.RawMessage) ([]json.RawMessage, error) {
	rv := reflect.ValueOf(iface)
	rt := rv.Type()

	var fn reflect.Value
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !m.IsExported() {
			continue
		}
		if toKebabCase(m.Name) == method || m.Name == method {
			fn = rv.Method(i)
			break
		}
	}
	if !fn.IsValid() {
		return nil, fmt.Errorf("capability has no method %q", method)
	}

	fnType := fn.Type()
	if fnType.NumIn() != len(args) {
		return nil, fmt.Errorf("method %q takes %d arguments, got %d", method, fnType.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, raw := range args {
		arg := reflect.New(fnType.In(i))
		if err := json.Unmarshal(raw, arg.Interface()); err != nil {
			return nil, fmt.Errorf("decode argument %d of %q: %w", i, method, err)
		}
		in[i] = arg.Elem()
	}

	out := fn.Call(in)

	errType := reflect.TypeFor[error]()
	results := make([]json.RawMessage, 0, len(out))
	for i, v := range out {
		if i == len(out)-1 && fnType.Out(i).Implements(errType) {
			if !v.IsNil() {
				return nil, v.Interface().(error)
			}
			continue
		}
		data, err := json.Marshal(v.Interface())
		if err != nil {
			return nil, fmt.Errorf("encode result %d of %q: %w", i, method, err)
		}
		results = append(results, data)
	}
	return results, nil
}

// toKebabCase converts an exported Go method name to its wire form:
// FrameDuration becomes frame-duration, HTTPStatus becomes http-status.
// A word starts at an uppercase rune following a lowercase one, or at the
// last rune of an uppercase run when lowercase follows (acronym boundary).
func toKebabCase(s string) string {
	runes := []rune(s)
	var b strings.Builder

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		afterLower := i > 0 && !unicode.IsUpper(runes[i-1])
		closesAcronym := i > 0 && unicode.IsUpper(runes[i-1]) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if afterLower || closesAcronym {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
