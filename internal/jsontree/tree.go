package jsontree

import (
	"encoding/json"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is a JSON object that remembers the order its keys were set in.
type Object = orderedmap.OrderedMap[string, any]

// Pair is a single key/value entry used to build objects with ObjectFrom.
type Pair struct {
	Key   string
	Value any
}

// NewObject returns an empty object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// ObjectFrom builds an object from the given pairs in order.
// A repeated key keeps its first position and takes the last value.
func ObjectFrom(pairs ...Pair) *Object {
	obj := NewObject()
	for _, p := range pairs {
		obj.Set(p.Key, p.Value)
	}
	return obj
}

// Keys returns the keys of the object in insertion order.
func Keys(obj *Object) []string {
	if obj == nil {
		return nil
	}
	keys := make([]string, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// DeepCopy returns a copy of v that shares no mutable state with it.
// Primitive values are returned as is.
func DeepCopy(v any) any {
	switch typed := v.(type) {
	case *Object:
		if typed == nil {
			return (*Object)(nil)
		}
		obj := NewObject()
		for pair := typed.Oldest(); pair != nil; pair = pair.Next() {
			obj.Set(pair.Key, DeepCopy(pair.Value))
		}
		return obj
	case []any:
		if typed == nil {
			return []any(nil)
		}
		arr := make([]any, len(typed))
		for i, elem := range typed {
			arr[i] = DeepCopy(elem)
		}
		return arr
	default:
		return v
	}
}

// Equal reports whether a and b are the same tree.
// Objects compare equal only if their keys appear in the same order.
// Numbers are compared by their source text.
func Equal(a, b any) bool {
	switch ta := a.(type) {
	case nil:
		return b == nil
	case *Object:
		tb, ok := b.(*Object)
		if !ok {
			return false
		}
		if ta == nil || tb == nil {
			return ta == tb
		}
		if ta.Len() != tb.Len() {
			return false
		}
		pa, pb := ta.Oldest(), tb.Oldest()
		for pa != nil && pb != nil {
			if pa.Key != pb.Key || !Equal(pa.Value, pb.Value) {
				return false
			}
			pa, pb = pa.Next(), pb.Next()
		}
		return pa == nil && pb == nil
	case []any:
		tb, ok := b.([]any)
		if !ok || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !Equal(ta[i], tb[i]) {
				return false
			}
		}
		return true
	case json.Number:
		tb, ok := b.(json.Number)
		return ok && ta == tb
	case string:
		tb, ok := b.(string)
		return ok && ta == tb
	case bool:
		tb, ok := b.(bool)
		return ok && ta == tb
	default:
		return reflect.DeepEqual(a, b)
	}
}
