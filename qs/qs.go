// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package qs

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// An ArrayFormat selects how slice values are written.
type ArrayFormat int

const (
	// Indices writes slices as a[0]=x&a[1]=y. It is the default.
	Indices ArrayFormat = iota
	// Brackets writes slices as a[]=x&a[]=y.
	Brackets
	// Repeat writes slices as a=x&a=y.
	Repeat
	// Comma writes slices as a=x,y.
	Comma
)

// Options controls query string encoding. The zero value is the
// default configuration.
type Options struct {
	// Encode turns on percent-encoding of keys and values.
	Encode bool `json:"encode" yaml:"encode"`
	// ArrayFormat selects how slice values are written.
	ArrayFormat ArrayFormat `json:"arrayFormat" yaml:"arrayFormat"`
	// EncodeValuesOnly restricts percent-encoding to values, leaving
	// bracketed keys readable. It has no effect unless Encode is set.
	EncodeValuesOnly bool `json:"encodeValuesOnly" yaml:"encodeValuesOnly"`
}

// A Pair is one flattened key and its leaf value.
type Pair struct {
	Key   string
	Value interface{}
}

// Stringify encodes data as a query string without a leading '?'.
//
// Parameter data may be nil, a map with string keys, or url.Values.
// Nil leaf values are skipped.
func Stringify(data interface{}, opts Options) string {
	pairs := Flatten(data, opts.ArrayFormat)
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		k, v := p.Key, FormatValue(p.Value)
		if opts.Encode {
			if !opts.EncodeValuesOnly {
				k = url.QueryEscape(k)
			}
			v = url.QueryEscape(v)
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, "&")
}

// Flatten walks data and returns its leaves keyed with bracket
// notation. Maps are walked in sorted key order. Byte slices, structs,
// and pointers to structs are leaves.
func Flatten(data interface{}, format ArrayFormat) []Pair {
	var pairs []Pair
	switch x := data.(type) {
	case nil:
		return nil
	case url.Values:
		for _, k := range sortedKeys(x) {
			vs := x[k]
			if len(vs) == 1 {
				pairs = append(pairs, Pair{Key: k, Value: vs[0]})
				continue
			}
			pairs = flatten(pairs, k, reflect.ValueOf(vs), format)
		}
		return pairs
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Map || v.Type().Key().Kind() != reflect.String {
		return nil
	}
	for _, k := range mapKeys(v) {
		pairs = flatten(pairs, k, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), format)
	}
	return pairs
}

func flatten(pairs []Pair, prefix string, v reflect.Value, format ArrayFormat) []Pair {
	for v.Kind() == reflect.Interface {
		if v.IsNil() {
			return pairs
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return pairs
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return pairs
		}
		return append(pairs, Pair{Key: prefix, Value: v.Interface()})
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return append(pairs, Pair{Key: prefix, Value: v.Interface()})
		}
		for _, k := range mapKeys(v) {
			pairs = flatten(pairs, prefix+"["+k+"]", v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), format)
		}
		return pairs
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return append(pairs, Pair{Key: prefix, Value: v.Interface()})
		}
		if format == Comma {
			items := make([]string, 0, v.Len())
			for i := 0; i < v.Len(); i++ {
				items = append(items, FormatValue(v.Index(i).Interface()))
			}
			return append(pairs, Pair{Key: prefix, Value: strings.Join(items, ",")})
		}
		for i := 0; i < v.Len(); i++ {
			pairs = flatten(pairs, arrayKey(prefix, i, format), v.Index(i), format)
		}
		return pairs
	default:
		return append(pairs, Pair{Key: prefix, Value: v.Interface()})
	}
}

func arrayKey(prefix string, i int, format ArrayFormat) string {
	switch format {
	case Brackets:
		return prefix + "[]"
	case Repeat:
		return prefix
	default:
		return prefix + "[" + strconv.Itoa(i) + "]"
	}
}

// FormatValue renders a leaf value as text. Times use RFC 3339 with
// millisecond precision.
func FormatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		return x.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func sortedKeys(m url.Values) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

func mapKeys(v reflect.Value) []string {
	keys := lo.Map(v.MapKeys(), func(k reflect.Value, _ int) string {
		return k.String()
	})
	sort.Strings(keys)
	return keys
}
