// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package qs encodes nested request data into query strings using the
bracket conventions understood by most web backends:

	qs.Stringify(map[string]interface{}{
		"page": 1,
		"ids":  []int{7, 9},
		"filter": map[string]interface{}{"name": "bob"},
	}, qs.Options{})
	// filter[name]=bob&ids[0]=7&ids[1]=9&page=1

The zero Options value matches the request engine defaults: no
percent-encoding, indexed arrays, and keys encoded together with values
when encoding is switched on. Keys are emitted in sorted order so that
the output is deterministic.
*/
package qs
