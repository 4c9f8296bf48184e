// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core types of the request engine: Option
(a logical request descriptor), Network (the resolved, wire-ready form
of an Option), Response (the normalized result), and Execution (the
state of one call).

An Option describes a logical call against a backend API. The API string
may embed the HTTP method, and a relative path is resolved against a
domain table:

	o := &request.Option{
		API:  "GET rtapi/users/$id",
		Data: map[string]interface{}{"id": 7, "expand": "roles"},
	}
	resp, err := client.Request(ctx, o)
	...

Responses are normalized so that Data is always a plain map: a payload
which is not a JSON object is wrapped as {"value": payload}.

Execution is handed out by the client to observational event handlers.
You will typically not allocate Execution instances yourself.
*/
package request
