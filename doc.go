// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package reqx provides a request engine which turns logical API
descriptors into HTTP calls, with a GET response cache, mock data for
development builds, and a hook pipeline around every call.

Create a Client with a domain table to begin making requests.

	client := reqx.New(reqx.Config{
		Domains: map[string]string{"api": "https://api.example.com"},
	})
	r, err := client.Get(ctx, "rtapi/users/$id", map[string]interface{}{"id": 7})
	...
	r, err := client.Request(ctx, &request.Option{
		URL:     "GET rtapi/items",
		Data:    map[string]interface{}{"page": 2},
		Expired: time.Minute,
	})

Response data is always a map. Non-object payloads are wrapped under
the key "value".

On failure, the error is an *Error whose Kind tells configuration,
network, protocol, and hook failures apart. Protocol errors carry the
normalized server response:

	var rerr *reqx.Error
	if errors.As(err, &rerr) && rerr.Kind == reqx.ProtocolError {
		log.Print(rerr.Response.Status)
	}

Client-level hooks run around the per-call hooks of the same name. Use
them for cross-cutting concerns such as authentication:

	client.OnRequest = func(ctx context.Context, n *request.Network) (*request.Network, error) {
		n.Header.Set("Authorization", "Bearer "+token)
		n.Header.Set("X-Action-Addr", n.Option.ActionAddr)
		return n, nil
	}

For control over how the client sends HTTP requests and receives HTTP
responses, use a custom HTTPDoer. For control over transport timeouts,
set a policy from package timeout:

	client.HTTPDoer = &http.Client{...}
	client.TimeoutPolicy = timeout.ByMethod(map[string]timeout.Policy{
		"POST": timeout.Fixed(time.Minute),
	}, timeout.Fixed(10*time.Second))

To observe the engine's stages, install a handler into the appropriate
handler chain:

	handlers := &reqx.HandlerGroup{}
	handlers.PushBack(reqx.AfterExecutionEnd, reqx.HandlerFunc(
		func(_ reqx.Event, e *request.Execution) {
			log.Printf("%s %s from %s in %s", e.ID, e.Option.API, e.Source, e.Duration())
		}))
	client.Handlers = handlers
*/
package reqx
