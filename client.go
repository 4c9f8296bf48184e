// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqx

import (
	"context"
	"errors"
	"time"

	"github.com/gogama/reqx/cache"
	"github.com/gogama/reqx/mock"
	"github.com/gogama/reqx/payload"
	"github.com/gogama/reqx/request"
	"github.com/gogama/reqx/resolve"
	"github.com/gogama/reqx/store"
	"github.com/gogama/reqx/timeout"
	"github.com/gogama/reqx/transient"
	"github.com/gogama/reqx/transport"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// A Client is a request engine. It turns logical request options into
// HTTP calls, answering from the GET response cache or mock data where
// possible, and runs the hook pipeline around every call. Its zero
// value is a valid configuration with no domains, no cache, and no
// hooks.
//
// A Client is safe for concurrent use by multiple goroutines once its
// fields have been set. Use New to create a client with an in-process
// cache store.
//
// The lifecycle of one call is strictly sequential:
//
// • pre-request hooks may replace the option;
//
// • the URL and body are resolved and request hooks may replace the
// resulting network option;
//
// • a GET with a positive Expired is answered from the cache if a
// fresh entry exists, in which case no further hooks run;
//
// • mock data, if enabled, is used instead of the network;
//
// • otherwise the transport sends the request and the response is
// normalized;
//
// • success hooks transform the response data, or on failure the error
// hooks run;
//
// • the finish hook observes the outcome and GET responses are cached.
type Client struct {
	// Domains maps domain aliases to URL prefixes. An option's own
	// Domains table takes precedence.
	Domains map[string]string

	// IsRelease disables mock data.
	IsRelease bool

	// OnPreRequest runs before the option's OnPreRequest.
	OnPreRequest request.PreRequestFunc

	// OnRequest runs before the option's OnRequest.
	OnRequest request.RequestFunc

	// OnSuccess runs before the option's OnSuccess. The option's hook
	// receives the data returned by this hook.
	OnSuccess request.SuccessFunc

	// OnError runs after the option's OnError, unless that hook
	// returns false. Its return value is ignored.
	OnError request.ErrorFunc

	// OnFinish runs once at the end of every call which was not
	// answered from the cache, after the success or error hooks.
	OnFinish request.FinishFunc

	// Store holds the GET response cache. If nil, responses are not
	// cached.
	Store store.Store

	// Logger receives structured log output. If nil, nothing is
	// logged.
	Logger *zerolog.Logger

	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, a shared http.Client with a cookie jar is
	// used.
	HTTPDoer transport.HTTPDoer

	// TimeoutPolicy specifies how to set the timeout on the transport
	// call. A positive Fetch.Timeout on the option takes precedence.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// Limiter, if set, is waited on before each transport call.
	Limiter *rate.Limiter

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a call.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// ProgressCapable controls whether calls with an OnUploadProgress
	// function and a non-empty body use the progress transport. Nil
	// means true.
	ProgressCapable *bool
}

// Request executes a call described by o.
//
// On success, the returned response has its Data set from the network,
// the cache, or mock data, after the success hooks. Cached responses
// carry only Data.
//
// On failure, the returned error is always an *Error and the response
// is nil. The response received from the server, if any, is available
// as the Response field of the *Error.
func (c *Client) Request(ctx context.Context, o *request.Option) (*request.Response, error) {
	if ctx == nil {
		panic("reqx: nil context")
	}
	if o == nil {
		o = &request.Option{}
	}

	e := &request.Execution{
		ID:     uuid.NewString(),
		Option: o,
	}
	log := c.logger().With().Str("exec", e.ID).Str("api", o.APIString()).Logger()

	c.Handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()
	c.execute(ctx, e, &log)
	e.End = time.Now()
	c.Handlers.run(AfterExecutionEnd, e)

	if e.Err != nil {
		return nil, e.Err
	}
	return e.Response, nil
}

// Get issues a GET for the API descriptor api, using the same pipeline
// as Request.
func (c *Client) Get(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Get(ctx, c, api, data)
}

// Post issues a POST for the API descriptor api, using the same
// pipeline as Request.
func (c *Client) Post(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Post(ctx, c, api, data)
}

// Put issues a PUT for the API descriptor api, using the same pipeline
// as Request.
func (c *Client) Put(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Put(ctx, c, api, data)
}

// Delete issues a DELETE for the API descriptor api, using the same
// pipeline as Request.
func (c *Client) Delete(ctx context.Context, api string, data interface{}) (*request.Response, error) {
	return Delete(ctx, c, api, data)
}

// URL resolves the URL and method for o against the client's domain
// table without sending anything. An unknown domain alias is reported
// as an error wrapping resolve.ErrUnknownDomain alongside a usable
// result.
func (c *Client) URL(o *request.Option) (resolve.Result, error) {
	return resolve.URL(o, c.Domains)
}

// CloseIdleConnections invokes the same method on the client's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Client) CloseIdleConnections() {
	transport.CloseIdleConnections(c.HTTPDoer)
}

func (c *Client) execute(ctx context.Context, e *request.Execution, log *zerolog.Logger) {
	e.Stage = request.Resolving
	o, err := resolve.Prepare(e.Option)
	e.Option = o
	if err != nil {
		log.Error().Err(err).Msg("cannot resolve option")
		c.fail(ctx, e, log, ConfigurationError, nil, err)
		return
	}

	preHook, reqHook := o.OnPreRequest, o.OnRequest
	for _, hook := range []request.PreRequestFunc{c.OnPreRequest, preHook} {
		if hook == nil {
			continue
		}
		o2, err := hook(ctx, o)
		if err != nil {
			c.fail(ctx, e, log, HookError, nil, err)
			return
		}
		if o2 != nil {
			o = o2
			e.Option = o
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if o.CancelExecutor != nil {
		o.CancelExecutor(cancel)
	}

	n, err := c.network(ctx, o, log)
	if err != nil {
		c.fail(ctx, e, log, ConfigurationError, nil, err)
		return
	}
	for _, hook := range []request.RequestFunc{c.OnRequest, reqHook} {
		if hook == nil {
			continue
		}
		n2, err := hook(ctx, n)
		if err != nil {
			c.fail(ctx, e, log, HookError, nil, err)
			return
		}
		if n2 != nil {
			n = n2
		}
	}
	if n.Option == nil {
		n.Option = o
	}
	e.Network = n
	l := log.With().Str("method", n.Method).Str("url", n.RawURL).Logger()
	log = &l
	c.Handlers.run(AfterResolve, e)

	e.Stage = request.CacheCheck
	cc := cache.Cache{Store: c.Store}
	if data, ok, err := cc.Get(ctx, n, o.Expired); err != nil {
		log.Warn().Err(err).Msg("cache read failed")
	} else if ok {
		e.Source = request.CacheSource
		e.Response = &request.Response{Data: data}
		c.Handlers.run(CacheHit, e)
		log.Info().Str("source", e.Source.String()).Msg("request done")
		e.Stage = request.Done
		return
	}

	e.Stage = request.MockCheck
	v, ok, err := mock.Try(ctx, o, c.IsRelease)
	if err != nil {
		c.fail(ctx, e, log, NetworkError, nil, transport.WrapError(n, err))
		return
	}
	if ok {
		e.Source = request.MockSource
		e.Response = request.Normalize(&request.Response{Payload: v}, false)
		c.Handlers.run(MockHit, e)
		e.Stage = request.HookDispatch
		if err = c.succeed(ctx, e.Response, o); err != nil {
			c.fail(ctx, e, log, HookError, e.Response, err)
			return
		}
		if err = mock.Delay(ctx, o); err != nil {
			c.fail(ctx, e, log, NetworkError, nil, transport.WrapError(n, err))
			return
		}
		c.done(ctx, e, log, &cc)
		return
	}

	e.Stage = request.Transporting
	r, forceParse, err := c.send(e, n)
	e.Response = r
	e.Err = err
	c.Handlers.run(AfterTransport, e)
	if err != nil {
		kind := NetworkError
		var se *transport.StatusError
		if errors.As(err, &se) {
			kind = ProtocolError
			r = request.Normalize(r, forceParse)
		}
		c.fail(ctx, e, log, kind, r, err)
		return
	}

	e.Stage = request.Normalizing
	e.Source = request.NetworkSource
	e.Response = request.Normalize(r, forceParse)

	e.Stage = request.HookDispatch
	if err = c.succeed(ctx, e.Response, o); err != nil {
		c.fail(ctx, e, log, HookError, e.Response, err)
		return
	}
	c.done(ctx, e, log, &cc)
}

// network resolves o into a network option bound to ctx.
func (c *Client) network(ctx context.Context, o *request.Option, log *zerolog.Logger) (*request.Network, error) {
	res, err := c.URL(o)
	if errors.Is(err, resolve.ErrUnknownDomain) {
		log.Error().Err(err).Str("domain", o.DomainOrDefault()).Msg("cannot resolve domain")
	} else if err != nil {
		return nil, err
	}

	body, err := payload.Build(o, res.Method)
	if err != nil {
		return nil, err
	}
	n, err := request.NewNetwork(ctx, res.Method, res.URL, body.Body)
	if err != nil {
		return nil, err
	}
	n.Option = o
	if err = n.SetHeaders(o.Headers); err != nil {
		return nil, err
	}
	if body.ContentType != "" {
		n.Header.Set("Content-Type", body.ContentType)
	}
	n.Close = o.Fetch.Close
	n.TransferEncoding = o.Fetch.TransferEncoding
	if o.Fetch.Host != "" {
		n.Host = o.Fetch.Host
	}
	return n, nil
}

// send runs the transport for n. The second return value reports
// whether the payload must be normalized with a forced JSON parse.
func (c *Client) send(e *request.Execution, n *request.Network) (*request.Response, bool, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(n.Context()); err != nil {
			return nil, false, transport.WrapError(n, err)
		}
	}

	ctx, cancel := context.WithTimeout(n.Context(), timeout.Resolve(c.TimeoutPolicy, e))
	defer cancel()

	var t transport.Transport
	progress := c.useProgress(n)
	if progress {
		t = &transport.Progress{HTTPDoer: c.HTTPDoer}
	} else {
		t = &transport.Standard{HTTPDoer: c.HTTPDoer}
	}
	c.Handlers.run(BeforeTransport, e)
	r, err := t.Do(n.WithContext(ctx))
	return r, progress, err
}

func (c *Client) useProgress(n *request.Network) bool {
	capable := c.ProgressCapable == nil || *c.ProgressCapable
	return capable && n.Option.OnUploadProgress != nil && len(n.Body) > 0
}

// succeed runs the success hooks, client first, each receiving the
// data returned by the previous one.
func (c *Client) succeed(ctx context.Context, r *request.Response, o *request.Option) error {
	for _, hook := range []request.SuccessFunc{c.OnSuccess, o.OnSuccess} {
		if hook == nil {
			continue
		}
		data, err := hook(ctx, r.Data, o, r)
		if err != nil {
			return err
		}
		r.Data = data
	}
	return nil
}

func (c *Client) done(ctx context.Context, e *request.Execution, log *zerolog.Logger, cc *cache.Cache) {
	if c.OnFinish != nil {
		c.OnFinish(ctx, e.Response, e.Option, nil)
	}
	if err := cc.Set(ctx, e.Network, e.Option.Expired, e.Response.Data); err != nil {
		log.Warn().Err(err).Msg("cache write failed")
	}
	log.Info().
		Str("source", e.Source.String()).
		Int("status", e.Response.Status).
		Dur("elapsed", time.Since(e.Start)).
		Msg("request done")
	e.Stage = request.Done
}

// fail runs the error pipeline and records the failure on e. The
// option's error hook runs first and may suppress the client's.
func (c *Client) fail(ctx context.Context, e *request.Execution, log *zerolog.Logger, kind Kind, r *request.Response, err error) {
	e.Stage = request.HookDispatch
	o := e.Option
	evt := log.Error().Err(err).Str("kind", kind.String())
	if kind == NetworkError {
		evt = evt.Stringer("category", transient.Categorize(err))
	}
	evt.Msg("request failed")

	withClientHook := true
	if o.OnError != nil {
		withClientHook = o.OnError(ctx, r, o, err)
	}
	if withClientHook && c.OnError != nil {
		c.OnError(ctx, r, o, err)
	}
	if c.OnFinish != nil {
		c.OnFinish(ctx, r, o, err)
	}

	e.Response = r
	e.Err = &Error{
		Kind:     kind,
		Option:   o,
		Response: r,
		Err:      err,
	}
	e.Stage = request.Failed
}

func (c *Client) logger() *zerolog.Logger {
	if c.Logger == nil {
		l := zerolog.Nop()
		return &l
	}
	return c.Logger
}
