// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gogama/reqx/qs"
)

// Defaults applied to unset Option fields.
const (
	DefaultMethod    = "GET"
	DefaultDomain    = "api"
	DefaultMockDelay = 300 * time.Millisecond
)

// A ContentType selects how the payload builder serializes Option.Data
// for methods which carry a body.
type ContentType string

const (
	// JSON serializes data with encoding/json. It is the default.
	JSON ContentType = "json"
	// Form serializes data as application/x-www-form-urlencoded.
	Form ContentType = "form"
	// FormData serializes data as multipart/form-data.
	FormData ContentType = "form-data"
)

// PreRequestFunc runs before URL and payload resolution. It may return
// a replacement option; a nil option keeps the current one.
type PreRequestFunc func(ctx context.Context, o *Option) (*Option, error)

// RequestFunc runs after URL and payload resolution, before the cache,
// mock, and transport stages. It may return a replacement network
// option; a nil return keeps the current one.
type RequestFunc func(ctx context.Context, n *Network) (*Network, error)

// SuccessFunc receives the normalized response data and returns the
// data passed to the next success hook and ultimately to the caller.
type SuccessFunc func(ctx context.Context, data map[string]interface{}, o *Option, r *Response) (map[string]interface{}, error)

// ErrorFunc observes a failed call. On a per-call option, returning
// false suppresses the client-level error hook. The return value of a
// client-level error hook is ignored.
type ErrorFunc func(ctx context.Context, r *Response, o *Option, err error) bool

// FinishFunc observes the end of every call that reaches the hook
// pipeline, successful or not. err is nil on success.
type FinishFunc func(ctx context.Context, r *Response, o *Option, err error)

// ProgressFunc receives upload progress: bytes sent so far and the
// total body size.
type ProgressFunc func(sent, total int64)

// MockFunc generates mock response data for an option.
type MockFunc func(o *Option) interface{}

// A File is a file-like value inside Option.Data. Its presence anywhere
// in the data forces a multipart/form-data body.
type File struct {
	// Filename is sent in the part's Content-Disposition header.
	Filename string
	// ContentType is the part content type. If empty, it is sniffed
	// from the content.
	ContentType string
	// Content is the file content.
	Content io.Reader
}

// A MultipartBody is an already-encoded multipart/form-data body. It
// passes through the payload builder unchanged.
type MultipartBody struct {
	ContentType string
	Body        []byte
}

// FetchOptions are passed through to the transport.
type FetchOptions struct {
	// Timeout overrides the client timeout policy for this call when
	// positive.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// Close stipulates whether to close the connection after the
	// response has been read.
	Close bool `json:"close" yaml:"close"`
	// Host optionally overrides the Host header to send.
	Host string `json:"host" yaml:"host"`
	// TransferEncoding lists the transfer encodings from outermost to
	// innermost.
	TransferEncoding []string `json:"transferEncoding" yaml:"transferEncoding"`
}

// An Option is a logical request descriptor.
//
// Unset fields take documented defaults, applied by the accessor
// methods rather than by mutating the option.
type Option struct {
	// API is the logical API descriptor, for example "GET items/$id".
	// If empty, it falls back to URL.
	API string

	// URL is the request URL or API descriptor. A relative path is
	// resolved against the domain table. It may begin with an
	// uppercase HTTP method followed by a space.
	URL string

	// ActionAddr identifies the UI action issuing the request. It falls
	// back to API.
	ActionAddr string

	// Method is the HTTP method. An empty string means GET. A method
	// embedded in URL takes precedence.
	Method string

	// Data holds request parameters. It may be nil, a map with string
	// keys, url.Values, a string, or a binary payload: []byte,
	// io.Reader, or *MultipartBody.
	//
	// For GET, object-shaped data is appended to the query string. For
	// methods which carry a body, data is serialized according to
	// ContentType.
	Data interface{}

	// Body is an explicit, pre-built request body. When non-nil, the
	// payload builder does not run. It may be a string, []byte,
	// io.Reader, or io.ReadCloser.
	Body interface{}

	// Domain is the alias into the domain table. Empty means "api".
	Domain string

	// Domains overrides the client's domain table for this call.
	Domains map[string]string

	// ContentType selects body serialization. Empty means JSON.
	ContentType ContentType

	// Headers are added to the request.
	Headers map[string]string

	// Mock enables mock data for this call. Nil means true; mocking
	// still requires a MockSource and a non-release client.
	Mock *bool

	// MockSource is either a map[string]interface{} keyed by API
	// descriptor, a MockFunc (or func(*Option) interface{}), or a
	// literal value used as the mock data.
	MockSource interface{}

	// MockDelay simulates network latency for mock data. Nil means
	// DefaultMockDelay.
	MockDelay *time.Duration

	// Expired is the cache TTL for GET responses. Zero disables
	// caching.
	Expired time.Duration

	// QS overrides the query string encoding options.
	QS *qs.Options

	// Fetch is passed through to the transport.
	Fetch FetchOptions

	// CancelExecutor, if set, is handed a function which aborts the
	// call when invoked.
	CancelExecutor func(cancel func())

	// OnUploadProgress requests upload progress tracking.
	OnUploadProgress ProgressFunc

	// Per-call hooks. They run after the client-level hook of the same
	// kind, except OnError which runs first.
	OnPreRequest PreRequestFunc
	OnRequest    RequestFunc
	OnSuccess    SuccessFunc
	OnError      ErrorFunc
}

// MethodOrDefault returns the uppercase method, defaulting to GET.
func (o *Option) MethodOrDefault() string {
	if o.Method == "" {
		return DefaultMethod
	}
	return strings.ToUpper(o.Method)
}

// DomainOrDefault returns the domain alias, defaulting to "api".
func (o *Option) DomainOrDefault() string {
	if o.Domain == "" {
		return DefaultDomain
	}
	return o.Domain
}

// ContentTypeOrDefault returns the content type, defaulting to JSON.
func (o *Option) ContentTypeOrDefault() ContentType {
	if o.ContentType == "" {
		return JSON
	}
	return o.ContentType
}

// MockEnabled reports whether the option permits mock data.
func (o *Option) MockEnabled() bool {
	return o.Mock == nil || *o.Mock
}

// MockDelayOrDefault returns the mock delay, defaulting to
// DefaultMockDelay.
func (o *Option) MockDelayOrDefault() time.Duration {
	if o.MockDelay == nil {
		return DefaultMockDelay
	}
	return *o.MockDelay
}

// QSOptions returns the query string options, defaulting to the zero
// qs.Options.
func (o *Option) QSOptions() qs.Options {
	if o.QS == nil {
		return qs.Options{}
	}
	return *o.QS
}

// APIString returns API, falling back to URL.
func (o *Option) APIString() string {
	if o.API != "" {
		return o.API
	}
	return o.URL
}

// Clone returns a shallow copy of o. Headers are copied so that hooks
// may modify them without affecting the original.
func (o *Option) Clone() *Option {
	o2 := new(Option)
	*o2 = *o
	if o.Headers != nil {
		o2.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			o2.Headers[k] = v
		}
	}
	return o2
}

// Bool returns a pointer to b, for use with Option.Mock.
func Bool(b bool) *bool {
	return &b
}

// Duration returns a pointer to d, for use with Option.MockDelay.
func Duration(d time.Duration) *time.Duration {
	return &d
}
