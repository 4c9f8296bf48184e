// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package payload builds request bodies from option data: JSON,
// urlencoded forms, multipart form-data, or raw binary passthrough.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/gogama/reqx/qs"
	"github.com/gogama/reqx/request"
)

// Content types set by the builder.
const (
	JSON          = "application/json"
	Form          = "application/x-www-form-urlencoded"
	MultipartForm = "multipart/form-data"
)

// A Result is a built request body and the content type to send with
// it. An empty ContentType means the header is left as is.
type Result struct {
	Body        []byte
	ContentType string
}

// Build serializes the option into a request body for method.
//
// An explicit Option.Body is used verbatim. Otherwise nothing is built
// when Data is nil or the method is GET, HEAD, or OPTIONS. Binary data
// passes through unchanged; data containing a request.File, or any
// object data with content type form-data, becomes multipart/form-data;
// content type form produces a urlencoded body; anything else is JSON.
// String data is used verbatim for form and JSON bodies.
func Build(o *request.Option, method string) (Result, error) {
	if o.Body != nil {
		b, err := request.BodyBytes(o.Body)
		return Result{Body: b}, err
	}
	if o.Data == nil || !carriesBody(method) {
		return Result{}, nil
	}

	if request.IsBinary(o.Data) {
		b, err := request.BodyBytes(o.Data)
		if err != nil {
			return Result{}, err
		}
		var ct string
		if mb, ok := o.Data.(*request.MultipartBody); ok {
			ct = mb.ContentType
		}
		return Result{Body: b, ContentType: ct}, nil
	}

	ct := o.ContentTypeOrDefault()
	obj, isObject := request.ObjectData(o.Data)
	if isObject && (ct == request.FormData || HasFile(obj)) {
		return Multipart(obj, o.QSOptions())
	}

	switch ct {
	case request.Form:
		return form(o, obj, isObject)
	case request.JSON:
		return jsonBody(o.Data)
	default:
		if s, ok := o.Data.(string); ok {
			return Result{Body: []byte(s)}, nil
		}
		return Result{}, fmt.Errorf("reqx/payload: unsupported content type %q", ct)
	}
}

func carriesBody(method string) bool {
	switch strings.ToUpper(method) {
	case "GET", "HEAD", "OPTIONS":
		return false
	default:
		return true
	}
}

func form(o *request.Option, obj map[string]interface{}, isObject bool) (Result, error) {
	if s, ok := o.Data.(string); ok {
		return Result{Body: []byte(s), ContentType: Form}, nil
	}
	if !isObject {
		return Result{}, fmt.Errorf("reqx/payload: cannot encode %T as a form", o.Data)
	}
	// Form bodies are always percent-encoded; only the array format
	// follows the option.
	opts := qs.Options{Encode: true, EncodeValuesOnly: true}
	if o.QS != nil {
		opts.ArrayFormat = o.QS.ArrayFormat
	}
	return Result{Body: []byte(qs.Stringify(obj, opts)), ContentType: Form}, nil
}

func jsonBody(data interface{}) (Result, error) {
	if s, ok := data.(string); ok {
		return Result{Body: []byte(s), ContentType: JSON}, nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return Result{}, fmt.Errorf("reqx/payload: %w", err)
	}
	return Result{Body: b, ContentType: JSON}, nil
}

// HasFile reports whether a request.File appears anywhere in data.
func HasFile(data map[string]interface{}) bool {
	for _, p := range qs.Flatten(data, qs.Indices) {
		if _, ok := asFile(p.Value); ok {
			return true
		}
	}
	return false
}

func asFile(v interface{}) (*request.File, bool) {
	switch f := v.(type) {
	case *request.File:
		return f, f != nil
	case request.File:
		return &f, true
	default:
		return nil, false
	}
}

// Multipart encodes data as multipart/form-data. Nested maps and slices
// are flattened into bracketed field names using opts.ArrayFormat.
func Multipart(data map[string]interface{}, opts qs.Options) (Result, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range qs.Flatten(data, opts.ArrayFormat) {
		if f, ok := asFile(p.Value); ok {
			if err := writeFile(w, p.Key, f); err != nil {
				return Result{}, err
			}
			continue
		}
		if err := w.WriteField(p.Key, qs.FormatValue(p.Value)); err != nil {
			return Result{}, err
		}
	}
	if err := w.Close(); err != nil {
		return Result{}, err
	}
	return Result{Body: buf.Bytes(), ContentType: w.FormDataContentType()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, field string, f *request.File) error {
	if f.Content == nil {
		return errors.New("reqx/payload: file " + field + " has no content")
	}
	content, err := ioutil.ReadAll(f.Content)
	if err != nil {
		return err
	}
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(content)
	}
	filename := f.Filename
	if filename == "" {
		filename = field
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(filename)))
	h.Set("Content-Type", ct)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, bytes.NewReader(content))
	return err
}
