// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, Not},
		{"plain", errors.New("foo"), Not},
		{"empty wrapper", wrapped{}, Not},
		{"wrapped plain", wrapped{errors.New("bar")}, Not},
		{"ETIMEDOUT", syscall.ETIMEDOUT, Timeout},
		{"Timeout method", timeoutErr(true), Timeout},
		{"Timeout method false", timeoutErr(false), Not},
		{"deadline", context.DeadlineExceeded, Timeout},
		{"url deadline", &url.Error{Op: "Get", URL: "https://host/a", Err: context.DeadlineExceeded}, Timeout},
		{"deep timeout", wrapped{wrapped{timeoutErr(true)}}, Timeout},
		{"timeout beats reset", wrapped{&timeoutCause{true, syscall.ECONNRESET}}, Timeout},
		{"canceled", context.Canceled, Canceled},
		{"url canceled", &url.Error{Op: "Post", URL: "https://host/b", Err: context.Canceled}, Canceled},
		{"fmt canceled", fmt.Errorf("cancel executor: %w", context.Canceled), Canceled},
		{"reset", syscall.ECONNRESET, ConnReset},
		{"wrapped reset", &timeoutCause{false, syscall.ECONNRESET}, ConnReset},
		{"refused", syscall.ECONNREFUSED, ConnRefused},
		{"url refused", &url.Error{Err: wrapped{&timeoutCause{false, syscall.ECONNREFUSED}}}, ConnRefused},
		{"other errno", syscall.EPIPE, Not},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, Categorize(testCase.err))
		})
	}
}

func TestCategory_String(t *testing.T) {
	for i, name := range categoryNames {
		assert.Equal(t, name, Category(i).String())
	}
	assert.Equal(t, "Canceled", Canceled.String())
	assert.Equal(t, "Unknown", Category(-1).String())
	assert.Equal(t, "Unknown", Category(len(categoryNames)).String())
}

type timeoutErr bool

func (err timeoutErr) Error() string { return fmt.Sprintf("timeout=%t", bool(err)) }

func (err timeoutErr) Timeout() bool { return bool(err) }

type wrapped struct {
	cause error
}

func (err wrapped) Error() string { return fmt.Sprintf("wrapped(%v)", err.cause) }

func (err wrapped) Unwrap() error { return err.cause }

type timeoutCause struct {
	timeout bool
	cause   error
}

func (err *timeoutCause) Error() string { return fmt.Sprintf("timeout=%t: %v", err.timeout, err.cause) }

func (err *timeoutCause) Timeout() bool { return err.timeout }

func (err *timeoutCause) Unwrap() error { return err.cause }
