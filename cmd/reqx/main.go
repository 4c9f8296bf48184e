// Copyright 2021 The reqx Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command reqx issues one call through the request engine and prints
// the normalized response data as JSON.
//
//	reqx -config reqx.json -data '{"id":7}' "GET rtapi/users/$id"
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gogama/reqx"
	"github.com/gogama/reqx/request"
	"github.com/gogama/reqx/timeout"
	"golang.org/x/time/rate"
)

type flags struct {
	configPath   string
	data         string
	domain       string
	contentType  string
	expired      time.Duration
	fetchTimeout time.Duration
	rps          float64
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "Path to a JSON configuration file")
	flag.StringVar(&f.data, "data", "", "Request data as JSON")
	flag.StringVar(&f.domain, "domain", "", "Domain alias (default \"api\")")
	flag.StringVar(&f.contentType, "type", "", "Body content type: json, form, or form-data")
	flag.DurationVar(&f.expired, "expired", 0, "Cache TTL for GET responses")
	flag.DurationVar(&f.fetchTimeout, "timeout", 0, "Transport timeout (default 30s)")
	flag.Float64Var(&f.rps, "rps", 0, "Maximum requests per second, 0 for unlimited")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("usage: reqx [flags] \"METHOD path\"")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	out, err := run(ctx, f, flag.Arg(0))
	stop()
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	fmt.Println(string(out))
}

// run does all the work so that deferred closers run before main
// decides the exit status.
func run(ctx context.Context, f flags, api string) ([]byte, error) {
	cfg := reqx.Config{}
	if f.configPath != "" {
		b, err := ioutil.ReadFile(f.configPath)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err = json.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	client, closer, err := reqx.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closer.Close()
	}()
	client.TimeoutPolicy = timeout.ByMethod(map[string]time.Duration{
		"GET": 10 * time.Second,
	}, timeout.DefaultPolicy)
	if f.rps > 0 {
		client.Limiter = rate.NewLimiter(rate.Limit(f.rps), 1)
	}

	o := &request.Option{
		URL:         api,
		Domain:      f.domain,
		ContentType: request.ContentType(f.contentType),
		Expired:     f.expired,
		Fetch:       request.FetchOptions{Timeout: f.fetchTimeout},
	}
	if f.data != "" {
		var v interface{}
		if err = json.Unmarshal([]byte(f.data), &v); err != nil {
			return nil, fmt.Errorf("parsing data: %w", err)
		}
		o.Data = v
	}

	r, err := client.Request(ctx, o)
	if err != nil {
		var rerr *reqx.Error
		if errors.As(err, &rerr) && rerr.Response != nil {
			return nil, fmt.Errorf("%w (status %d)", err, rerr.Response.Status)
		}
		return nil, err
	}
	return json.MarshalIndent(r.Data, "", "  ")
}
