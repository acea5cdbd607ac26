// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aws/aws-lambda-go/events"
)

const defaultStatusCode = -1

// ProxyResponseWriter collects what the wrapped handler writes so that it
// can be returned to ALB as a single response.
type ProxyResponseWriter struct {
	headers http.Header
	body    bytes.Buffer
	status  int
}

var _ http.ResponseWriter = &ProxyResponseWriter{}

func NewProxyResponseWriter() *ProxyResponseWriter {
	return &ProxyResponseWriter{
		headers: make(http.Header),
		status:  defaultStatusCode,
	}
}

func (r *ProxyResponseWriter) Header() http.Header {
	return r.headers
}

func (r *ProxyResponseWriter) Write(body []byte) (int, error) {
	if r.status == defaultStatusCode {
		r.status = http.StatusOK
	}

	// Content-Type is sniffed the same way net/http does it
	if len(r.headers.Get("Content-Type")) == 0 {
		r.headers.Set("Content-Type", http.DetectContentType(body))
	}

	return r.body.Write(body)
}

func (r *ProxyResponseWriter) WriteHeader(status int) {
	r.status = status
}

func (r *ProxyResponseWriter) GetProxyResponse() (events.ALBTargetGroupResponse, error) {
	if r.status == defaultStatusCode {
		return events.ALBTargetGroupResponse{}, fmt.Errorf("Status code not set on response")
	}

	var (
		output          string
		isBase64Encoded bool
	)

	bodyBytes := r.body.Bytes()

	if utf8.Valid(bodyBytes) {
		output = string(bodyBytes)
	} else {
		output = base64.StdEncoding.EncodeToString(bodyBytes)
		isBase64Encoded = true
	}

	headers := map[string]string{}
	for k, vs := range r.headers {
		headers[k] = strings.Join(vs, ",")
	}

	return events.ALBTargetGroupResponse{
		StatusCode:        r.status,
		StatusDescription: fmt.Sprintf("%d %s", r.status, http.StatusText(r.status)),
		Headers:           headers,
		MultiValueHeaders: map[string][]string(r.headers),
		Body:              output,
		IsBase64Encoded:   isBase64Encoded,
	}, nil
}
