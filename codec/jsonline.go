/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package codec provides a reference dispatch.ServiceCodec implementation:
// a single line of JSON in, a single line of JSON out. It exists to give
// dispatch.RequestDispatcher something concrete to decode and encode, both
// in this module's own tests and for a caller wiring a first service.
package codec

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/sabouaram/dispatchcore/dispatch"
)

// JSONLine is a line-delimited JSON ServiceCodec: decode, encode, and
// failure encode all go through encoding/json rather than a hand-rolled
// marshaler.
//
// The decoded request (carried to the handler as InvocationContext.Value)
// and the result passed back for encoding both travel as interface{} here
// since the codec is generic over its payload shape.
type JSONLine struct {
	// NewRequest returns a fresh pointer to decode the request body into.
	NewRequest func() interface{}

	// CarryFailureInBody, when true, reports failures as a 200 OK with a
	// JSON error body instead of a classified status code.
	CarryFailureInBody bool
}

// NewJSONLine returns a JSONLine codec that decodes requests with newReq.
func NewJSONLine(newReq func() interface{}) *JSONLine {
	return &JSONLine{NewRequest: newReq}
}

// DecodeRequest unmarshals payload.Bytes() into a fresh value from
// NewRequest and, on success, carries it on the InvocationContext's Value
// field for the handler. A json.Unmarshal error is reported as
// DecodeFailure with no codec-supplied error response, leaving the
// dispatcher to fall through to a plain 400.
func (c *JSONLine) DecodeRequest(_ context.Context, protocol dispatch.SessionProtocol, hostname, path, mappedPath string, payload *dispatch.Buffer, full *dispatch.Request) (dispatch.DecodeResult, *dispatch.InvocationContext, *dispatch.Response, error) {
	var target interface{}
	if c.NewRequest != nil {
		target = c.NewRequest()
	} else {
		target = new(map[string]interface{})
	}

	data := bytes.TrimSpace(payload.Bytes())
	if len(data) > 0 {
		if err := json.Unmarshal(data, target); err != nil {
			return dispatch.DecodeFailure, nil, nil, err
		}
	}

	inv := &dispatch.InvocationContext{
		Hostname:   hostname,
		Path:       path,
		MappedPath: mappedPath,
		Protocol:   protocol,
		Promise:    dispatch.NewPromise(),
		Value:      target,
	}
	return dispatch.DecodeSuccess, inv, nil, nil
}

// EncodeResponse marshals result as a single JSON line and wraps it as a 200
// OK response body.
func (c *JSONLine) EncodeResponse(_ *dispatch.InvocationContext, result interface{}) (*dispatch.Response, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return jsonResponse(200, body), nil
}

// EncodeFailureResponse marshals cause's message as {"error": "..."} and
// wraps it as a 200 OK body; InvocationRunner substitutes a
// classified status instead when FailureResponseFailsSession reports true.
func (c *JSONLine) EncodeFailureResponse(_ *dispatch.InvocationContext, cause error) (*dispatch.Response, error) {
	body, err := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: cause.Error()})
	if err != nil {
		return nil, err
	}
	return jsonResponse(200, body), nil
}

// FailureResponseFailsSession reports !CarryFailureInBody: by default every
// failure takes down the response status, matching a typical REST codec.
func (c *JSONLine) FailureResponseFailsSession(ctx *dispatch.InvocationContext) bool {
	return !c.CarryFailureInBody
}

func jsonResponse(status int, body []byte) *dispatch.Response {
	r := dispatch.NewResponse(status)
	r.Header.Set("Content-Type", "application/json; charset=UTF-8")
	r.Body = body
	return r
}
