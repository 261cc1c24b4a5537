// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"encoding/json"
	"net/http"
)

// Error holds the full detail of an upstream failure: the message for the
// log, the message safe to show a user, and the response that triggered it
type Error struct {
	LogMsg     string
	SimpleMsg  string
	Response   string
	URL        string
	HTTPStatus int
}

// Error implements the error interface; it prefers the user-safe message
func (e Error) Error() string {
	if e.SimpleMsg != "" {
		return e.SimpleMsg
	}
	return e.LogMsg
}

// Log writes the full error detail to the log and returns the error for the
// caller to propagate. An optional prefix is prepended to the log message.
func (e Error) Log(context LogContext, prefix string) error {
	message := e.LogMsg
	if prefix != "" {
		message = prefix + ": " + message
	}
	fields := []interface{}{}
	if e.URL != "" {
		fields = append(fields, "url", e.URL)
	}
	if e.HTTPStatus != 0 {
		fields = append(fields, "status", e.HTTPStatus)
	}
	if e.Response != "" {
		fields = append(fields, "response", e.Response)
	}
	getLogger().Errorw(message, append(contextFields(context), fields...)...)
	return e
}

// HTTPErr is an error carrying an HTTP status code
type HTTPErr struct {
	Status  int
	Message string
}

func (e HTTPErr) Error() string {
	return e.Message
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPError writes a JSON error response with the given message and status
func HTTPError(r *http.Request, w http.ResponseWriter, context LogContext, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message}); err != nil {
		LogSimpleErr(context, "Failed to write error response", err)
	}
}
