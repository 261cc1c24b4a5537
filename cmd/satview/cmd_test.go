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

package main

import (
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/telascope/satview/util"
)

func setTestCredentials() {
	os.Setenv(util.SENTINELHUB_INSTANCE_ID, "test-instance")
	os.Setenv(util.SENTINELHUB_CLIENT_ID, "test-client")
	os.Setenv(util.SENTINELHUB_CLIENT_SECRET, "test-secret")
}

func clearTestCredentials() {
	os.Unsetenv(util.SENTINELHUB_INSTANCE_ID)
	os.Unsetenv(util.SENTINELHUB_CLIENT_ID)
	os.Unsetenv(util.SENTINELHUB_CLIENT_SECRET)
}

func TestServe_CallsLaunchServer(t *testing.T) {
	setTestCredentials()
	defer clearTestCredentials()

	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		success <- true
	}
	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case <-success:
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_HealthCheckEndpoint(t *testing.T) {
	setTestCredentials()
	defer clearTestCredentials()

	success := make(chan bool)
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		req := httptest.NewRequest("GET", "/health", strings.NewReader(""))
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		responseBody, _ := io.ReadAll(response.Result().Body)
		success <- (string(responseBody) == "OK")
	}

	timer := time.NewTimer(1 * time.Second)

	go serveAction(nil)

	select {
	case ok := <-success:
		assert.True(t, ok)
	case <-timer.C:
		assert.Fail(t, "launchServer not called within 1 second of serve()")
	}
}

func TestServe_HaltsWithoutCredentials(t *testing.T) {
	clearTestCredentials()

	launched := false
	launchServerFunc = func(portStr string, router *mux.Router) { // Mock
		launched = true
	}
	exitCode := -1
	exitFunc = func(code int) { // Mock
		exitCode = code
	}
	defer func() { exitFunc = os.Exit }()

	// Tested code
	serveAction(nil)

	// Asserts
	assert.Equal(t, 1, exitCode)
	assert.False(t, launched, "server must not launch without credentials")
}

func TestCreateRouter_ServesDashboardRoutes(t *testing.T) {
	router := createRouter(&util.Config{})

	for _, path := range []string{"/", "/api/config", "/metrics"} {
		req := httptest.NewRequest("GET", path, nil)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, req)
		assert.Equal(t, 200, response.Code, "expected %v to be routed", path)
	}
}
