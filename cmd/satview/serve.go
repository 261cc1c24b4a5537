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
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/telascope/satview/util"
	"github.com/telascope/satview/web"
)

func createRouter(config *util.Config) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte("OK"))
	})
	router.Handle("/", web.NewPageHandler()).Methods("GET")
	router.Handle("/api/config", web.NewConfigHandler()).Methods("GET")
	router.Handle("/api/mapview", web.NewMapViewHandler()).Methods("GET")
	router.Handle("/api/imagery", web.NewImageryHandler(config)).Methods("POST")
	router.Handle("/metrics", promhttp.Handler())
	return router
}

func serveAction(*cli.Context) {
	logContext := &(util.BasicLogContext{})

	config := util.LoadConfig()
	util.InitLogging(config.LogLevel)

	// Credentials are validated before the dashboard becomes reachable; a
	// partial set halts the process with no network activity attempted.
	if err := config.Validate(); err != nil {
		exitFunc(1)
		return
	}

	util.LogInfo(logContext, "Credentials validated, starting dashboard on "+config.PortStr())
	launchServerFunc(config.PortStr(), createRouter(config))
}

var exitFunc = os.Exit

var launchServerFunc = launchServer

func launchServer(portStr string, router *mux.Router) {
	server := http.Server{
		Addr:    portStr,
		Handler: router,
	}

	log.Fatal(server.ListenAndServe())
}
