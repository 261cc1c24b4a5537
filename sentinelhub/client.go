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

package sentinelhub

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/telascope/satview/util"
)

const isoDateFormat = "2006-01-02"

// FetchImage requests exactly one PNG rendering of the bounding box for the
// single-day interval of options.Date from the Sentinel Hub Process API.
// The call is synchronous and at-most-once: failures are logged and returned,
// never retried.
func FetchImage(options FetchOptions, context *Context) ([]byte, error) {
	if _, err := time.Parse(isoDateFormat, options.Date); err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Invalid date %q for image request.", options.Date), err)
	}

	width, height := options.BBox.Dimensions(DefaultResolution)
	req := processRequest{
		Input: inputSpec{
			Bounds: bounds{
				Bbox:       options.BBox.Slice(),
				Properties: crsProperties{CRS: wgs84CRS},
			},
			Data: []dataSpec{{
				Type: string(options.Collection),
				DataFilter: dataFilter{
					TimeRange: timeRange{
						From: options.Date + "T00:00:00Z",
						To:   options.Date + "T23:59:59Z",
					},
				},
			}},
		},
		Output: outputSpec{
			Width:  width,
			Height: height,
			Responses: []responseSpec{{
				Identifier: "default",
				Format:     formatSpec{Type: PNGMimeType},
			}},
		},
		Evalscript: options.Collection.Evalscript(),
	}

	requestBody, err := json.Marshal(req)
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to marshal request object %#v.", req), err)
	}

	request, err := http.NewRequest("POST", context.BaseProcessURL, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, util.LogSimpleErr(context, fmt.Sprintf("Failed to make a new HTTP request for %v.", context.BaseProcessURL), err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", PNGMimeType)

	util.LogAudit(context, util.LogAuditInput{Actor: "sentinelhub/FetchImage", Action: "POST", Actee: context.BaseProcessURL,
		Message: fmt.Sprintf("Requesting %v imagery for %v over %v", options.Collection, options.Date, options.BBox.Slice()), Severity: util.INFO})

	response, err := context.httpClient().Do(request)
	if err != nil {
		return nil, util.LogSimpleErr(context, "Failed to complete Sentinel Hub Process API request.", err)
	}
	defer response.Body.Close()
	responseBody, _ := io.ReadAll(response.Body)

	util.LogAudit(context, util.LogAuditInput{Actor: context.BaseProcessURL, Action: "POST response", Actee: "sentinelhub/FetchImage",
		Message: "Receiving data from Sentinel Hub", Severity: util.INFO})

	switch {
	case (response.StatusCode >= 400) && (response.StatusCode < 500):
		message := fmt.Sprintf("Failed to fetch imagery from Sentinel Hub: %v. ", response.Status)
		shErr := util.Error{LogMsg: message,
			SimpleMsg:  "Sentinel Hub rejected this imagery request. See log for further details.",
			Response:   string(responseBody),
			URL:        context.BaseProcessURL,
			HTTPStatus: response.StatusCode}
		shErr.Log(context, "")
		return nil, util.HTTPErr{Status: response.StatusCode, Message: message}
	case response.StatusCode >= 500:
		return nil, util.LogSimpleErr(context, "Failed to fetch imagery from Sentinel Hub.", errors.New(response.Status))
	}

	util.LogInfo(context, fmt.Sprintf("Satellite image fetched successfully (%d bytes, %dx%d px).", len(responseBody), width, height))
	return responseBody, nil
}
