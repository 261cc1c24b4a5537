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

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/telascope/satview/geo"
	"github.com/telascope/satview/mapview"
	"github.com/telascope/satview/sentinelhub"
	"github.com/telascope/satview/util"
)

const isoDateFormat = "2006-01-02"

// genericFetchFailureMessage is the single user-facing message for every
// imagery fetch failure, regardless of sub-cause
const genericFetchFailureMessage = "Failed to retrieve satellite image."

// ImageDateHeader echoes the selected date on successful imagery responses;
// the page uses it for the image caption
const ImageDateHeader = "X-Image-Date"

// Context is the log context for dashboard requests
type Context struct {
	sessionOnce sync.Once
	sessionID   string
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "satview"
}

// SessionID returns a Session ID, creating one if needed. Handlers share one
// Context across concurrent requests, so the lazy write is guarded.
func (c *Context) SessionID() string {
	c.sessionOnce.Do(func() {
		c.sessionID = util.NewSessionID()
	})
	return c.sessionID
}

// FetchImageFunc matches sentinelhub.FetchImage; indirection for testing
type FetchImageFunc func(options sentinelhub.FetchOptions, context *sentinelhub.Context) ([]byte, error)

// ImageryHandler is a handler for POST /api/imagery
// @Title imageryHandler
// @Description fetches one satellite image for an area of interest and date
// @Accept  json
// @Param   lat        body  number  true   "Latitude of the area of interest"
// @Param   lon        body  number  true   "Longitude of the area of interest"
// @Param   zoom       body  int     true   "Map zoom level (1-15)"
// @Param   date       body  string  true   "ISO-8601 date, must not be in the future"
// @Param   satellite  body  string  false  "Satellite name (Sentinel-2, Sentinel-3, Landsat-8)"
// @Success 200 {binary} image/png
// @Failure 400 {object}  string
// @Failure 502 {object}  string
// @Router /api/imagery [post]
type ImageryHandler struct {
	Context    Context
	SHContext  *sentinelhub.Context
	FetchImage FetchImageFunc

	nowFunc func() time.Time
}

// NewImageryHandler creates a new handler using the given configuration
func NewImageryHandler(config *util.Config) *ImageryHandler {
	return &ImageryHandler{
		SHContext:  sentinelhub.NewContext(config),
		FetchImage: sentinelhub.FetchImage,
		nowFunc:    time.Now,
	}
}

type imageryRequest struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Zoom      int     `json:"zoom"`
	Date      string  `json:"date"`
	Satellite string  `json:"satellite"`
}

// ServeHTTP implements the http.Handler interface for the ImageryHandler type
func (h *ImageryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req imageryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		message := "Invalid imagery request body"
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	aoi := geo.AreaOfInterest{Lat: req.Lat, Lon: req.Lon, Zoom: req.Zoom}
	if err := aoi.Validate(); err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	selected, err := time.Parse(isoDateFormat, req.Date)
	if err != nil {
		message := fmt.Sprintf("The date value of %v is invalid", req.Date)
		util.LogSimpleErr(&h.Context, message, err)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	// The future-date gate must hold before any provider call is attempted
	today := h.nowFunc().Format(isoDateFormat)
	if selected.Format(isoDateFormat) > today {
		imageFetchTotal.WithLabelValues(outcomeBlocked).Inc()
		util.LogAlert(&h.Context, fmt.Sprintf("Rejected imagery request for future date %v", req.Date))
		util.HTTPError(r, w, &h.Context, "Selected date cannot be in the future.", http.StatusBadRequest)
		return
	}

	options := sentinelhub.FetchOptions{
		BBox:       geo.BuildBoundingBox(req.Lat, req.Lon, geo.DefaultBBoxOffset),
		Date:       selected.Format(isoDateFormat),
		Collection: sentinelhub.CollectionForName(req.Satellite),
	}

	imageData, err := h.FetchImage(options, h.SHContext)
	if err != nil {
		imageFetchTotal.WithLabelValues(outcomeFailure).Inc()
		util.HTTPError(r, w, &h.Context, genericFetchFailureMessage, http.StatusBadGateway)
		return
	}

	imageFetchTotal.WithLabelValues(outcomeSuccess).Inc()
	w.Header().Set("Content-Type", sentinelhub.PNGMimeType)
	w.Header().Set(ImageDateHeader, options.Date)
	w.Write(imageData)
}

// MapViewHandler is a handler for GET /api/mapview
// @Title mapViewHandler
// @Description returns the map view model for an area of interest
// @Accept  plain
// @Param   lat   query  number  true  "Latitude of the map center"
// @Param   lon   query  number  true  "Longitude of the map center"
// @Param   zoom  query  int     true  "Map zoom level (1-15)"
// @Success 200 {object}  mapview.MapView
// @Failure 400 {object}  string
// @Router /api/mapview [get]
type MapViewHandler struct {
	Context Context
}

// NewMapViewHandler creates a new handler
func NewMapViewHandler() *MapViewHandler {
	return &MapViewHandler{}
}

// ServeHTTP implements the http.Handler interface for the MapViewHandler type
func (h *MapViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.FormValue("lon"), 64)
	zoom, zoomErr := strconv.Atoi(r.FormValue("zoom"))
	if latErr != nil || lonErr != nil || zoomErr != nil {
		message := fmt.Sprintf("Invalid map view coordinates: lat=%v lon=%v zoom=%v",
			r.FormValue("lat"), r.FormValue("lon"), r.FormValue("zoom"))
		util.LogAlert(&h.Context, message)
		util.HTTPError(r, w, &h.Context, message, http.StatusBadRequest)
		return
	}

	aoi := geo.AreaOfInterest{Lat: lat, Lon: lon, Zoom: zoom}
	if err := aoi.Validate(); err != nil {
		util.LogAlert(&h.Context, err.Error())
		util.HTTPError(r, w, &h.Context, err.Error(), http.StatusBadRequest)
		return
	}

	view := mapview.Render(lat, lon, zoom)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		util.LogSimpleErr(&h.Context, "Failed to encode map view", err)
	}
}

// ConfigHandler is a handler for GET /api/config; it tells the page which
// satellite options and defaults to offer
type ConfigHandler struct {
	Context Context
}

// NewConfigHandler creates a new handler
func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{}
}

type dashboardConfig struct {
	Satellites []string `json:"satellites"`
	DefaultLat float64  `json:"defaultLat"`
	DefaultLon float64  `json:"defaultLon"`
	MinZoom    int      `json:"minZoom"`
	MaxZoom    int      `json:"maxZoom"`
	Zoom       int      `json:"zoom"`
	Today      string   `json:"today"`
}

// ServeHTTP implements the http.Handler interface for the ConfigHandler type
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	config := dashboardConfig{
		Satellites: sentinelhub.CollectionNames(),
		DefaultLat: 46.1512,
		DefaultLon: 14.9955,
		MinZoom:    geo.MinZoom,
		MaxZoom:    geo.MaxZoom,
		Zoom:       10,
		Today:      time.Now().Format(isoDateFormat),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(config); err != nil {
		util.LogSimpleErr(&h.Context, "Failed to encode dashboard config", err)
	}
}
