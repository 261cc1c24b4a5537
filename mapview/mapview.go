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

// Package mapview builds the view model consumed by the dashboard's map
// widget. The widget itself is an external black box; this package only
// decides where the map is centered and what marker it carries.
package mapview

import (
	"github.com/venicegeo/geojson-go/geojson"
)

// MarkerLabel is the popup label of the single area-of-interest marker
const MarkerLabel = "Area of Interest"

// MapView is a map centered on the area of interest with one marker
type MapView struct {
	Lat    float64          `json:"lat"`
	Lon    float64          `json:"lon"`
	Zoom   int              `json:"zoom"`
	Marker *geojson.Feature `json:"marker"`
}

// Render produces a map view centered at (lat, lon) at the given zoom, with
// exactly one marker at the center. It has no failure modes for validated
// numeric input.
func Render(lat, lon float64, zoom int) MapView {
	point := geojson.NewPoint([]float64{lon, lat})
	marker := geojson.NewFeature(point, "aoi", map[string]interface{}{
		"label": MarkerLabel,
	})
	marker.Bbox = marker.ForceBbox()

	return MapView{
		Lat:    lat,
		Lon:    lon,
		Zoom:   zoom,
		Marker: marker,
	}
}
