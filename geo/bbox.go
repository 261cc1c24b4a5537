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

package geo

import (
	"fmt"
	"math"

	"github.com/venicegeo/geojson-go/geojson"
)

// DefaultBBoxOffset is the half-width and half-height, in degrees, of the
// bounding box built around an area of interest
const DefaultBBoxOffset = 0.05

// Zoom bounds offered by the dashboard
const (
	MinZoom = 1
	MaxZoom = 15
)

const earthRadiusMeters = 6371000

// AreaOfInterest is the point and zoom level the user selected
type AreaOfInterest struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Zoom int     `json:"zoom"`
}

// Validate checks the coordinate and zoom ranges
func (a AreaOfInterest) Validate() error {
	if a.Lat < -90 || a.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", a.Lat)
	}
	if a.Lon < -180 || a.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", a.Lon)
	}
	if a.Zoom < MinZoom || a.Zoom > MaxZoom {
		return fmt.Errorf("zoom %d out of range [%d, %d]", a.Zoom, MinZoom, MaxZoom)
	}
	return nil
}

// BoundingBox is a WGS84 bounding box
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// BuildBoundingBox returns the box of the given half-size in degrees centered
// at (lat, lon). It is deterministic and has no failure modes: min < max on
// both axes whenever offset > 0.
func BuildBoundingBox(lat, lon, offset float64) BoundingBox {
	return BoundingBox{
		MinLon: lon - offset,
		MinLat: lat - offset,
		MaxLon: lon + offset,
		MaxLat: lat + offset,
	}
}

// Slice returns the box in [minLon, minLat, maxLon, maxLat] wire order
func (b BoundingBox) Slice() []float64 {
	return []float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

// GeoJSON returns the box as a geojson-go bounding box
func (b BoundingBox) GeoJSON() geojson.BoundingBox {
	return geojson.BoundingBox(b.Slice())
}

// Dimensions converts the box into pixel dimensions at the given ground
// resolution in meters per pixel. Side lengths are measured with the
// haversine formula, east-west at the mid latitude.
func (b BoundingBox) Dimensions(resolution float64) (width, height int) {
	midLat := (b.MinLat + b.MaxLat) / 2
	widthMeters := haversineMeters(midLat, b.MinLon, midLat, b.MaxLon)
	heightMeters := haversineMeters(b.MinLat, b.MinLon, b.MaxLat, b.MinLon)
	width = int(math.Round(widthMeters / resolution))
	height = int(math.Round(heightMeters / resolution))
	return
}

func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
