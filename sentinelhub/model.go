package sentinelhub

import (
	"context"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/telascope/satview/geo"
	"github.com/telascope/satview/util"
)

// DefaultResolution is the ground resolution requested from the provider, in
// meters per pixel
const DefaultResolution = 10

// PNGMimeType is the only output encoding requested from the provider
const PNGMimeType = "image/png"

const wgs84CRS = "http://www.opengis.net/def/crs/EPSG/0/4326"

// DataCollection identifies a Sentinel Hub data collection
type DataCollection string

// Supported data collections
const (
	Sentinel2L1C  DataCollection = "sentinel-2-l1c"
	Sentinel3OLCI DataCollection = "sentinel-3-olci"
	Landsat8L1    DataCollection = "landsat-ot-l1"
)

// collectionMapping maps the dashboard's satellite names to collections.
// Selectors not present here fall back to Sentinel-2.
var collectionMapping = map[string]DataCollection{
	"Sentinel-2": Sentinel2L1C,
	"Sentinel-3": Sentinel3OLCI,
	"Landsat-8":  Landsat8L1,
}

// CollectionNames returns the satellite names offered by the dashboard
func CollectionNames() []string {
	return []string{"Sentinel-2", "Sentinel-3", "Landsat-8"}
}

// CollectionForName resolves a satellite selector to its data collection,
// defaulting to Sentinel-2 for unrecognized names
func CollectionForName(name string) DataCollection {
	if collection, ok := collectionMapping[name]; ok {
		return collection
	}
	return Sentinel2L1C
}

// Evalscript returns the true-color rendering script for the collection
func (c DataCollection) Evalscript() string {
	switch c {
	case Sentinel3OLCI:
		return trueColorEvalscript("B08", "B06", "B04")
	default:
		// Sentinel-2 and Landsat share the B04/B03/B02 RGB band layout
		return trueColorEvalscript("B04", "B03", "B02")
	}
}

func trueColorEvalscript(red, green, blue string) string {
	return `//VERSION=3
function setup() {
  return { input: ["` + red + `", "` + green + `", "` + blue + `"], output: { bands: 3 } };
}
function evaluatePixel(sample) {
  return [2.5 * sample.` + red + `, 2.5 * sample.` + green + `, 2.5 * sample.` + blue + `];
}`
}

// Context is the context for a Sentinel Hub operation
type Context struct {
	BaseProcessURL string
	TokenURL       string
	ClientID       string
	ClientSecret   string

	clientOnce sync.Once
	client     *http.Client

	sessionOnce sync.Once
	sessionID   string
}

// NewContext builds an operation context from the process configuration
func NewContext(config *util.Config) *Context {
	return &Context{
		BaseProcessURL: config.ProcessURL,
		TokenURL:       config.TokenURL,
		ClientID:       config.ClientID,
		ClientSecret:   config.ClientSecret,
	}
}

// AppName returns the application name
func (c *Context) AppName() string {
	return "satview"
}

// SessionID returns a Session ID, creating one if needed. One Context is
// shared by every request that logs through it, so the lazy write is guarded.
func (c *Context) SessionID() string {
	c.sessionOnce.Do(func() {
		c.sessionID = util.NewSessionID()
	})
	return c.sessionID
}

// httpClient returns an HTTP client that injects OAuth2 client-credentials
// tokens, creating it on first use
func (c *Context) httpClient() *http.Client {
	c.clientOnce.Do(func() {
		credentials := clientcredentials.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			TokenURL:     c.TokenURL,
		}
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, util.HTTPClient())
		c.client = credentials.Client(ctx)
	})
	return c.client
}

// FetchOptions are the parameters for a single image request
type FetchOptions struct {
	BBox       geo.BoundingBox
	Date       string // ISO-8601 day, YYYY-MM-DD
	Collection DataCollection
}

type processRequest struct {
	Input      inputSpec  `json:"input"`
	Output     outputSpec `json:"output"`
	Evalscript string     `json:"evalscript"`
}

type inputSpec struct {
	Bounds bounds     `json:"bounds"`
	Data   []dataSpec `json:"data"`
}

type bounds struct {
	Bbox       []float64     `json:"bbox"`
	Properties crsProperties `json:"properties"`
}

type crsProperties struct {
	CRS string `json:"crs"`
}

type dataSpec struct {
	Type       string     `json:"type"`
	DataFilter dataFilter `json:"dataFilter"`
}

type dataFilter struct {
	TimeRange timeRange `json:"timeRange"`
}

type timeRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type outputSpec struct {
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	Responses []responseSpec `json:"responses"`
}

type responseSpec struct {
	Identifier string     `json:"identifier"`
	Format     formatSpec `json:"format"`
}

type formatSpec struct {
	Type string `json:"type"`
}
