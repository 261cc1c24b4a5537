package sentinelhub

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/telascope/satview/geo"
	"github.com/telascope/satview/util"
)

var fakePNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

type fakeProvider struct {
	processStatus int
	processBody   []byte

	processCalls int
	lastRequest  processRequest
	lastAuth     string
}

func (p *fakeProvider) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		p.processCalls++
		p.lastAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &p.lastRequest)
		w.WriteHeader(p.processStatus)
		w.Write(p.processBody)
	})
	return mux
}

func testContext(serverURL string) *Context {
	return &Context{
		BaseProcessURL: serverURL + "/process",
		TokenURL:       serverURL + "/token",
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
	}
}

func exampleOptions() FetchOptions {
	return FetchOptions{
		BBox:       geo.BuildBoundingBox(46.1512, 14.9955, geo.DefaultBBoxOffset),
		Date:       "2024-06-15",
		Collection: Sentinel2L1C,
	}
}

func TestFetchImage_Success(t *testing.T) {
	// Mock
	provider := &fakeProvider{processStatus: http.StatusOK, processBody: fakePNG}
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	// Tested code
	imageData, err := FetchImage(exampleOptions(), testContext(server.URL))

	// Asserts
	assert.Nil(t, err)
	assert.Equal(t, fakePNG, imageData)
	assert.Equal(t, "Bearer test-token", provider.lastAuth)

	sent := provider.lastRequest
	assert.Equal(t, string(Sentinel2L1C), sent.Input.Data[0].Type)
	assert.Equal(t, "2024-06-15T00:00:00Z", sent.Input.Data[0].DataFilter.TimeRange.From)
	assert.Equal(t, "2024-06-15T23:59:59Z", sent.Input.Data[0].DataFilter.TimeRange.To)
	assert.InDelta(t, 14.9455, sent.Input.Bounds.Bbox[0], 1e-9)
	assert.InDelta(t, 46.2012, sent.Input.Bounds.Bbox[3], 1e-9)
	assert.Equal(t, PNGMimeType, sent.Output.Responses[0].Format.Type)
	assert.Equal(t, 770, sent.Output.Width)
	assert.Equal(t, 1112, sent.Output.Height)
	assert.NotEmpty(t, sent.Evalscript)
}

func TestFetchImage_ClientError(t *testing.T) {
	// Mock
	provider := &fakeProvider{processStatus: http.StatusBadRequest, processBody: []byte(`{"error":"bad bbox"}`)}
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	// Tested code
	imageData, err := FetchImage(exampleOptions(), testContext(server.URL))

	// Asserts
	assert.Nil(t, imageData)
	assert.NotNil(t, err)
	httpErr, ok := err.(util.HTTPErr)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestFetchImage_ServerError_NoRetry(t *testing.T) {
	// Mock
	provider := &fakeProvider{processStatus: http.StatusBadGateway}
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	// Tested code
	imageData, err := FetchImage(exampleOptions(), testContext(server.URL))

	// Asserts
	assert.Nil(t, imageData)
	assert.NotNil(t, err)
	assert.Equal(t, 1, provider.processCalls, "a failed fetch must not be retried")
}

func TestFetchImage_InvalidDate(t *testing.T) {
	// Mock
	provider := &fakeProvider{processStatus: http.StatusOK, processBody: fakePNG}
	server := httptest.NewServer(provider.handler())
	defer server.Close()

	options := exampleOptions()
	options.Date = "15-06-2024"

	// Tested code
	imageData, err := FetchImage(options, testContext(server.URL))

	// Asserts
	assert.Nil(t, imageData)
	assert.NotNil(t, err)
	assert.Zero(t, provider.processCalls)
}
