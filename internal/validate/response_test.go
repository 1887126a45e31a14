package validate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ippriv/ippriv/internal/model"
)

func geoFixture() map[string]any {
	return map[string]any{
		"ip":          "8.8.8.8",
		"country":     "United States",
		"countryCode": "US",
		"region":      "California",
		"city":        "Mountain View",
		"lat":         37.386,
		"lon":         -122.0838,
		"timezone":    "America/Los_Angeles",
		"isp":         "Google LLC",
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestNonObjectPayloads(t *testing.T) {
	for _, raw := range []string{`null`, `[]`, `[{"ip":"8.8.8.8"}]`, `"8.8.8.8"`, `42`, `true`, ``, `{`, `{"ip":}`} {
		assert.False(t, IsIPResponse([]byte(raw)), raw)
		assert.False(t, IsGeoResponse([]byte(raw)), raw)
		assert.False(t, IsDNSResponse([]byte(raw)), raw)
		assert.False(t, IsSecurityResponse([]byte(raw)), raw)
	}
}

func TestIPResponse(t *testing.T) {
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","timestamp":"2024-05-01T12:00:00.000Z"}`)))
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","timestamp":"2024-05-01T12:00:00+02:00"}`)))
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","timestamp":"2024-05-01"}`)))
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","timestamp":"2024-05-01T12:00:00+0000"}`)))
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","timestamp":"2024-05-01 12:00:00"}`)))
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","timestamp":"2024-05-01 12:00:00.123+02:00"}`)))
	assert.True(t, IsIPResponse([]byte(`{"ipv4":"203.0.113.7","ipv6":"2001:db8::1","timestamp":"2024-05-01T12:00:00Z"}`)))

	tests := map[string]string{
		"bad octet":         `{"ipv4":"203.0.113.700","timestamp":"2024-05-01T12:00:00Z"}`,
		"ipv4 missing":      `{"timestamp":"2024-05-01T12:00:00Z"}`,
		"ipv4 number":       `{"ipv4":203,"timestamp":"2024-05-01T12:00:00Z"}`,
		"timestamp garbage": `{"ipv4":"203.0.113.7","timestamp":"yesterday"}`,
		"timestamp number":  `{"ipv4":"203.0.113.7","timestamp":1714564800}`,
		"ipv6 wrong type":   `{"ipv4":"203.0.113.7","ipv6":6,"timestamp":"2024-05-01T12:00:00Z"}`,
	}
	for name, raw := range tests {
		assert.False(t, IsIPResponse([]byte(raw)), name)
	}
}

func TestGeoResponseWellFormed(t *testing.T) {
	raw := mustJSON(t, geoFixture())
	require.NoError(t, GeoResponse(raw))

	geo, err := Decode[model.GeoResponse](raw, GeoResponse)
	require.NoError(t, err)
	assert.Equal(t, "Mountain View", geo.City)
	assert.InDelta(t, -122.0838, geo.Lon, 1e-9)
}

func TestGeoResponseEmptyStringsAllowed(t *testing.T) {
	g := geoFixture()
	g["region"] = ""
	g["isp"] = ""
	assert.True(t, IsGeoResponse(mustJSON(t, g)))
}

func TestGeoResponseMissingField(t *testing.T) {
	for field := range geoFixture() {
		g := geoFixture()
		delete(g, field)

		err := GeoResponse(mustJSON(t, g))
		require.Error(t, err, field)

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, field, verr.Field)
		assert.Equal(t, "missing", verr.Reason)
	}
}

func TestGeoResponseMistyped(t *testing.T) {
	tests := map[string]any{
		"lat":         "37.386",
		"lon":         nil,
		"country":     1,
		"countryCode": false,
		"city":        []string{"x"},
		"timezone":    map[string]any{},
		"isp":         nil,
		"ip":          "not-an-ip",
	}
	for field, bad := range tests {
		g := geoFixture()
		g[field] = bad
		assert.False(t, IsGeoResponse(mustJSON(t, g)), field)
	}
}

func TestGeoResponseCoordinateRange(t *testing.T) {
	g := geoFixture()
	g["lat"] = 90.5
	assert.False(t, IsGeoResponse(mustJSON(t, g)))

	g = geoFixture()
	g["lon"] = -180.01
	assert.False(t, IsGeoResponse(mustJSON(t, g)))

	g = geoFixture()
	g["lat"], g["lon"] = -90, 180
	assert.True(t, IsGeoResponse(mustJSON(t, g)))
}

func TestDNSResponse(t *testing.T) {
	assert.True(t, IsDNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"dns.google","ptrRecords":["dns.google"]}`)))
	assert.True(t, IsDNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"","ptrRecords":[]}`)))

	assert.False(t, IsDNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"dns.google"}`)))
	assert.False(t, IsDNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"dns.google","ptrRecords":null}`)))
	assert.False(t, IsDNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"dns.google","ptrRecords":"dns.google"}`)))
	assert.False(t, IsDNSResponse([]byte(`{"ip":"8.8.8.8","hostname":null,"ptrRecords":[]}`)))

	err := DNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"dns.google","ptrRecords":["a",2]}`))
	require.Error(t, err)
	assert.Equal(t, "ptrRecords[1]: must be a string", err.Error())
}

func TestSecurityResponse(t *testing.T) {
	base := `{"ip":"8.8.8.8","isVPN":false,"isProxy":false,"isTor":false,"isHosting":true`
	assert.True(t, IsSecurityResponse([]byte(base+`}`)))
	assert.True(t, IsSecurityResponse([]byte(base+`,"asn":"AS15169","org":"Google LLC"}`)))
	assert.True(t, IsSecurityResponse([]byte(base+`,"asn":"AS15169"}`)))

	assert.False(t, IsSecurityResponse([]byte(base+`,"asn":15169}`)))
	assert.False(t, IsSecurityResponse([]byte(base+`,"org":null}`)))
	assert.False(t, IsSecurityResponse([]byte(`{"ip":"8.8.8.8","isVPN":"false","isProxy":false,"isTor":false,"isHosting":true}`)))
	assert.False(t, IsSecurityResponse([]byte(`{"ip":"8.8.8.8","isVPN":false,"isProxy":false,"isHosting":true}`)))
	assert.False(t, IsSecurityResponse([]byte(`{"ip":"::1","isVPN":false,"isProxy":false,"isTor":false,"isHosting":false}`)))
}

func TestDecodeRejectsBeforeUnmarshal(t *testing.T) {
	sec, err := Decode[model.SecurityResponse]([]byte(`{"ip":"8.8.8.8"}`), SecurityResponse)
	assert.Nil(t, sec)
	assert.EqualError(t, err, "isVPN: missing")
}

func TestDuplicateKeys(t *testing.T) {
	tests := []struct {
		payload string
		wantErr string
	}{
		{`{"ip":"8.8.8.8","country":"","countryCode":"","region":"","city":"","lat":1,"lon":0,"timezone":"","isp":"","ip":"not-an-ip","lat":999}`, "ip: duplicate key"},
		{`{"ip":"8.8.8.8","country":"","countryCode":"","region":"","city":"","lat":1,"lon":0,"timezone":"","isp":"","IP":"not-an-ip"}`, "IP: duplicate key"},
		{`{"ip":"8.8.8.8","country":"","countryCode":"","region":"","city":"","lat":1,"lon":0,"timezone":"","isp":"","\u0069p":"not-an-ip"}`, "ip: duplicate key"},
	}
	for _, tt := range tests {
		geo, err := Decode[model.GeoResponse]([]byte(tt.payload), GeoResponse)
		assert.Nil(t, geo, tt.payload)
		assert.EqualError(t, err, tt.wantErr, tt.payload)
	}

	err := DNSResponse([]byte(`{"ip":"8.8.8.8","hostname":"","ptrRecords":[{"a":1,"a":2}]}`))
	assert.EqualError(t, err, "ptrRecords[0].a: duplicate key")
}
