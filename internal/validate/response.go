// Package validate checks untrusted JSON payloads from the ippriv API
// against the expected response shapes before they are decoded.
package validate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// Error explains why a payload was rejected.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Schema checks one parsed JSON value.
type Schema func(obj gjson.Result) error

// Func validates a raw JSON payload; nil means the payload has the shape.
type Func func(data []byte) error

// Check parses data and applies schema. Any JSON value is acceptable input;
// non-objects are rejected rather than causing a panic.
func Check(data []byte, schema Schema) error {
	if !gjson.ValidBytes(data) {
		return &Error{Reason: "payload is not valid JSON"}
	}
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return &Error{Reason: "payload is not a JSON object"}
	}
	if err := uniqueKeys(obj, ""); err != nil {
		return err
	}
	return schema(obj)
}

// Decode unmarshals data into T only after fn accepts it.
func Decode[T any](data []byte, fn Func) (*T, error) {
	if err := fn(data); err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &v, nil
}

func IPResponse(data []byte) error       { return Check(data, ipResponseSchema) }
func GeoResponse(data []byte) error      { return Check(data, geoResponseSchema) }
func DNSResponse(data []byte) error      { return Check(data, dnsResponseSchema) }
func SecurityResponse(data []byte) error { return Check(data, securityResponseSchema) }

func IsIPResponse(data []byte) bool       { return IPResponse(data) == nil }
func IsGeoResponse(data []byte) bool      { return GeoResponse(data) == nil }
func IsDNSResponse(data []byte) bool      { return DNSResponse(data) == nil }
func IsSecurityResponse(data []byte) bool { return SecurityResponse(data) == nil }

func ipResponseSchema(obj gjson.Result) error {
	if err := requireIP(obj, "ipv4"); err != nil {
		return err
	}
	if err := optionalString(obj, "ipv6"); err != nil {
		return err
	}
	if err := requireString(obj, "timestamp"); err != nil {
		return err
	}
	if !isTimestamp(obj.Get("timestamp").Str) {
		return &Error{Field: "timestamp", Reason: "not an ISO-8601 instant"}
	}
	return nil
}

func geoResponseSchema(obj gjson.Result) error {
	if err := requireIP(obj, "ip"); err != nil {
		return err
	}
	for _, f := range []string{"country", "countryCode", "region", "city", "timezone", "isp"} {
		if err := requireString(obj, f); err != nil {
			return err
		}
	}
	if err := requireNumberIn(obj, "lat", -90, 90); err != nil {
		return err
	}
	return requireNumberIn(obj, "lon", -180, 180)
}

func dnsResponseSchema(obj gjson.Result) error {
	if err := requireIP(obj, "ip"); err != nil {
		return err
	}
	if err := requireString(obj, "hostname"); err != nil {
		return err
	}
	return requireStringArray(obj, "ptrRecords")
}

func securityResponseSchema(obj gjson.Result) error {
	if err := requireIP(obj, "ip"); err != nil {
		return err
	}
	for _, f := range []string{"isVPN", "isProxy", "isTor", "isHosting"} {
		if err := requireBool(obj, f); err != nil {
			return err
		}
	}
	if err := optionalString(obj, "asn"); err != nil {
		return err
	}
	return optionalString(obj, "org")
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func isTimestamp(s string) bool {
	for _, layout := range timestampLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
