// Package share builds and opens share links carrying a reduced lookup.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ippriv/ippriv/internal/model"
	"github.com/ippriv/ippriv/internal/validate"
)

// Param is the query parameter holding the encoded snapshot.
const Param = "share"

var ErrInvalidShare = errors.New("invalid share data")

// NewSnapshot reduces a lookup to what a share link carries.
func NewSnapshot(l *model.Lookup) *model.Snapshot {
	s := &model.Snapshot{IP: l.IP}
	if l.Geo != nil {
		s.Geo = &model.SnapshotGeo{
			Country: l.Geo.Country,
			City:    l.Geo.City,
			Lat:     l.Geo.Lat,
			Lon:     l.Geo.Lon,
			ISP:     l.Geo.ISP,
		}
	}
	if l.Security != nil {
		s.Security = &model.SnapshotSecurity{
			IsVPN:     l.Security.IsVPN,
			IsProxy:   l.Security.IsProxy,
			IsTor:     l.Security.IsTor,
			IsHosting: l.Security.IsHosting,
		}
	}
	return s
}

// Encode returns the standard base64 of the lookup's snapshot JSON.
func Encode(l *model.Lookup) (string, error) {
	data, err := json.Marshal(NewSnapshot(l))
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// URL joins base and the encoded snapshot into a share link.
func URL(base, encoded string) string {
	q := url.Values{Param: []string{encoded}}
	return strings.TrimRight(base, "/") + "/ip-lookup?" + q.Encode()
}

// Decode opens a share parameter. The payload is validated before it is
// unmarshalled; a tampered or truncated link yields ErrInvalidShare.
func Decode(param string) (*model.Snapshot, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidShare)
	}

	data, err := decodeBase64(param)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShare, err)
	}
	snap, err := validate.Decode[model.Snapshot](data, validate.Snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShare, err)
	}
	return snap, nil
}

// decodeBase64 accepts standard and URL-safe alphabets, padded or not.
// Query strings turn '+' into a space, which is undone first.
func decodeBase64(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "+")
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if data, err := enc.DecodeString(s); err == nil {
			return data, nil
		}
	}
	return nil, errors.New("not base64")
}
