package apiclient

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/ippriv/ippriv/internal/model"
	"github.com/ippriv/ippriv/internal/validate"
)

const PathIP = "/api/ip"

func GeoPath(ip string) string      { return "/api/geo/" + url.PathEscape(ip) }
func DNSPath(ip string) string      { return "/api/dns/" + url.PathEscape(ip) }
func SecurityPath(ip string) string { return "/api/security/" + url.PathEscape(ip) }

// GetIP detects the caller's public address.
func (c *Client) GetIP(ctx context.Context) (*model.IPResponse, error) {
	return get[model.IPResponse](ctx, c, PathIP, validate.IPResponse)
}

func (c *Client) GetGeo(ctx context.Context, ip string) (*model.GeoResponse, error) {
	return get[model.GeoResponse](ctx, c, GeoPath(ip), validate.GeoResponse)
}

func (c *Client) GetDNS(ctx context.Context, ip string) (*model.DNSResponse, error) {
	return get[model.DNSResponse](ctx, c, DNSPath(ip), validate.DNSResponse)
}

func (c *Client) GetSecurity(ctx context.Context, ip string) (*model.SecurityResponse, error) {
	return get[model.SecurityResponse](ctx, c, SecurityPath(ip), validate.SecurityResponse)
}

func get[T any](ctx context.Context, c *Client, path string, fn validate.Func) (*T, error) {
	body, err := c.Fetch(ctx, path, fn)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, &Error{Kind: KindTransport, Path: path, Err: err}
	}
	return &v, nil
}
