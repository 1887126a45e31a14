package model

// IPResponse is returned by GET /api/ip.
type IPResponse struct {
	IPv4      string `json:"ipv4"`
	IPv6      string `json:"ipv6,omitempty"`
	Timestamp string `json:"timestamp"`
}

// GeoResponse is returned by GET /api/geo/{ip}.
type GeoResponse struct {
	IP          string  `json:"ip"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Region      string  `json:"region"`
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Timezone    string  `json:"timezone"`
	ISP         string  `json:"isp"`
}

// DNSResponse is returned by GET /api/dns/{ip}.
type DNSResponse struct {
	IP         string   `json:"ip"`
	Hostname   string   `json:"hostname"`
	PTRRecords []string `json:"ptrRecords"`
}

// SecurityResponse is returned by GET /api/security/{ip}.
type SecurityResponse struct {
	IP        string `json:"ip"`
	IsVPN     bool   `json:"isVPN"`
	IsProxy   bool   `json:"isProxy"`
	IsTor     bool   `json:"isTor"`
	IsHosting bool   `json:"isHosting"`
	ASN       string `json:"asn,omitempty"`
	Org       string `json:"org,omitempty"`
}

// HasConcerns reports whether any anonymity or hosting flag is set.
func (s *SecurityResponse) HasConcerns() bool {
	return s != nil && (s.IsVPN || s.IsProxy || s.IsTor || s.IsHosting)
}

// Section names used in Lookup.Errors.
const (
	SectionGeo      = "geo"
	SectionDNS      = "dns"
	SectionSecurity = "security"
)

// Lookup is the combined result of a full IP lookup. A nil section means
// the data for it is unavailable; Errors carries the failure kind per section.
type Lookup struct {
	IP        string            `json:"ip"`
	Timestamp string            `json:"timestamp,omitempty"`
	Geo       *GeoResponse      `json:"geo"`
	DNS       *DNSResponse      `json:"dns"`
	Security  *SecurityResponse `json:"security"`
	Network   string            `json:"network,omitempty"` // known hosting network for the ASN, if any
	Errors    map[string]string `json:"errors,omitempty"`
}

// Location returns "City, Country" or "" when geolocation is unavailable.
func (l *Lookup) Location() string {
	if l.Geo == nil {
		return ""
	}
	return l.Geo.City + ", " + l.Geo.Country
}

// Snapshot is the reduced lookup embedded in share links.
type Snapshot struct {
	IP       string            `json:"ip"`
	Geo      *SnapshotGeo      `json:"geo"`
	Security *SnapshotSecurity `json:"security"`
}

type SnapshotGeo struct {
	Country string  `json:"country"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	ISP     string  `json:"isp"`
}

type SnapshotSecurity struct {
	IsVPN     bool `json:"isVPN"`
	IsProxy   bool `json:"isProxy"`
	IsTor     bool `json:"isTor"`
	IsHosting bool `json:"isHosting"`
}

// GuardStats describes the client-side rate governor.
type GuardStats struct {
	Limit   int    `json:"limit"`
	Used    int    `json:"used"`
	Window  string `json:"window"`
	LocalDB bool   `json:"local_db_loaded"`
	RetryOn bool   `json:"retry_enabled"`
	BaseURL string `json:"base_url"`
}
