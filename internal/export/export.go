// Package export renders lookups as downloadable JSON and CSV reports.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ippriv/ippriv/internal/model"
)

const notAvailable = "N/A"

type report struct {
	IP          string                  `json:"ip"`
	Geolocation *model.GeoResponse      `json:"geolocation"`
	DNS         *model.DNSResponse      `json:"dns"`
	Security    *model.SecurityResponse `json:"security"`
	Timestamp   string                  `json:"timestamp"`
}

// JSON writes the lookup as an indented JSON document stamped with now.
// Unavailable sections are written as null.
func JSON(w io.Writer, l *model.Lookup, now time.Time) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report{
		IP:          l.IP,
		Geolocation: l.Geo,
		DNS:         l.DNS,
		Security:    l.Security,
		Timestamp:   now.UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}

// CSV writes a sectioned report: a title block, then geolocation, DNS and
// security sections separated by blank lines.
func CSV(w io.Writer, l *model.Lookup, now time.Time) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"IPPriv Lookup Results"},
		{"Generated: " + now.Format("2006-01-02 15:04:05 MST")},
		{},
		{"GEOLOCATION"},
	}
	if g := l.Geo; g != nil {
		rows = append(rows,
			[]string{"IP", "Country", "Country Code", "Region", "City", "Latitude", "Longitude", "Timezone", "ISP"},
			[]string{l.IP, g.Country, g.CountryCode, g.Region, g.City, formatFloat(g.Lat), formatFloat(g.Lon), g.Timezone, orNA(g.ISP)},
		)
	} else {
		rows = append(rows, []string{"No geolocation data available"})
	}

	rows = append(rows, []string{}, []string{"DNS INFORMATION"})
	if d := l.DNS; d != nil {
		rows = append(rows,
			[]string{"Hostname", "PTR Records"},
			[]string{orNA(d.Hostname), orNA(strings.Join(d.PTRRecords, "; "))},
		)
	} else {
		rows = append(rows, []string{"No DNS data available"})
	}

	rows = append(rows, []string{}, []string{"SECURITY STATUS"})
	if s := l.Security; s != nil {
		rows = append(rows,
			[]string{"VPN", "Proxy", "Tor", "Hosting/Datacenter", "ASN", "Organization"},
			[]string{
				strconv.FormatBool(s.IsVPN), strconv.FormatBool(s.IsProxy),
				strconv.FormatBool(s.IsTor), strconv.FormatBool(s.IsHosting),
				orNA(s.ASN), orNA(s.Org),
			},
		)
	} else {
		rows = append(rows, []string{"No security data available"})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// Filename returns the download name for a report, e.g.
// "ippriv-8.8.8.8-1714564800000.json".
func Filename(ip, ext string, now time.Time) string {
	return fmt.Sprintf("ippriv-%s-%d.%s", ip, now.UnixMilli(), strings.TrimPrefix(ext, "."))
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
