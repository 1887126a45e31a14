package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/ippriv/ippriv/internal/model"
)

// renderLookup prints a human-readable lookup. A missing section is shown
// as unavailable with the failure kind, the rest of the result still prints.
func renderLookup(w io.Writer, l *model.Lookup) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "IP\t%s\n", l.IP)
	if l.Timestamp != "" {
		fmt.Fprintf(tw, "Checked\t%s\n", l.Timestamp)
	}

	fmt.Fprintln(tw, "\nLOCATION\t")
	if g := l.Geo; g != nil {
		fmt.Fprintf(tw, "Location\t%s (%s)\n", l.Location(), g.CountryCode)
		fmt.Fprintf(tw, "Region\t%s\n", orDash(g.Region))
		fmt.Fprintf(tw, "Coordinates\t%s, %s\n", formatCoord(g.Lat), formatCoord(g.Lon))
		fmt.Fprintf(tw, "Timezone\t%s\n", orDash(g.Timezone))
		fmt.Fprintf(tw, "ISP\t%s\n", orDash(g.ISP))
	} else {
		unavailable(tw, l, model.SectionGeo)
	}

	fmt.Fprintln(tw, "\nDNS\t")
	if d := l.DNS; d != nil {
		fmt.Fprintf(tw, "Hostname\t%s\n", orDash(d.Hostname))
		fmt.Fprintf(tw, "PTR records\t%s\n", orDash(strings.Join(d.PTRRecords, ", ")))
	} else {
		unavailable(tw, l, model.SectionDNS)
	}

	fmt.Fprintln(tw, "\nSECURITY\t")
	if s := l.Security; s != nil {
		fmt.Fprintf(tw, "VPN\t%s\n", yesNo(s.IsVPN))
		fmt.Fprintf(tw, "Proxy\t%s\n", yesNo(s.IsProxy))
		fmt.Fprintf(tw, "Tor\t%s\n", yesNo(s.IsTor))
		fmt.Fprintf(tw, "Hosting\t%s\n", yesNo(s.IsHosting))
		fmt.Fprintf(tw, "ASN\t%s\n", orDash(s.ASN))
		fmt.Fprintf(tw, "Organization\t%s\n", orDash(s.Org))
		if l.Network != "" {
			fmt.Fprintf(tw, "Network\t%s\n", l.Network)
		}
	} else {
		unavailable(tw, l, model.SectionSecurity)
	}

	return tw.Flush()
}

// renderSnapshot prints the reduced data carried by a share link.
func renderSnapshot(w io.Writer, s *model.Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "IP\t%s\n", s.IP)
	if g := s.Geo; g != nil {
		fmt.Fprintf(tw, "Location\t%s, %s\n", g.City, g.Country)
		fmt.Fprintf(tw, "Coordinates\t%s, %s\n", formatCoord(g.Lat), formatCoord(g.Lon))
		fmt.Fprintf(tw, "ISP\t%s\n", orDash(g.ISP))
	} else {
		fmt.Fprintln(tw, "Location\tnot shared")
	}
	if sec := s.Security; sec != nil {
		fmt.Fprintf(tw, "VPN\t%s\n", yesNo(sec.IsVPN))
		fmt.Fprintf(tw, "Proxy\t%s\n", yesNo(sec.IsProxy))
		fmt.Fprintf(tw, "Tor\t%s\n", yesNo(sec.IsTor))
		fmt.Fprintf(tw, "Hosting\t%s\n", yesNo(sec.IsHosting))
	} else {
		fmt.Fprintln(tw, "Security\tnot shared")
	}

	return tw.Flush()
}

func unavailable(w io.Writer, l *model.Lookup, section string) {
	if kind := l.Errors[section]; kind != "" {
		fmt.Fprintf(w, "data unavailable\t(%s)\n", kind)
		return
	}
	fmt.Fprintln(w, "data unavailable\t")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}
