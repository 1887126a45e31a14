package lookup

import (
	"strconv"
	"strings"
)

// hostingASNs lists networks that are hosting or cloud infrastructure
// beyond doubt. Used only to annotate results, never to change flags.
var hostingASNs = map[int]string{
	// Cloud
	16509:  "Amazon Web Services",
	14618:  "Amazon Web Services",
	8075:   "Microsoft Azure",
	15169:  "Google Cloud",
	396982: "Google Cloud",
	45102:  "Alibaba Cloud",
	45090:  "Tencent Cloud",
	132203: "Tencent Cloud",
	31898:  "Oracle Cloud",
	36351:  "IBM Cloud",
	13335:  "Cloudflare",

	// VPS and dedicated
	14061:  "DigitalOcean",
	20473:  "Vultr",
	63949:  "Akamai Connected Cloud (Linode)",
	16276:  "OVHcloud",
	24940:  "Hetzner Online",
	213230: "Hetzner Cloud",
	12876:  "Scaleway",
	40021:  "Contabo",
	51167:  "Contabo",
	60781:  "LeaseWeb",
	9009:   "M247",
	202053: "UpCloud",
	33070:  "Rackspace",
	36352:  "ColoCrossing",
	21859:  "Zenlayer",
	47583:  "Hostinger",
	197540: "netcup",
	50979:  "Selectel",

	// CDN
	20940: "Akamai Technologies",
	54113: "Fastly",
}

// parseASN extracts the number from "AS16509", "as16509" or
// "AS16509 Amazon.com, Inc.". Returns 0 when there is none.
func parseASN(s string) int {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.EqualFold(s[:2], "AS") {
		s = s[2:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// HostingNetwork names the hosting provider behind asn, or "" if unknown.
func HostingNetwork(asn string) string {
	return hostingASNs[parseASN(asn)]
}
