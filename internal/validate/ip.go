package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
)

var (
	ipv4Pattern = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
	// Full eight-group form only; "::" compression is not accepted.
	ipv6Pattern = regexp.MustCompile(`^([0-9a-fA-F]{1,4}:){7}[0-9a-fA-F]{1,4}$`)
)

// IsValidIP reports whether s is a dotted-quad IPv4 address with every
// octet in [0,255], or an uncompressed eight-group IPv6 address.
func IsValidIP(s string) bool {
	if ipv4Pattern.MatchString(s) {
		for _, part := range strings.Split(s, ".") {
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 || n > 255 {
				return false
			}
		}
		return true
	}
	return ipv6Pattern.MatchString(s)
}

// SanitizeIP trims user input and strips every character that cannot
// appear in an IPv4 or IPv6 address.
func SanitizeIP(input string) string {
	return govalidator.WhiteList(strings.TrimSpace(input), "0-9a-fA-F:.")
}

// IsLookupInput reports whether a user-supplied address is acceptable as a
// lookup target. Unlike IsValidIP it accepts compressed IPv6.
func IsLookupInput(s string) bool {
	return s != "" && govalidator.IsIP(s)
}
