package shopify

import (
	"regexp"
	"strings"
)

const gidPrefix = "gid://shopify/"

var gidPattern = regexp.MustCompile(`^gid://shopify/[A-Za-z]+/(\d+)$`)

// ParseNumericID returns the trailing numeric id of a Shopify global id,
// e.g. "gid://shopify/Customer/123" -> "123". Anything else yields "".
func ParseNumericID(gid string) string {
	m := gidPattern.FindStringSubmatch(gid)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsGID reports whether s is a well-formed Shopify global id.
func IsGID(s string) bool {
	return gidPattern.MatchString(s)
}

// CustomerGID normalises a customer reference to a global id. A gid is
// returned unchanged, a bare numeric id is expanded, anything else yields "".
func CustomerGID(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return ""
	case strings.HasPrefix(ref, gidPrefix):
		if IsGID(ref) && strings.HasPrefix(ref, gidPrefix+"Customer/") {
			return ref
		}
		return ""
	case isDigits(ref):
		return gidPrefix + "Customer/" + ref
	default:
		return ""
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
