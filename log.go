package responder

import "net/url"

// LogMaskVal replaces sensitive values before they are logged.
const LogMaskVal = "xxxxxx"

// Mask replaces every value of key in vals with a single LogMaskVal.
// Mask does nothing if key is not present.
func Mask(vals url.Values, key string) {
	if _, ok := vals[key]; !ok {
		return
	}

	vals[key] = []string{LogMaskVal}
}
