package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "Europe/Istanbul"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz. Providers without a usable zone get fallback, the
// configured shop default, and then DefaultTimezone.
func Location(tz, fallback string) *time.Location {
	for _, name := range []string{tz, fallback, DefaultTimezone} {
		if !IsValid(name) {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
