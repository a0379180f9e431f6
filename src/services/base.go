package services

import (
	"time"

	"fleet/src/utils"

	"github.com/sirupsen/logrus"
)

// Clock returns the current instant. Services take one so tests can pin "now".
type Clock func() time.Time

// LoadLocation falls back to UTC for an empty or unknown zone name.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logrus.WithError(err).Warnf("unknown timezone %q, using UTC", name)
		return time.UTC
	}
	return loc
}

// errNoneFound is returned by bulk deletes when none of the ids exist.
var errNoneFound = utils.NotFound("no records found for the given ids")
