// Package geo classifies US ZIP codes into urban and suburban regions.
package geo

import (
	"context"
	"strings"

	domain "github.com/donaldgifford/vehicle-valuator/pkg/types"
)

// Density is the settlement class of a ZIP3 area.
type Density int

// Density values.
const (
	Rural Density = iota
	Suburban
	Urban
)

// Area describes one ZIP3 prefix.
type Area struct {
	Name    string
	Density Density
}

// defaultAreas maps ZIP3 prefixes of major metro cores and their rings.
var defaultAreas = map[string]Area{
	"100": {"New York, NY", Urban},
	"101": {"New York, NY", Urban},
	"102": {"New York, NY", Urban},
	"104": {"Bronx, NY", Urban},
	"112": {"Brooklyn, NY", Urban},
	"113": {"Queens, NY", Urban},
	"110": {"Queens, NY", Suburban},
	"115": {"Western Long Island, NY", Suburban},
	"070": {"Newark, NJ", Suburban},
	"021": {"Boston, MA", Urban},
	"017": {"Worcester, MA", Suburban},
	"191": {"Philadelphia, PA", Urban},
	"190": {"Philadelphia suburbs, PA", Suburban},
	"200": {"Washington, DC", Urban},
	"220": {"Northern Virginia", Suburban},
	"208": {"Suburban Maryland", Suburban},
	"212": {"Baltimore, MD", Urban},
	"303": {"Atlanta, GA", Urban},
	"300": {"North Metro Atlanta, GA", Suburban},
	"331": {"Miami, FL", Urban},
	"330": {"South Florida", Suburban},
	"606": {"Chicago, IL", Urban},
	"600": {"North Suburban Chicago, IL", Suburban},
	"604": {"South Suburban Chicago, IL", Suburban},
	"482": {"Detroit, MI", Urban},
	"480": {"Royal Oak, MI", Suburban},
	"441": {"Cleveland, OH", Urban},
	"554": {"Minneapolis, MN", Urban},
	"553": {"Minneapolis suburbs, MN", Suburban},
	"631": {"St. Louis, MO", Urban},
	"752": {"Dallas, TX", Urban},
	"750": {"North Texas", Suburban},
	"770": {"Houston, TX", Urban},
	"773": {"North Houston, TX", Suburban},
	"787": {"Austin, TX", Urban},
	"782": {"San Antonio, TX", Urban},
	"802": {"Denver, CO", Urban},
	"801": {"Denver suburbs, CO", Suburban},
	"850": {"Phoenix, AZ", Urban},
	"852": {"Phoenix suburbs, AZ", Suburban},
	"891": {"Las Vegas, NV", Urban},
	"900": {"Los Angeles, CA", Urban},
	"902": {"Los Angeles Westside, CA", Urban},
	"913": {"San Fernando Valley, CA", Suburban},
	"917": {"Industry, CA", Suburban},
	"921": {"San Diego, CA", Urban},
	"926": {"Orange County, CA", Suburban},
	"941": {"San Francisco, CA", Urban},
	"940": {"San Mateo, CA", Suburban},
	"945": {"Oakland, CA", Suburban},
	"951": {"San Jose, CA", Urban},
	"958": {"Sacramento, CA", Urban},
	"972": {"Portland, OR", Urban},
	"981": {"Seattle, WA", Urban},
	"980": {"Seattle suburbs, WA", Suburban},
}

// ZIP3Classifier classifies ZIP codes by their three-digit prefix using a
// static table. Prefixes not in the table are reported as unknown.
type ZIP3Classifier struct {
	areas map[string]Area
}

// Option configures a ZIP3Classifier.
type Option func(*ZIP3Classifier)

// WithAreas replaces the built-in table.
func WithAreas(areas map[string]Area) Option {
	return func(c *ZIP3Classifier) {
		c.areas = areas
	}
}

// NewZIP3Classifier creates a classifier backed by the built-in metro table.
func NewZIP3Classifier(opts ...Option) *ZIP3Classifier {
	c := &ZIP3Classifier{areas: defaultAreas}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify returns the region for zip, or nil when the ZIP is malformed or
// its prefix is not in the table.
func (c *ZIP3Classifier) Classify(_ context.Context, zip string) (*domain.Region, error) {
	prefix, ok := zip3(zip)
	if !ok {
		return nil, nil
	}

	a, ok := c.areas[prefix]
	if !ok {
		return nil, nil
	}

	return &domain.Region{
		IsUrban:     a.Density == Urban,
		IsSuburban:  a.Density == Suburban,
		DisplayName: a.Name,
	}, nil
}

// zip3 accepts "NNNNN" and "NNNNN-NNNN".
func zip3(zip string) (string, bool) {
	zip = strings.TrimSpace(zip)
	if i := strings.IndexByte(zip, '-'); i >= 0 {
		zip = zip[:i]
	}
	if len(zip) != 5 {
		return "", false
	}
	for _, r := range zip {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return zip[:3], true
}
