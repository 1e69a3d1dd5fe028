package routekit

import "github.com/dmitrymomot/routekit/pkg/config"

// FeaturesFromEnv loads the optional-extractor toggles from the environment
// (ROUTEKIT_HEADERS, ROUTEKIT_COOKIES, ROUTEKIT_SESSIONS). A .env file is
// honored when present.
func FeaturesFromEnv() (Features, error) {
	var f Features
	if err := config.Load(&f); err != nil {
		return Features{}, err
	}
	return f, nil
}
