package geocode

import (
	"context"

	"go.uber.org/zap"
)

// Location is an IP-derived approximate position. Loc carries the raw
// "lat,lon" string from the provider, empty when unavailable.
type Location struct {
	City    string
	Region  string
	Country string
	Loc     string
}

// SelfLocate looks up the caller's own location from its public IP.
// Three outcomes: (loc, nil) on success, (nil, nil) when the service
// answered but without usable data, (nil, err) on transport failure.
func (r *Resolver) SelfLocate(ctx context.Context) (*Location, error) {
	result, err := r.fetcher.GetPlain(ctx, "ipinfo", r.endpoints.IPLocate, nil)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		r.logger.Debug("ip locate returned non-200", zap.Int("status", result.Status))
		return nil, nil
	}

	var payload struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Loc     string `json:"loc"`
	}
	if err := result.Decode(&payload); err != nil {
		return nil, err
	}

	loc := &Location{
		City:    payload.City,
		Region:  payload.Region,
		Country: payload.Country,
		Loc:     payload.Loc,
	}
	if loc.City == "" {
		loc.City = "Unknown"
	}
	if loc.Country == "" {
		loc.Country = "Unknown"
	}
	return loc, nil
}
