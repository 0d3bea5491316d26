package geocode

import (
	"errors"
	"log"
	"strconv"
	"strings"

	apperrors "weatherdash.app/errors"
	"weatherdash.app/models"
)

// Default reference coordinates (New York) used when forward geocoding
// fails entirely. The façade always gets some coordinate pair to query;
// availability wins over correctness here.
const (
	DefaultLatitude  = 40.7128
	DefaultLongitude = -74.0060
)

// unknownLocation is the synthetic display name for coordinates that could
// not be reverse-geocoded
const unknownLocation = "Unknown Location"

// Geocoder is the subset of the Nominatim client the resolver needs
type Geocoder interface {
	Search(city string) (*searchResult, error)
	Reverse(lat, lon float64) (*reverseResult, error)
}

// Resolver turns a city name or coordinate pair into a ResolvedLocation
type Resolver struct {
	geocoder Geocoder
}

// NewResolver creates a resolver backed by the given geocoder
func NewResolver(geocoder Geocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

// ResolveCity forward-geocodes a free-text city name to the best-ranked match.
// A search that returns zero results is a hard LocationNotFound failure; a
// transport failure falls back to the default reference coordinates instead
// of propagating, so a forecast query can still proceed.
func (r *Resolver) ResolveCity(city string) (*models.ResolvedLocation, error) {
	if city == "" {
		return nil, apperrors.NewValidationError("city cannot be empty")
	}

	result, err := r.geocoder.Search(city)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.LocationNotFoundError {
			return nil, err
		}

		log.Printf("[DEBUG] Forward geocoding failed, falling back to default coordinates: %v\n", err)
		return &models.ResolvedLocation{
			Latitude:    DefaultLatitude,
			Longitude:   DefaultLongitude,
			DisplayName: city,
			CountryCode: "",
		}, nil
	}

	lat, err := strconv.ParseFloat(result.Lat, 64)
	if err != nil {
		return nil, apperrors.NewMalformedPayloadError("geocoding result has invalid latitude")
	}
	lon, err := strconv.ParseFloat(result.Lon, 64)
	if err != nil {
		return nil, apperrors.NewMalformedPayloadError("geocoding result has invalid longitude")
	}

	displayName, countryCode := splitDisplayName(result.DisplayName, city)
	if result.Address != nil && result.Address.CountryCode != "" {
		countryCode = strings.ToUpper(result.Address.CountryCode)
	}

	return &models.ResolvedLocation{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: displayName,
		CountryCode: countryCode,
	}, nil
}

// ResolveCoordinates reverse-geocodes a coordinate pair to a display name.
// Reverse geocoding is a soft dependency: when it fails the coordinates are
// still usable and a synthetic display name is substituted.
func (r *Resolver) ResolveCoordinates(coords models.Coordinates) (*models.ResolvedLocation, error) {
	location := &models.ResolvedLocation{
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		DisplayName: unknownLocation,
		CountryCode: "",
	}

	result, err := r.geocoder.Reverse(coords.Latitude, coords.Longitude)
	if err != nil {
		log.Printf("[DEBUG] Reverse geocoding failed, keeping coordinates: %v\n", err)
		return location, nil
	}

	if result.Address != nil {
		location.DisplayName = cityFromAddress(result.Address)
		location.CountryCode = strings.ToUpper(result.Address.CountryCode)
	}

	return location, nil
}

// cityFromAddress walks the display-name fallback chain of a reverse
// geocoding result: city, town, village, county, state.
func cityFromAddress(address *nominatimAddress) string {
	for _, candidate := range []string{
		address.City,
		address.Town,
		address.Village,
		address.County,
		address.State,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return unknownLocation
}

// splitDisplayName extracts the display name and a country code from a
// canonical comma-separated Nominatim display_name. The trailing segment is
// treated as a country code when it is at most 3 characters long; longer
// trailing segments are taken verbatim. This heuristic is imprecise but
// callers depend on its current output.
func splitDisplayName(displayName, fallback string) (string, string) {
	if displayName == "" {
		return fallback, ""
	}

	parts := strings.Split(displayName, ", ")
	name := parts[0]

	last := parts[len(parts)-1]
	if len(last) <= 3 {
		return name, strings.ToUpper(last)
	}
	return name, last
}
