// Package geocode resolves free-text city names and coordinate pairs into
// canonical locations using the Nominatim geocoding API.
package geocode

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weatherdash.app/errors"
)

// NominatimClient issues forward and reverse geocoding requests
type NominatimClient struct {
	baseURL string
	client  *http.Client
}

// NewNominatimClient creates a geocoding client for the given base URL
func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// searchResult is one entry of a Nominatim /search response
type searchResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     *nominatimAddress `json:"address,omitempty"`
}

// reverseResult is a Nominatim /reverse response
type reverseResult struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     *nominatimAddress `json:"address,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type nominatimAddress struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	County      string `json:"county"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// Search performs forward geocoding and returns the single best-ranked match
func (n *NominatimClient) Search(city string) (*searchResult, error) {
	query := url.Values{}
	query.Set("q", city)
	query.Set("format", "json")
	query.Set("limit", "1")

	requestURL := fmt.Sprintf("%s/search?%s", n.baseURL, query.Encode())

	resp, err := n.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewProviderUnavailableError("failed to search location", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewProviderUnavailableError(
			fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.NewProviderUnavailableError("failed to decode geocoding response", err)
	}

	if len(results) == 0 {
		return nil, errors.NewLocationNotFoundError(fmt.Sprintf("no results for city: %s", city))
	}

	return &results[0], nil
}

// Reverse performs reverse geocoding for a coordinate pair
func (n *NominatimClient) Reverse(lat, lon float64) (*reverseResult, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("format", "json")

	requestURL := fmt.Sprintf("%s/reverse?%s", n.baseURL, query.Encode())

	resp, err := n.client.Get(requestURL)
	if err != nil {
		return nil, errors.NewProviderUnavailableError("failed to reverse-geocode coordinates", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			_ = closeErr
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewProviderUnavailableError(
			fmt.Sprintf("geocoding API returned status code %d", resp.StatusCode), nil)
	}

	var result reverseResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.NewProviderUnavailableError("failed to decode reverse geocoding response", err)
	}

	if result.Error != "" {
		return nil, errors.NewLocationNotFoundError(result.Error)
	}

	return &result, nil
}
