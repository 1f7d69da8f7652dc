// Package geo resolves user-supplied cities, pincodes and coordinates to
// canonical locations at city granularity. It is a static-table lookup, not a
// geocoding service.
package geo

import (
	"errors"
	"strings"

	"mandi/models"
)

var (
	ErrInvalidPincode  = errors.New("pincode must be exactly 6 digits")
	ErrPincodeNotFound = errors.New("pincode not covered")
)

// Major cities with their coordinates. City selection works at this
// granularity only.
var cities = []models.Location{
	{City: "Mumbai", State: "Maharashtra", Latitude: 19.0760, Longitude: 72.8777},
	{City: "Delhi", State: "Delhi", Latitude: 28.7041, Longitude: 77.1025},
	{City: "Bengaluru", State: "Karnataka", Latitude: 12.9716, Longitude: 77.5946},
	{City: "Hyderabad", State: "Telangana", Latitude: 17.3850, Longitude: 78.4867},
	{City: "Ahmedabad", State: "Gujarat", Latitude: 23.0225, Longitude: 72.5714},
	{City: "Chennai", State: "Tamil Nadu", Latitude: 13.0827, Longitude: 80.2707},
	{City: "Kolkata", State: "West Bengal", Latitude: 22.5726, Longitude: 88.3639},
	{City: "Pune", State: "Maharashtra", Latitude: 18.5204, Longitude: 73.8567},
	{City: "Jaipur", State: "Rajasthan", Latitude: 26.9124, Longitude: 75.7873},
	{City: "Surat", State: "Gujarat", Latitude: 21.1702, Longitude: 72.8311},
	{City: "Lucknow", State: "Uttar Pradesh", Latitude: 26.8467, Longitude: 80.9462},
	{City: "Kanpur", State: "Uttar Pradesh", Latitude: 26.4499, Longitude: 80.3319},
	{City: "Nagpur", State: "Maharashtra", Latitude: 21.1458, Longitude: 79.0882},
	{City: "Indore", State: "Madhya Pradesh", Latitude: 22.7196, Longitude: 75.8577},
	{City: "Bhopal", State: "Madhya Pradesh", Latitude: 23.2599, Longitude: 77.4126},
	{City: "Patna", State: "Bihar", Latitude: 25.5941, Longitude: 85.1376},
	{City: "Vadodara", State: "Gujarat", Latitude: 22.3072, Longitude: 73.1812},
	{City: "Ludhiana", State: "Punjab", Latitude: 30.9010, Longitude: 75.8573},
	{City: "Kochi", State: "Kerala", Latitude: 9.9312, Longitude: 76.2673},
	{City: "Chandigarh", State: "Chandigarh", Latitude: 30.7333, Longitude: 76.7794},
}

// Pincode prefixes (first two digits) of the metros we cover.
var pincodePrefixes = map[string]models.Location{
	"11": {City: "Delhi", State: "Delhi", Latitude: 28.7041, Longitude: 77.1025},
	"40": {City: "Mumbai", State: "Maharashtra", Latitude: 19.0760, Longitude: 72.8777},
	"41": {City: "Pune", State: "Maharashtra", Latitude: 18.5204, Longitude: 73.8567},
	"30": {City: "Jaipur", State: "Rajasthan", Latitude: 26.9124, Longitude: 75.7873},
	"38": {City: "Ahmedabad", State: "Gujarat", Latitude: 23.0225, Longitude: 72.5714},
	"50": {City: "Hyderabad", State: "Telangana", Latitude: 17.3850, Longitude: 78.4867},
	"56": {City: "Bengaluru", State: "Karnataka", Latitude: 12.9716, Longitude: 77.5946},
	"60": {City: "Chennai", State: "Tamil Nadu", Latitude: 13.0827, Longitude: 80.2707},
	"70": {City: "Kolkata", State: "West Bengal", Latitude: 22.5726, Longitude: 88.3639},
	"22": {City: "Lucknow", State: "Uttar Pradesh", Latitude: 26.8467, Longitude: 80.9462},
}

// Cities returns a copy of the supported city table.
func Cities() []models.Location {
	out := make([]models.Location, len(cities))
	copy(out, cities)
	return out
}

// ResolveCity matches a city name exactly (ignoring case). The second return
// is false when the city is not covered; callers must guard.
func ResolveCity(name string) (models.Location, bool) {
	for _, c := range cities {
		if strings.EqualFold(c.City, name) {
			return c, true
		}
	}
	return models.Location{}, false
}

// ResolvePincode maps a 6-digit pincode to its metro via the first two
// digits. The original pincode is attached to the result.
func ResolvePincode(pincode string) (models.Location, error) {
	if !validPincode(pincode) {
		return models.Location{}, ErrInvalidPincode
	}
	loc, ok := pincodePrefixes[pincode[:2]]
	if !ok {
		return models.Location{}, ErrPincodeNotFound
	}
	loc.Pincode = pincode
	return loc, nil
}

// ResolveCoordinate snaps a coordinate to the nearest known city by squared
// Euclidean distance in degrees. Good enough for city selection; the pincode
// field is left empty.
func ResolveCoordinate(lat, lon float64) models.Location {
	best := cities[0]
	bestDist := sqDegrees(lat, lon, best.Latitude, best.Longitude)
	for _, c := range cities[1:] {
		if d := sqDegrees(lat, lon, c.Latitude, c.Longitude); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func sqDegrees(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return dLat*dLat + dLon*dLon
}

func validPincode(p string) bool {
	if len(p) != 6 {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	return true
}
