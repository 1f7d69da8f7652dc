package geo

import (
	"math"
	"testing"
)

func TestResolveCity(t *testing.T) {
	loc, ok := ResolveCity("mumbai")
	if !ok {
		t.Fatal("expected Mumbai to resolve")
	}
	if loc.City != "Mumbai" || loc.State != "Maharashtra" {
		t.Fatalf("got %s/%s", loc.City, loc.State)
	}
	if loc.Pincode != "" {
		t.Fatalf("city lookup should leave pincode empty, got %q", loc.Pincode)
	}

	if _, ok := ResolveCity("Atlantis"); ok {
		t.Fatal("unknown city must not resolve")
	}
}

func TestResolvePincode(t *testing.T) {
	loc, err := ResolvePincode("400001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.City != "Mumbai" || loc.State != "Maharashtra" {
		t.Fatalf("400001 resolved to %s/%s", loc.City, loc.State)
	}
	if loc.Latitude != 19.0760 || loc.Longitude != 72.8777 {
		t.Fatalf("coordinates drifted: %v,%v", loc.Latitude, loc.Longitude)
	}
	if loc.Pincode != "400001" {
		t.Fatalf("original pincode not attached, got %q", loc.Pincode)
	}

	if _, err := ResolvePincode("999999"); err != ErrPincodeNotFound {
		t.Fatalf("unknown prefix: want ErrPincodeNotFound, got %v", err)
	}
	for _, bad := range []string{"12345", "1234567", "40000x", ""} {
		if _, err := ResolvePincode(bad); err != ErrInvalidPincode {
			t.Fatalf("%q: want ErrInvalidPincode, got %v", bad, err)
		}
	}
}

func TestResolveCoordinate(t *testing.T) {
	// A point in Navi Mumbai should snap to Mumbai, not Pune.
	loc := ResolveCoordinate(19.03, 73.01)
	if loc.City != "Mumbai" {
		t.Fatalf("expected Mumbai, got %s", loc.City)
	}
	if loc.Pincode != "" {
		t.Fatal("coordinate lookup must leave pincode empty")
	}

	// Exact city coordinates snap to that city.
	loc = ResolveCoordinate(12.9716, 77.5946)
	if loc.City != "Bengaluru" {
		t.Fatalf("expected Bengaluru, got %s", loc.City)
	}
}

func TestDistanceKm(t *testing.T) {
	mum, _ := ResolveCity("Mumbai")
	del, _ := ResolveCity("Delhi")

	d := DistanceKm(mum.Latitude, mum.Longitude, del.Latitude, del.Longitude)
	if d < 1100 || d > 1250 {
		t.Fatalf("Mumbai-Delhi distance out of range: %v km", d)
	}

	// Symmetry and identity.
	rev := DistanceKm(del.Latitude, del.Longitude, mum.Latitude, mum.Longitude)
	if math.Abs(d-rev) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", d, rev)
	}
	if z := DistanceKm(mum.Latitude, mum.Longitude, mum.Latitude, mum.Longitude); z != 0 {
		t.Fatalf("self distance should be 0, got %v", z)
	}
}
