package service

import (
	"math"
	"testing"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

func TestDistance_SamePoint(t *testing.T) {
	p := domain.Coordinate{Lat: -6.2088, Lon: 106.8456}
	if d := Distance(p, p); d != 0 {
		t.Errorf("expected 0, got %f", d)
	}
}

func TestDistance_OneDegreeOfLongitudeAtEquator(t *testing.T) {
	d := Distance(domain.Coordinate{Lat: 0, Lon: 0}, domain.Coordinate{Lat: 0, Lon: 1})
	if math.Abs(d-111195) > 50 {
		t.Errorf("expected ~111195m, got %f", d)
	}
}

func TestDistance_Symmetric(t *testing.T) {
	a := domain.Coordinate{Lat: -6.2088, Lon: 106.8456}
	b := domain.Coordinate{Lat: -6.9175, Lon: 107.6191}
	if Distance(a, b) != Distance(b, a) {
		t.Errorf("expected symmetric distance, got %f and %f", Distance(a, b), Distance(b, a))
	}
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(domain.Coordinate{Lat: 0, Lon: 0}, domain.Coordinate{Lat: 0, Lon: 180})
	want := math.Pi * earthRadiusMeters
	if math.Abs(d-want) > 1 {
		t.Errorf("expected %f, got %f", want, d)
	}
}

func TestDistance_NaNPropagates(t *testing.T) {
	d := Distance(domain.Coordinate{Lat: math.NaN(), Lon: 0}, domain.Coordinate{Lat: 0, Lon: 0})
	if !math.IsNaN(d) {
		t.Errorf("expected NaN, got %f", d)
	}
}
