package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"LandWatch-App/internal/domain/model"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi
)

// Propagator SGP4でTLEから衛星位置を計算する
type Propagator struct {
	tle model.TLE
	sat satellite.Satellite
}

// NewPropagator TLEを検証してPropagatorを作成
func NewPropagator(tle *model.TLE) (*Propagator, error) {
	if tle == nil {
		return nil, fmt.Errorf("TLEがnilです")
	}
	l1, l2 := strings.TrimSpace(tle.Line1), strings.TrimSpace(tle.Line2)
	if len(l1) < 69 || len(l2) < 69 || !strings.HasPrefix(l1, "1 ") || !strings.HasPrefix(l2, "2 ") {
		return nil, fmt.Errorf("TLEの形式が不正です (catalog %d)", tle.CatalogNumber)
	}
	return &Propagator{
		tle: *tle,
		sat: satellite.TLEToSat(l1, l2, satellite.GravityWGS72),
	}, nil
}

// Position 指定時刻の直下点（緯度・経度は度、高度はkm）
func (p *Propagator) Position(at time.Time) (model.SatellitePosition, error) {
	eci, jday, err := p.propagate(at)
	if err != nil {
		return model.SatellitePosition{}, err
	}
	alt, _, ll := satellite.ECIToLLA(eci, satellite.ThetaG_JD(jday))

	return model.SatellitePosition{
		Name:          p.tle.Name,
		CatalogNumber: p.tle.CatalogNumber,
		Latitude:      ll.Latitude * rad2deg,
		Longitude:     normalizeLongitude(ll.Longitude * rad2deg),
		AltitudeKm:    alt,
		Timestamp:     at.UTC(),
	}, nil
}

// Elevation 観測地点から見た衛星の仰角（度）
func (p *Propagator) Elevation(at time.Time, observer model.LatLng, observerAltKm float64) (float64, error) {
	eci, jday, err := p.propagate(at)
	if err != nil {
		return 0, err
	}
	obs := satellite.LatLong{Latitude: observer.Lat * deg2rad, Longitude: observer.Lng * deg2rad}
	look := satellite.ECIToLookAngles(eci, obs, observerAltKm, jday)
	return look.El * rad2deg, nil
}

func (p *Propagator) propagate(at time.Time) (satellite.Vector3, float64, error) {
	at = at.UTC()
	year, month, day := at.Date()
	hour, minute, sec := at.Clock()

	eci, _ := satellite.Propagate(p.sat, year, int(month), day, hour, minute, sec)
	if math.IsNaN(eci.X) || math.IsNaN(eci.Y) || math.IsNaN(eci.Z) {
		return satellite.Vector3{}, 0, fmt.Errorf("軌道計算に失敗しました (catalog %d, %s)", p.tle.CatalogNumber, at.Format(time.RFC3339))
	}
	return eci, satellite.JDay(year, int(month), day, hour, minute, sec), nil
}

// normalizeLongitude 経度を [-180, 180) に収める
func normalizeLongitude(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
