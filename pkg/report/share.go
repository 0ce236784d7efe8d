package report

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
)

// query keys of a shared request
const (
	keyProfile  = "profile"
	keyBC       = "bc"
	keyMass     = "mass"
	keyDiameter = "dia"
	keyVelocity = "mv"
	keyTemp     = "temp"
	keyPressure = "press"
	keyHumidity = "hum"
	keyWind     = "wind"
	keyWindDir  = "windDir"
	keyIncline  = "angle"
	keySight    = "sight"
	keyZero     = "zero"
	keyRange    = "range"
	keyStep     = "step"
	keyVital    = "vital"
)

// EncodeShareQuery serializes a request into a URL query. Catalog profiles are encoded
// by name; anything else carries its physical properties.
func EncodeShareQuery(req ballistics.SimulationRequest) string {
	v := url.Values{}
	set := func(key string, value float64) {
		v.Set(key, strconv.FormatFloat(value, 'g', -1, 64))
	}

	if catalog, ok := ballistics.LookupProfile(req.Profile.Name); ok && catalog == req.Profile {
		v.Set(keyProfile, catalog.Name)
	} else {
		v.Set(keyProfile, ballistics.CustomProfileName)
		set(keyBC, req.Profile.BallisticCoefficient)
		set(keyMass, req.Profile.MassGrains)
		set(keyDiameter, req.Profile.DiameterInches)
		set(keyVelocity, req.Profile.MuzzleVelocityFps)
	}

	env := req.Environment
	set(keyTemp, env.TemperatureF)
	set(keyPressure, env.PressureInHg)
	set(keyHumidity, env.HumidityPercent)
	if env.WindSpeedMph != 0 {
		set(keyWind, env.WindSpeedMph)
		set(keyWindDir, env.WindAngleDeg)
	}
	if env.ShootingAngleDeg != 0 {
		set(keyIncline, env.ShootingAngleDeg)
	}

	set(keySight, req.Sight.SightHeightInches)
	set(keyZero, req.Sight.ZeroRangeYards)
	set(keyRange, req.MaxRangeYards)
	if req.SampleIntervalYards != 0 {
		set(keyStep, req.SampleIntervalYards)
	}
	if req.VitalZoneInches != 0 {
		set(keyVital, req.VitalZoneInches)
	}
	return v.Encode()
}

// DecodeShareQuery rebuilds a request from EncodeShareQuery output and validates it
func DecodeShareQuery(query string) (ballistics.SimulationRequest, error) {
	var req ballistics.SimulationRequest

	v, err := url.ParseQuery(query)
	if err != nil {
		return req, fmt.Errorf("invalid share query: %w", err)
	}

	var parseErr error
	get := func(key string, required bool) float64 {
		raw := v.Get(key)
		if raw == "" {
			if required && parseErr == nil {
				parseErr = fmt.Errorf("share query is missing %s", key)
			}
			return 0
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil && parseErr == nil {
			parseErr = fmt.Errorf("share query %s: %w", key, err)
		}
		return f
	}

	name := v.Get(keyProfile)
	if profile, ok := ballistics.LookupProfile(name); ok {
		req.Profile = profile
	} else if name == ballistics.CustomProfileName {
		req.Profile = ballistics.CustomProfile(get(keyBC, true), get(keyMass, true),
			get(keyDiameter, true), get(keyVelocity, true))
	} else {
		return req, fmt.Errorf("share query has unknown profile %q", name)
	}

	req.Environment = ballistics.EnvironmentalConditions{
		TemperatureF:     get(keyTemp, true),
		PressureInHg:     get(keyPressure, true),
		HumidityPercent:  get(keyHumidity, false),
		WindSpeedMph:     get(keyWind, false),
		WindAngleDeg:     get(keyWindDir, false),
		ShootingAngleDeg: get(keyIncline, false),
	}
	req.Sight = ballistics.SightConfig{
		SightHeightInches: get(keySight, true),
		ZeroRangeYards:    get(keyZero, true),
	}
	req.MaxRangeYards = get(keyRange, true)
	req.SampleIntervalYards = get(keyStep, false)
	req.VitalZoneInches = get(keyVital, false)

	if parseErr != nil {
		return req, parseErr
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// ShareLink appends the encoded request to base
func ShareLink(base string, req ballistics.SimulationRequest) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid share url: %w", err)
	}
	u.RawQuery = EncodeShareQuery(req)
	return u.String(), nil
}
