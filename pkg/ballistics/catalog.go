package ballistics

import (
	"sort"
	"strings"
)

// CustomProfileName is the catalog key reserved for user supplied profiles
const CustomProfileName = "custom"

// catalog holds the default load for each caliber. Ballistic coefficients are G1.
var catalog = map[string]BulletProfile{
	"9mm":          {Class: ClassHandgun, BallisticCoefficient: 0.125, MassGrains: 115, DiameterInches: 0.355, MuzzleVelocityFps: 1180},
	".380ACP":      {Class: ClassHandgun, BallisticCoefficient: 0.094, MassGrains: 95, DiameterInches: 0.355, MuzzleVelocityFps: 955},
	".40S&W":       {Class: ClassHandgun, BallisticCoefficient: 0.165, MassGrains: 180, DiameterInches: 0.400, MuzzleVelocityFps: 1000},
	".45ACP":       {Class: ClassHandgun, BallisticCoefficient: 0.195, MassGrains: 230, DiameterInches: 0.452, MuzzleVelocityFps: 850},
	".357Mag":      {Class: ClassHandgun, BallisticCoefficient: 0.206, MassGrains: 158, DiameterInches: 0.357, MuzzleVelocityFps: 1235},
	".223Rem":      {Class: ClassRifle, BallisticCoefficient: 0.243, MassGrains: 55, DiameterInches: 0.224, MuzzleVelocityFps: 3240},
	"5.56NATO":     {Class: ClassRifle, BallisticCoefficient: 0.304, MassGrains: 62, DiameterInches: 0.224, MuzzleVelocityFps: 3100},
	"7.62x39":      {Class: ClassRifle, BallisticCoefficient: 0.295, MassGrains: 123, DiameterInches: 0.311, MuzzleVelocityFps: 2350},
	".308Win":      {Class: ClassRifle, BallisticCoefficient: 0.462, MassGrains: 168, DiameterInches: 0.308, MuzzleVelocityFps: 2650},
	".30-06":       {Class: ClassRifle, BallisticCoefficient: 0.447, MassGrains: 165, DiameterInches: 0.308, MuzzleVelocityFps: 2800},
	"6.5Creedmoor": {Class: ClassRifle, BallisticCoefficient: 0.610, MassGrains: 140, DiameterInches: 0.264, MuzzleVelocityFps: 2710},
	".300WinMag":   {Class: ClassRifle, BallisticCoefficient: 0.533, MassGrains: 190, DiameterInches: 0.308, MuzzleVelocityFps: 2900},
	"12gaSlug":     {Class: ClassShotgun, BallisticCoefficient: 0.100, MassGrains: 437.5, DiameterInches: 0.729, MuzzleVelocityFps: 1560},
}

// LookupProfile returns the catalog profile for a caliber name, ignoring case
func LookupProfile(name string) (BulletProfile, bool) {
	if p, ok := catalog[name]; ok {
		p.Name = name
		return p, true
	}
	for key, p := range catalog {
		if strings.EqualFold(key, name) {
			p.Name = key
			return p, true
		}
	}
	return BulletProfile{}, false
}

// ClassOf classifies a caliber name. Unknown and custom names are ClassUnknown.
func ClassOf(name string) ProfileClass {
	if p, ok := LookupProfile(name); ok {
		return p.Class
	}
	return ClassUnknown
}

// ProfileNames returns the catalog keys in sorted order, without CustomProfileName
func ProfileNames() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns a copy of every catalog profile, sorted by name
func Catalog() []BulletProfile {
	names := ProfileNames()
	profiles := make([]BulletProfile, 0, len(names))
	for _, name := range names {
		p, _ := LookupProfile(name)
		profiles = append(profiles, p)
	}
	return profiles
}

// CustomProfile builds a user supplied profile. It is classified ClassUnknown and
// therefore uses the handgun energy threshold.
func CustomProfile(ballisticCoefficient, massGrains, diameterInches, muzzleVelocityFps float64) BulletProfile {
	return BulletProfile{
		Name:                 CustomProfileName,
		Class:                ClassUnknown,
		BallisticCoefficient: ballisticCoefficient,
		MassGrains:           massGrains,
		DiameterInches:       diameterInches,
		MuzzleVelocityFps:    muzzleVelocityFps,
	}
}
