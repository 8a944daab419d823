package nexus

import (
	"math"
	"math/rand/v2"
)

// Upgrade is a level-up reward.
type Upgrade struct {
	ID          string
	Name        string
	Description string
	apply       func(p *Player, s *State)
}

// Upgrades lists every upgrade that can be offered.
var Upgrades = []Upgrade{
	{
		ID:          "health_boost",
		Name:        "Health Boost",
		Description: "Increase maximum health by 25%",
		apply: func(p *Player, _ *State) {
			p.MaxHealth = math.Floor(p.MaxHealth * 1.25)
			p.Health = p.MaxHealth
		},
	},
	{
		ID:          "speed_boost",
		Name:        "Speed Enhancement",
		Description: "Increase movement speed by 20%",
		apply: func(p *Player, _ *State) {
			p.Speed = math.Floor(p.Speed * 1.2)
		},
	},
	{
		ID:          "energy_boost",
		Name:        "Energy Upgrade",
		Description: "Increase maximum energy by 30%",
		apply: func(p *Player, _ *State) {
			p.MaxEnergy = math.Floor(p.MaxEnergy * 1.3)
			p.Energy = p.MaxEnergy
		},
	},
	{
		ID:          "damage_boost",
		Name:        "Damage Amplifier",
		Description: "Increase projectile damage by 50%",
		apply: func(_ *Player, s *State) {
			s.DamageMultiplier *= 1.5
		},
	},
}

// randomUpgrades returns n distinct upgrades in random order.
func randomUpgrades(rng *rand.Rand, n int) []Upgrade {
	perm := rng.Perm(len(Upgrades))
	n = min(n, len(perm))
	offers := make([]Upgrade, n)
	for i := range n {
		offers[i] = Upgrades[perm[i]]
	}
	return offers
}
