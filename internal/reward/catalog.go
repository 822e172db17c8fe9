package reward

import (
	"fmt"

	"github.com/osse101/dropgame/internal/domain"
)

// Catalog generates reward names. Pools for the four composed tiers nest:
// each tier draws from its own entries plus everything below it.
type Catalog struct {
	bases      [4][]string
	adjectives [4][]string
	materials  []string
}

const (
	goddessUnique    = "Metatron"
	defaultAdjective = "Default"
)

var mythicUniques = []string{"Markyn Ring of Majesty", "Doombringer"}

var adjectives = nest(
	[]string{"Default", "Beveled", "Smooth", "Low-Poly", "Decimated", "Chiseled", "Matte", "Brushed", "Plain"},
	[]string{"Iridescent", "Polished", "Engraved", "Inlaid", "Hardened", "Embossed", "Dimpled"},
	[]string{"Resonant", "Phase-Shifted", "Radiant", "Crystalline", "Fractal", "Spectral"},
	[]string{"Sunglint", "Starforged", "Chrono-locked"},
)

var meshMaterials = []string{
	"Clay", "Plastic", "Glass", "Obsidian", "Copper", "Steel", "Carbon", "Quartz", "Marble", "Onyx",
}

// MeshCatalog names mesh rewards from a small primitive pool.
var MeshCatalog = &Catalog{
	bases: nest(
		[]string{"Cube", "Sphere", "Plane", "Cylinder", "Cone", "Torus", "Icosphere", "Capsule", "Pyramid", "Suzanne"},
		[]string{"Low-Poly Arch", "Bezier Orb", "Offset Gear", "Truss Beam"},
		[]string{"Voronoi Shell", "Boolean Core", "Arrayed Fan"},
		[]string{"Catmull Dome", "Subdivision Relic", "Lattice Heart"},
	),
	adjectives: adjectives,
	materials:  meshMaterials,
}

var modelBases = []string{
	"Cube", "Sphere", "Plane", "Cylinder", "Cone", "Torus", "Icosphere", "Capsule", "Pyramid", "Suzanne",
	"Tetrahedron", "Octahedron", "Dodecahedron", "Icosahedron", "Prism", "Tri-Prism", "Hex Prism", "Arch", "Stair", "Gear",
	"Offset Gear", "Bevel Gear", "Helix", "Coil", "Spring", "Knot", "Trefoil", "Mobius", "Lattice", "Dome",
	"Vault", "Arc", "Bridge", "Truss", "Beam", "Bracket", "Frame", "Panel", "Louver", "Grille",
	"Vent", "Fan", "Rotor", "Propeller", "Blade", "Wing", "Fin", "Rudder", "Rail", "Track",
	"Ramp", "Spiral Stair", "Spline Arc", "Bezier Orb", "NURBS Surface", "Patch", "Voronoi Shell", "Boolean Core", "Arrayed Fan", "Catmull Dome",
	"Subdivision Relic", "Lattice Heart", "Low-Poly Arch", "Pillar", "Column", "Obelisk", "Monolith", "Slab", "Tile", "Brick",
	"Wedge", "Chisel", "Keystone", "Ring", "Halo", "Torus Knot", "Donut", "Bowl", "Vase", "Amphora",
	"Bottle", "Flask", "Test Tube", "Tube", "Pipe", "Elbow", "Tee Junction", "Manifold", "Nozzle", "Jet",
	"Lens", "Prism Lens", "Mirror", "Reflector", "Antenna", "Dish", "Radar", "Satellite", "Pod", "Module",
}

var modelMaterials = append(append([]string(nil), meshMaterials...),
	"Titanium", "Aluminum", "Brass", "Bronze", "Iron", "Gold", "Silver", "Cobalt", "Nickel", "Tungsten",
	"Granite", "Basalt", "Concrete", "Wood", "Jade", "Emerald", "Sapphire", "Ruby", "Amethyst", "Topaz",
)

// ModelCatalog names model rewards from a 100-entry pool sliced per tier.
var ModelCatalog = &Catalog{
	bases:      [4][]string{modelBases[:60], modelBases[:80], modelBases[:90], modelBases},
	adjectives: adjectives,
	materials:  modelMaterials,
}

// nest builds cumulative pools where tier i holds tiers[0..i].
func nest(tiers ...[]string) [4][]string {
	var out [4][]string
	var acc []string
	for i, t := range tiers {
		acc = append(acc, t...)
		out[i] = append([]string(nil), acc...)
	}
	return out
}

// Generate returns a reward name for the tier. Mythic and Goddess draw from
// fixed unique names; the rest compose adjective, material and base.
func (c *Catalog) Generate(rng RNG, tier domain.Tier) string {
	switch tier {
	case domain.TierGoddess:
		return goddessUnique
	case domain.TierMythic:
		return choose(rng, mythicUniques)
	}

	i := int(tier)
	if i < 0 || i >= len(c.bases) {
		i = 0
	}
	adj := choose(rng, c.adjectives[i])
	base := choose(rng, c.bases[i])
	mat := choose(rng, c.materials)
	if tier == domain.TierCommon && adj == defaultAdjective {
		return fmt.Sprintf("%s %s", adj, base)
	}
	return fmt.Sprintf("%s %s %s", adj, mat, base)
}

// Bases exposes the base pool for a composed tier.
func (c *Catalog) Bases(tier domain.Tier) []string {
	return c.bases[tier]
}

// Adjectives exposes the adjective pool for a composed tier.
func (c *Catalog) Adjectives(tier domain.Tier) []string {
	return c.adjectives[tier]
}
