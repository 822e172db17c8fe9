// Package itemdrop runs the mystery item games: a drop appears, the first
// member to reveal it wins a randomly generated item.
package itemdrop

import (
	"github.com/osse101/dropgame/internal/domain"
	"github.com/osse101/dropgame/internal/reward"
)

// Variant holds what differs between the item games.
type Variant struct {
	Game domain.Game
	// Noun is the lower-case item word, also the text trigger.
	Noun string
	// Title is the capitalised item word.
	Title string
	// Plural titles the bag view.
	Plural     string
	Command    string
	HistoryCap int
	Catalog    *reward.Catalog
	Defaults   domain.GuildDropSchedule
}

// Expiring reports whether unclaimed drops time out.
func (v Variant) Expiring() bool {
	return v.Defaults.ExpirySeconds > 0
}

// Mesh drops expire after ten minutes.
var Mesh = Variant{
	Game:       domain.GameMesh,
	Noun:       "mesh",
	Title:      "Mesh",
	Plural:     "Meshes",
	Command:    "mesh",
	HistoryCap: domain.MeshHistoryCap,
	Catalog:    reward.MeshCatalog,
	Defaults: domain.GuildDropSchedule{
		MinInterval:     domain.DefaultMinInterval,
		MaxInterval:     domain.DefaultMaxInterval,
		ExpirySeconds:   domain.DefaultExpirySeconds,
		AttemptCooldown: domain.DefaultAttemptCooldown,
	},
}

// Model drops wait until someone claims them.
var Model = Variant{
	Game:       domain.GameModel,
	Noun:       "model",
	Title:      "Model",
	Plural:     "Models",
	Command:    "model",
	HistoryCap: domain.ModelHistoryCap,
	Catalog:    reward.ModelCatalog,
	Defaults: domain.GuildDropSchedule{
		MinInterval:     domain.DefaultMinInterval,
		MaxInterval:     domain.DefaultMaxInterval,
		AttemptCooldown: domain.DefaultAttemptCooldown,
	},
}
