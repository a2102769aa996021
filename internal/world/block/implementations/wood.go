package implementations

import (
	"github.com/annel0/blockverse/internal/world/block"
)

// WoodBehavior - ствол дерева
type WoodBehavior struct {
	block.Base
}

func (b *WoodBehavior) ID() block.BlockID { return block.WoodBlockID }
func (b *WoodBehavior) Name() string      { return "Wood" }

// PlanksBehavior - доски
type PlanksBehavior struct {
	block.Base
}

func (b *PlanksBehavior) ID() block.BlockID { return block.PlanksBlockID }
func (b *PlanksBehavior) Name() string      { return "Planks" }
