package games

import "math/rand"

// NutsInCanController: the targets flash one per step at random positions
// and then disappear. The agent must then grab the pile once per target it
// counted; spawned items auto-arrange beside the pile and the grade is on
// the number of pile grabs, not on any final positions.
type NutsInCanController struct {
	baseController
}

func NewNutsInCanController() *NutsInCanController {
	return &NutsInCanController{}
}

func (c *NutsInCanController) Name() string {
	return "nuts_in_can"
}

func (c *NutsInCanController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	c.nTargs = nTargs
	if err := reg.LayoutFixtures(); err != nil {
		return err
	}
	if err := reg.ClusterMatch(nTargs, rng); err != nil {
		return err
	}
	reg.SetAutoPlace(true)
	for i, t := range reg.Targs() {
		t.VisibleFrom = i
		t.VisibleUntil = i
	}
	return nil
}

func (c *NutsInCanController) Success(reg *Register) bool {
	return reg.PileGrabs() == c.nTargs
}

// Reward ignores the harsh flag: the counting games have no partial score.
func (c *NutsInCanController) Reward(reg *Register, harsh bool) float64 {
	return boolReward(c.Success(reg))
}

// VisNutsController: identical generation to the nuts in can game, but
// targets stay visible once flashed so no memory is needed.
type VisNutsController struct {
	NutsInCanController
}

func NewVisNutsController() *VisNutsController {
	return &VisNutsController{}
}

func (c *VisNutsController) Name() string {
	return "vis_nuts"
}

func (c *VisNutsController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	if err := c.NutsInCanController.Init(reg, nTargs, rng); err != nil {
		return err
	}
	for _, t := range reg.Targs() {
		t.VisibleUntil = VisibleAlways
	}
	return nil
}
