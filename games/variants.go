package games

import "math/rand"

// baseController carries the per-episode target count shared by every
// variant.
type baseController struct {
	nTargs int
}

// Animating covers the intro window every game opens with: one step per
// target for the agent to count them, grabs suppressed throughout.
func (b *baseController) Animating(step int) bool {
	return step <= b.nTargs
}

func (b *baseController) NTargs() int {
	return b.nTargs
}

// lineMatchSuccess checks the line matching games: as many items as
// targets and exactly one item in each target's column.
func lineMatchSuccess(reg *Register, nTargs int) bool {
	items := reg.Items()
	if len(items) != nTargs {
		return false
	}
	itemCols := colsOf(items)
	for col := range colsOf(reg.Targs()) {
		if itemCols[col] != 1 {
			return false
		}
	}
	return true
}

// lineMatchPartial is the continuous score for the line matching games:
// matched columns minus unmatched item columns minus the surplus item
// count. Items spread over more than one row forfeit the column score.
func lineMatchPartial(reg *Register, nTargs int) float64 {
	items := reg.Items()
	if !singleRow(items) {
		return -1
	}
	itemCols := colsOf(items)
	targCols := colsOf(reg.Targs())
	matched := 0
	for col := range targCols {
		if itemCols[col] > 0 {
			matched++
		}
	}
	rew := float64(matched)
	rew -= float64(len(itemCols) - matched)
	rew -= float64(abs(len(items) - nTargs))
	return rew
}

// clusterSuccess checks for an exact item count all aligned along one row.
func clusterSuccess(reg *Register, nTargs int) bool {
	items := reg.Items()
	return len(items) == nTargs && singleRow(items)
}

// clusterPartial scores proximity to the target count and penalizes items
// off the majority row, both scaled by the target count. A zero target
// count has no scale, so it grades all or nothing.
func clusterPartial(reg *Register, nTargs int) float64 {
	items := reg.Items()
	nItems := len(items)
	if nTargs == 0 {
		return boolReward(nItems == 0)
	}
	rew := float64(nTargs-abs(nItems-nTargs)) / float64(nTargs)
	rew -= float64(abs(maxRowCount(items)-nItems)) / float64(nTargs)
	return rew
}

// countPartial scores only the distance between the item and target counts.
func countPartial(reg *Register, nTargs int) float64 {
	if nTargs == 0 {
		return boolReward(reg.NumItems() == 0)
	}
	return float64(nTargs-abs(reg.NumItems()-nTargs)) / float64(nTargs)
}

// EvenLineMatchController: targets sit evenly spaced along one row and the
// agent must put one item in each target column.
type EvenLineMatchController struct {
	baseController
}

func NewEvenLineMatchController() *EvenLineMatchController {
	return &EvenLineMatchController{}
}

func (c *EvenLineMatchController) Name() string {
	return "even_line_match"
}

func (c *EvenLineMatchController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	c.nTargs = nTargs
	if err := reg.LayoutFixtures(); err != nil {
		return err
	}
	return reg.EvenLineMatch(nTargs)
}

func (c *EvenLineMatchController) Success(reg *Register) bool {
	return lineMatchSuccess(reg, c.nTargs)
}

func (c *EvenLineMatchController) Reward(reg *Register, harsh bool) float64 {
	if harsh {
		return boolReward(c.Success(reg))
	}
	return lineMatchPartial(reg, c.nTargs)
}

// UnevenLineMatchController: like the even line game but the target
// columns are random and unevenly spaced.
type UnevenLineMatchController struct {
	EvenLineMatchController
}

func NewUnevenLineMatchController() *UnevenLineMatchController {
	return &UnevenLineMatchController{}
}

func (c *UnevenLineMatchController) Name() string {
	return "uneven_line_match"
}

func (c *UnevenLineMatchController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	c.nTargs = nTargs
	if err := reg.LayoutFixtures(); err != nil {
		return err
	}
	return reg.UnevenLineMatch(nTargs, rng)
}

// ClusterMatchController: targets are scattered and the agent must lay the
// same count of items along a single row.
type ClusterMatchController struct {
	baseController
}

func NewClusterMatchController() *ClusterMatchController {
	return &ClusterMatchController{}
}

func (c *ClusterMatchController) Name() string {
	return "cluster_match"
}

func (c *ClusterMatchController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	c.nTargs = nTargs
	if err := reg.LayoutFixtures(); err != nil {
		return err
	}
	return reg.ClusterMatch(nTargs, rng)
}

func (c *ClusterMatchController) Success(reg *Register) bool {
	return clusterSuccess(reg, c.nTargs)
}

func (c *ClusterMatchController) Reward(reg *Register, harsh bool) float64 {
	if harsh {
		return boolReward(c.Success(reg))
	}
	return clusterPartial(reg, c.nTargs)
}

// OrthogonalLineMatchController: targets form a vertical line and the
// agent answers with a horizontal one.
type OrthogonalLineMatchController struct {
	ClusterMatchController
}

func NewOrthogonalLineMatchController() *OrthogonalLineMatchController {
	return &OrthogonalLineMatchController{}
}

func (c *OrthogonalLineMatchController) Name() string {
	return "orthogonal_line_match"
}

func (c *OrthogonalLineMatchController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	c.nTargs = nTargs
	if err := reg.LayoutFixtures(); err != nil {
		return err
	}
	return reg.OrthogonalLineMatch(nTargs, rng)
}

// ReverseClusterMatchController: the agent must match the count while
// keeping every item out of the target columns.
type ReverseClusterMatchController struct {
	ClusterMatchController
}

func NewReverseClusterMatchController() *ReverseClusterMatchController {
	return &ReverseClusterMatchController{}
}

func (c *ReverseClusterMatchController) Name() string {
	return "reverse_cluster_match"
}

func (c *ReverseClusterMatchController) Success(reg *Register) bool {
	items := reg.Items()
	if len(items) != c.nTargs {
		return false
	}
	return alignedWithTargs(items, reg.Targs()) == 0
}

func (c *ReverseClusterMatchController) Reward(reg *Register, harsh bool) float64 {
	if harsh {
		return boolReward(c.Success(reg))
	}
	// Fully aligned items zero out the count score, except in the
	// one-target game where a single aligned item cannot be avoided.
	if alignedWithTargs(reg.Items(), reg.Targs()) == c.nTargs {
		if c.nTargs == 1 {
			return 1
		}
		return 0
	}
	return countPartial(reg, c.nTargs)
}

// ClusterClusterMatchController: pure counting, no positional constraint.
type ClusterClusterMatchController struct {
	ClusterMatchController
}

func NewClusterClusterMatchController() *ClusterClusterMatchController {
	return &ClusterClusterMatchController{}
}

func (c *ClusterClusterMatchController) Name() string {
	return "cluster_cluster_match"
}

func (c *ClusterClusterMatchController) Success(reg *Register) bool {
	return reg.NumItems() == c.nTargs
}

func (c *ClusterClusterMatchController) Reward(reg *Register, harsh bool) float64 {
	if harsh {
		return boolReward(c.Success(reg))
	}
	return countPartial(reg, c.nTargs)
}

// BriefPresentationController: the cluster match game with the targets
// visible only for the first DisplayCount steps.
type BriefPresentationController struct {
	ClusterMatchController
}

func NewBriefPresentationController() *BriefPresentationController {
	return &BriefPresentationController{}
}

func (c *BriefPresentationController) Name() string {
	return "brief_presentation"
}

func (c *BriefPresentationController) Init(reg *Register, nTargs int, rng *rand.Rand) error {
	if err := c.ClusterMatchController.Init(reg, nTargs, rng); err != nil {
		return err
	}
	for _, t := range reg.Targs() {
		t.VisibleFrom = 0
		t.VisibleUntil = DisplayCount - 1
	}
	return nil
}
