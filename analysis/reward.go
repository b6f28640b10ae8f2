package analysis

import (
	"path"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/grantsrb/gordongames/core"
	"github.com/grantsrb/gordongames/util"
)

type rewardDataset struct {
	Rewards   []float64
	Steps     []int
	Successes int
	Episodes  int

	MeanReward  float64
	SuccessRate float64
}

func (r *rewardDataset) Copy() *rewardDataset {
	out := &rewardDataset{
		Rewards:   util.CopyFloatSlice(r.Rewards),
		Steps:     util.CopyIntSlice(r.Steps),
		Successes: r.Successes,
		Episodes:  r.Episodes,
	}
	if len(out.Rewards) > 0 {
		out.MeanReward = stat.Mean(out.Rewards, nil)
	}
	if out.Episodes > 0 {
		out.SuccessRate = float64(out.Successes) / float64(out.Episodes)
	}
	return out
}

// RewardAnalyzer records the terminal reward and length of every episode.
type RewardAnalyzer struct {
	dataset *rewardDataset
}

var _ core.Analyzer = &RewardAnalyzer{}

func NewRewardAnalyzer() *RewardAnalyzer {
	return &RewardAnalyzer{
		dataset: &rewardDataset{
			Rewards: make([]float64, 0),
			Steps:   make([]int, 0),
		},
	}
}

func (r *RewardAnalyzer) Reset() {
	r.dataset = &rewardDataset{
		Rewards: make([]float64, 0),
		Steps:   make([]int, 0),
	}
}

func (r *RewardAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	if trace.Len() == 0 {
		return
	}
	last := trace.Last()
	r.dataset.Rewards = append(r.dataset.Rewards, trace.TotalReward())
	r.dataset.Steps = append(r.dataset.Steps, trace.Len())
	r.dataset.Episodes++
	if last.Done && last.Reward > 0 {
		r.dataset.Successes++
	}
}

func (r *RewardAnalyzer) DataSet() core.DataSet {
	return r.dataset.Copy()
}

type RewardAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &RewardAnalyzerConstructor{}

func (r *RewardAnalyzerConstructor) NewAnalyzer(_ int) core.Analyzer {
	return NewRewardAnalyzer()
}

type RewardComparator struct {
	savePath string
}

var _ core.Comparator = &RewardComparator{}

func NewRewardComparator(savePath string) *RewardComparator {
	return &RewardComparator{
		savePath: path.Join(savePath, "reward_analyzer.json"),
	}
}

func (r *RewardComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]*rewardDataset)
	for i, name := range experimentNames {
		if datasets[i] == nil {
			continue
		}
		out[name] = datasets[i].(*rewardDataset)
	}

	util.SaveJson(r.savePath, out)
}

type RewardComparatorConstructor struct {
	savePath string
}

var _ core.ComparatorConstructor = &RewardComparatorConstructor{}

func NewRewardComparatorConstructor(savePath string) *RewardComparatorConstructor {
	return &RewardComparatorConstructor{
		savePath: savePath,
	}
}

func (r *RewardComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewRewardComparator(path.Join(r.savePath, strconv.Itoa(run)))
}
