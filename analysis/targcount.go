package analysis

import (
	"path"
	"strconv"

	"github.com/grantsrb/gordongames/core"
	"github.com/grantsrb/gordongames/util"
)

type targCountDataset struct {
	// Counts maps a sampled target count to the number of episodes it
	// appeared in.
	Counts map[int]int
}

func (t *targCountDataset) Copy() *targCountDataset {
	return &targCountDataset{
		Counts: util.CopyIntIntMap(t.Counts),
	}
}

// TargCountAnalyzer tallies the distribution of sampled target counts, the
// check used to confirm hold-outs never leak into sampling.
type TargCountAnalyzer struct {
	dataset *targCountDataset
}

var _ core.Analyzer = &TargCountAnalyzer{}

func NewTargCountAnalyzer() *TargCountAnalyzer {
	return &TargCountAnalyzer{
		dataset: &targCountDataset{Counts: make(map[int]int)},
	}
}

func (t *TargCountAnalyzer) Reset() {
	t.dataset = &targCountDataset{Counts: make(map[int]int)}
}

func (t *TargCountAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	if trace.Len() == 0 {
		return
	}
	misc := trace.Last().Misc
	if misc == nil {
		return
	}
	if n, ok := misc["n_targs"].(int); ok {
		t.dataset.Counts[n]++
	}
}

func (t *TargCountAnalyzer) DataSet() core.DataSet {
	return t.dataset.Copy()
}

type TargCountAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &TargCountAnalyzerConstructor{}

func (t *TargCountAnalyzerConstructor) NewAnalyzer(_ int) core.Analyzer {
	return NewTargCountAnalyzer()
}

type TargCountComparator struct {
	savePath string
}

var _ core.Comparator = &TargCountComparator{}

func NewTargCountComparator(savePath string) *TargCountComparator {
	return &TargCountComparator{
		savePath: path.Join(savePath, "targ_count_analyzer.json"),
	}
}

func (t *TargCountComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]*targCountDataset)
	for i, name := range experimentNames {
		if datasets[i] == nil {
			continue
		}
		out[name] = datasets[i].(*targCountDataset)
	}

	util.SaveJson(t.savePath, out)
}

type TargCountComparatorConstructor struct {
	savePath string
}

var _ core.ComparatorConstructor = &TargCountComparatorConstructor{}

func NewTargCountComparatorConstructor(savePath string) *TargCountComparatorConstructor {
	return &TargCountComparatorConstructor{
		savePath: savePath,
	}
}

func (t *TargCountComparatorConstructor) NewComparator(run int) core.Comparator {
	return NewTargCountComparator(path.Join(t.savePath, strconv.Itoa(run)))
}
