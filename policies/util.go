package policies

import (
	"math"
	"math/rand"
	"time"
)

type QTable struct {
	table map[string]map[string]float64

	rand *rand.Rand
}

func NewQTable() *QTable {
	return &QTable{
		table: make(map[string]map[string]float64),
		rand:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (q *QTable) Get(state, action string, def float64) float64 {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	if _, ok := q.table[state][action]; !ok {
		q.table[state][action] = def
	}
	return q.table[state][action]
}

func (q *QTable) Set(state, action string, val float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	q.table[state][action] = val
}

func (q *QTable) Max(state string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok { // if state is not in the QTable at all, return default value
		q.table[state] = make(map[string]float64)
		return "", def
	}
	maxAction := ""
	maxVal := float64(math.MinInt)
	for a, val := range q.table[state] { // for all the actions
		if val > maxVal {
			maxAction = a
			maxVal = val
		}
	}

	if maxAction == "" {
		return "", def
	}

	return maxAction, maxVal
}

func (q *QTable) Size() int {
	return len(q.table)
}

func (q *QTable) MaxAmong(state string, actions []string, def float64) (string, float64) {
	if _, ok := q.table[state]; !ok {
		q.table[state] = make(map[string]float64)
	}
	maxActions := make([]string, 0)
	maxVal := float64(math.MinInt)
	for _, a := range actions {
		if _, ok := q.table[state][a]; !ok {
			q.table[state][a] = def
		}
		val := q.table[state][a]
		if val > maxVal {
			maxActions = make([]string, 0)
			maxVal = val
		}
		if val == maxVal {
			maxActions = append(maxActions, a)
		}
	}

	randAction := q.rand.Intn(len(maxActions))
	return maxActions[randAction], maxVal
}
