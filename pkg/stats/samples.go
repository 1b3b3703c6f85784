package stats

import (
	"fmt"
	"slices"
)

// PairsFromScoreMaps aligns two topic-to-score mappings into pairs
// ordered by topic id. The key sets must be identical.
func PairsFromScoreMaps(a, b map[string]float64) ([]Pair, error) {
	return mergeScoreMaps(a, b)
}

// TupledSamplesFromScoreMaps aligns one topic-to-score mapping per
// system into rows of per-topic scores ordered by topic id, one column
// per system. The key sets must be identical across systems.
func TupledSamplesFromScoreMaps(maps []map[string]float64) ([][]float64, error) {
	if len(maps) < 2 {
		return nil, &InputError{msg: "the input must cover at least two systems"}
	}
	topics := make([]string, 0, len(maps[0]))
	for topic := range maps[0] {
		topics = append(topics, topic)
	}
	slices.Sort(topics)
	for i, m := range maps[1:] {
		if len(m) != len(topics) {
			return nil, &InputError{msg: fmt.Sprintf(
				"topic sets must match, but system %d has %d of %d topics", i+1, len(m), len(topics))}
		}
		for _, topic := range topics {
			if _, ok := m[topic]; !ok {
				return nil, &InputError{msg: fmt.Sprintf("topic %s is missing from system %d", topic, i+1)}
			}
		}
	}
	samples := make([][]float64, len(topics))
	for j, topic := range topics {
		row := make([]float64, len(maps))
		for i, m := range maps {
			row[i] = m[topic]
		}
		samples[j] = row
	}
	return samples, nil
}
