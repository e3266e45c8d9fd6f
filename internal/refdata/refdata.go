// internal/refdata/refdata.go
//
// Package refdata carries the fixed VMH/AGORA exchange lists baked into the
// binary at compile time. The lists are data, not logic: they live in a
// packaged YAML file so the transformation code stays independent of their
// size and contents.
package refdata

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/lists.yaml
var listsYAML []byte

// BoundedList is a fixed exchange list with a default lower bound applied to
// entries missing from an input diet.
type BoundedList struct {
	Bound     float64  `yaml:"bound"`
	Exchanges []string `yaml:"exchanges"`
}

// ScaledList is a fixed exchange list with a rescale rule: bounds whose
// magnitude is at or below Threshold are multiplied by Factor.
type ScaledList struct {
	Threshold float64  `yaml:"threshold"`
	Factor    float64  `yaml:"factor"`
	Exchanges []string `yaml:"exchanges"`
}

// Lists is the full packaged reference set.
type Lists struct {
	Essential      BoundedList `yaml:"essential"`
	Unmapped       BoundedList `yaml:"unmapped"`
	Micronutrients ScaledList  `yaml:"micronutrients"`
}

// Identifiers given special treatment by the adaptation stages.
const (
	// Cholesterol row appended after augmentation.
	CholesterolID    = "EX_chol(e)"
	CholesterolBound = -41.251

	// Adenosylcobalamin as spelled in the reference lists, and the alternate
	// spelling used by the AGORA model files.
	Adocbl    = "EX_adocbl(e)"
	AdocblAlt = "EX_adpcbl(e)"
)

// Load parses the embedded list file. The data is compiled in, so a failure
// here is a packaging defect, not a runtime condition; callers may treat it
// as fatal.
func Load() (*Lists, error) {
	var l Lists
	if err := yaml.Unmarshal(listsYAML, &l); err != nil {
		return nil, fmt.Errorf("embedded reference lists: %w", err)
	}
	if len(l.Essential.Exchanges) == 0 || len(l.Unmapped.Exchanges) == 0 || len(l.Micronutrients.Exchanges) == 0 {
		return nil, fmt.Errorf("embedded reference lists: empty list")
	}
	return &l, nil
}

// Set returns the exchanges as a membership set.
func Set(ids []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
