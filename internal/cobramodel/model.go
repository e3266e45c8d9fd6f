// internal/cobramodel/model.go
//
// Package cobramodel loads genome-scale metabolic models in COBRA-style JSON
// and exposes the two operations the growth validator needs: applying a diet
// constraint table and maximizing biomass flux.
package cobramodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"dietadapt/internal/diet"
	"dietadapt/internal/fba"
)

// Reaction is one model reaction with its stoichiometry and flux bounds.
type Reaction struct {
	ID                   string             `json:"id"`
	Name                 string             `json:"name,omitempty"`
	Metabolites          map[string]float64 `json:"metabolites"`
	LowerBound           float64            `json:"lower_bound"`
	UpperBound           float64            `json:"upper_bound"`
	ObjectiveCoefficient float64            `json:"objective_coefficient,omitempty"`
}

// Metabolite is one model species; only the identifier matters here.
type Metabolite struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Compartment string `json:"compartment,omitempty"`
}

// Model is a loaded reconstruction.
type Model struct {
	ID          string       `json:"id"`
	Reactions   []Reaction   `json:"reactions"`
	Metabolites []Metabolite `json:"metabolites"`

	path string
}

const (
	exchangePrefix = "EX_"
	biomassPrefix  = "biomass"
)

// Load reads and validates a COBRA JSON model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	if len(m.Reactions) == 0 {
		return nil, fmt.Errorf("model %s: no reactions", path)
	}
	for i := range m.Reactions {
		r := &m.Reactions[i]
		if math.IsInf(r.LowerBound, 0) || math.IsInf(r.UpperBound, 0) || math.IsNaN(r.LowerBound) || math.IsNaN(r.UpperBound) {
			return nil, fmt.Errorf("model %s: reaction %s: non-finite bound", path, r.ID)
		}
		if r.LowerBound > r.UpperBound {
			return nil, fmt.Errorf("model %s: reaction %s: lower bound %g above upper %g", path, r.ID, r.LowerBound, r.UpperBound)
		}
	}
	m.path = path
	return &m, nil
}

// ApplyDiet closes every exchange reaction, then opens the exchanges named in
// the table at the table's bounds. Table rows with no matching reaction are
// skipped: reconstructions differ in which exchanges they carry.
func (m *Model) ApplyDiet(t diet.Table) {
	for i := range m.Reactions {
		if strings.HasPrefix(m.Reactions[i].ID, exchangePrefix) {
			m.Reactions[i].LowerBound = 0
		}
	}
	idx := make(map[string]int, len(m.Reactions))
	for i := range m.Reactions {
		idx[m.Reactions[i].ID] = i
	}
	for _, c := range t {
		i, ok := idx[c.ID]
		if !ok {
			continue
		}
		m.Reactions[i].LowerBound = c.Lower
		if c.HasUpper {
			m.Reactions[i].UpperBound = c.Upper
		}
	}
}

// BiomassIndex locates the reaction whose identifier starts with the biomass
// prefix (case-insensitive). Exactly one is expected.
func (m *Model) BiomassIndex() (int, error) {
	found := -1
	for i := range m.Reactions {
		if strings.HasPrefix(strings.ToLower(m.Reactions[i].ID), biomassPrefix) {
			if found >= 0 {
				return 0, fmt.Errorf("model %s: multiple biomass reactions (%s, %s)", m.path, m.Reactions[found].ID, m.Reactions[i].ID)
			}
			found = i
		}
	}
	if found < 0 {
		return 0, fmt.Errorf("model %s: no biomass reaction", m.path)
	}
	return found, nil
}

// Grow maximizes biomass flux under the model's current bounds and returns
// the optimal objective value. An infeasible model grows at 0.
func (m *Model) Grow() (float64, error) {
	obj, err := m.BiomassIndex()
	if err != nil {
		return 0, err
	}
	v, err := fba.Maximize(m.problem(), obj)
	if err != nil {
		return 0, fmt.Errorf("model %s: %w", m.path, err)
	}
	return v, nil
}

// problem flattens the model into the solver's input form.
func (m *Model) problem() fba.Problem {
	metIdx := make(map[string]int, len(m.Metabolites))
	for i, met := range m.Metabolites {
		metIdx[met.ID] = i
	}
	p := fba.Problem{
		Metabolites: len(m.Metabolites),
		Lower:       make([]float64, len(m.Reactions)),
		Upper:       make([]float64, len(m.Reactions)),
		Stoich:      make([]map[int]float64, len(m.Reactions)),
	}
	for j := range m.Reactions {
		r := &m.Reactions[j]
		p.Lower[j] = r.LowerBound
		p.Upper[j] = r.UpperBound
		col := make(map[int]float64, len(r.Metabolites))
		for met, coef := range r.Metabolites {
			if i, ok := metIdx[met]; ok {
				col[i] = coef
			}
		}
		p.Stoich[j] = col
	}
	return p
}
