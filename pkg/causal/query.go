package causal

import "strings"

// Query answers structural questions about an ontology. It indexes variables
// by id and builds an adjacency list once at construction time; the
// underlying ontology must not change while a Query is in use.
type Query struct {
	ontology  *Ontology
	variables map[string]Variable
	adjacency map[string][]CausalPath
}

// NewQuery builds the lookup indexes for an ontology.
func NewQuery(ontology *Ontology) *Query {
	variables := make(map[string]Variable, len(ontology.Variables))
	for _, v := range ontology.Variables {
		variables[v.ID] = v
	}

	adjacency := make(map[string][]CausalPath)
	for _, path := range ontology.CausalPaths {
		adjacency[path.Source] = append(adjacency[path.Source], path)
	}

	return &Query{
		ontology:  ontology,
		variables: variables,
		adjacency: adjacency,
	}
}

// Variable returns the variable definition for id.
func (q *Query) Variable(id string) (Variable, bool) {
	v, ok := q.variables[id]
	return v, ok
}

// Variables returns every variable of the given category.
func (q *Query) Variables(category string) []Variable {
	var result []Variable
	for _, v := range q.ontology.Variables {
		if v.Category == category {
			result = append(result, v)
		}
	}
	return result
}

// DirectPath returns the direct causal path from source to target, if one
// exists. The first matching path wins.
func (q *Query) DirectPath(source, target string) (CausalPath, bool) {
	for _, path := range q.ontology.CausalPaths {
		if path.Source == source && path.Target == target {
			return path, true
		}
	}
	return CausalPath{}, false
}

// PathsFrom returns all paths whose source is id.
func (q *Query) PathsFrom(id string) []CausalPath {
	return q.adjacency[id]
}

// PathsTo returns all paths whose target is id.
func (q *Query) PathsTo(id string) []CausalPath {
	var result []CausalPath
	for _, path := range q.ontology.CausalPaths {
		if path.Target == id {
			result = append(result, path)
		}
	}
	return result
}

type searchState struct {
	node    string
	path    []CausalPath
	visited map[string]struct{}
}

// AllPaths returns every acyclic causal chain from source to target with at
// most maxDepth hops, found by breadth-first search over the adjacency list.
func (q *Query) AllPaths(source, target string, maxDepth int) [][]CausalPath {
	var found [][]CausalPath

	queue := []searchState{{
		node:    source,
		visited: map[string]struct{}{source: {}},
	}}

	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]

		if state.node == target && len(state.path) > 0 {
			found = append(found, state.path)
			continue
		}
		if len(state.path) >= maxDepth {
			continue
		}

		for _, edge := range q.adjacency[state.node] {
			if _, seen := state.visited[edge.Target]; seen {
				continue
			}

			path := make([]CausalPath, len(state.path), len(state.path)+1)
			copy(path, state.path)
			path = append(path, edge)

			visited := make(map[string]struct{}, len(state.visited)+1)
			for k := range state.visited {
				visited[k] = struct{}{}
			}
			visited[edge.Target] = struct{}{}

			queue = append(queue, searchState{node: edge.Target, path: path, visited: visited})
		}
	}

	return found
}

// MediationPath is a two-hop chain source → mediator → target.
type MediationPath struct {
	Source      string     `json:"source"`
	Mediator    string     `json:"mediator"`
	Target      string     `json:"target"`
	First       CausalPath `json:"first"`
	Second      CausalPath `json:"second"`
	MediatorVar Variable   `json:"mediator_var"`
}

// MediationPaths returns every A → M → B chain between source and target.
func (q *Query) MediationPaths(source, target string) []MediationPath {
	var result []MediationPath
	for _, chain := range q.AllPaths(source, target, 2) {
		if len(chain) != 2 {
			continue
		}
		mediator := chain[0].Target
		result = append(result, MediationPath{
			Source:      source,
			Mediator:    mediator,
			Target:      target,
			First:       chain[0],
			Second:      chain[1],
			MediatorVar: q.variables[mediator],
		})
	}
	return result
}

// SearchVariables returns variables whose label or definition contains the
// keyword, case-insensitively.
func (q *Query) SearchVariables(keyword string) []Variable {
	keyword = strings.ToLower(keyword)
	var result []Variable
	for _, v := range q.ontology.Variables {
		if strings.Contains(strings.ToLower(v.Label), keyword) ||
			strings.Contains(strings.ToLower(v.Definition), keyword) {
			result = append(result, v)
		}
	}
	return result
}

// Statistics summarizes the ontology: totals plus per-category and
// per-effect-type tallies.
type Statistics struct {
	TotalVariables int            `json:"total_variables"`
	TotalPaths     int            `json:"total_paths"`
	ValidatedPaths int            `json:"validated_paths"`
	Categories     map[string]int `json:"variable_categories"`
	EffectTypes    map[string]int `json:"effect_types"`
}

// Statistics computes summary counts over the ontology.
func (q *Query) Statistics() Statistics {
	stats := Statistics{
		TotalVariables: len(q.ontology.Variables),
		TotalPaths:     len(q.ontology.CausalPaths),
		Categories:     make(map[string]int),
		EffectTypes:    make(map[string]int),
	}

	for _, v := range q.ontology.Variables {
		stats.Categories[v.Category]++
	}
	for _, path := range q.ontology.CausalPaths {
		stats.EffectTypes[path.EffectType]++
		if path.Evidence.Validated {
			stats.ValidatedPaths++
		}
	}

	return stats
}
