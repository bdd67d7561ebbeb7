// Package quest models the active quest and its objectives.
package quest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Objective is one step of a quest.
type Objective struct {
	Description string `yaml:"description"`
	Completed   bool   `yaml:"completed"`
}

// Quest is an ordered list of objectives.
type Quest struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Objectives  []Objective `yaml:"objectives"`
}

// Progress returns completed/total objectives, or 0 when q is nil or has no
// objectives.
//
// Postcondition: 0 <= result <= 1.
func (q *Quest) Progress() float64 {
	if q == nil || len(q.Objectives) == 0 {
		return 0
	}
	done := 0
	for _, o := range q.Objectives {
		if o.Completed {
			done++
		}
	}
	return float64(done) / float64(len(q.Objectives))
}

// IsComplete reports whether every objective is done. A quest with no
// objectives is never complete.
func (q *Quest) IsComplete() bool {
	return q.Progress() >= 1.0
}

// Complete marks the objective at index i done.
//
// Postcondition: Returns an error if i is out of range.
func (q *Quest) Complete(i int) error {
	if i < 0 || i >= len(q.Objectives) {
		return fmt.Errorf("quest %q: objective %d out of range [1, %d]", q.ID, i+1, len(q.Objectives))
	}
	q.Objectives[i].Completed = true
	return nil
}

// Clone returns a deep copy so sessions never share objective slices.
func (q *Quest) Clone() *Quest {
	if q == nil {
		return nil
	}
	cp := *q
	cp.Objectives = append([]Objective(nil), q.Objectives...)
	return &cp
}

// LoadFromBytes parses a quest from YAML.
//
// Postcondition: Returns a quest with a non-empty ID and Title, or an error.
func LoadFromBytes(data []byte) (*Quest, error) {
	var q Quest
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("parsing quest YAML: %w", err)
	}
	if q.ID == "" || q.Title == "" {
		return nil, fmt.Errorf("quest: id and title must not be empty")
	}
	return &q, nil
}

// Default returns the starter quest used when no quest file is configured.
func Default() *Quest {
	return &Quest{
		ID:          "lost_lantern",
		Title:       "The Lost Lantern",
		Description: "The lighthouse keeper's lantern was stolen and the harbour lies dark.",
		Objectives: []Objective{
			{Description: "Question the keeper about the theft"},
			{Description: "Track the thieves to the sea caves"},
			{Description: "Recover the lantern"},
			{Description: "Relight the lighthouse"},
		},
	}
}
