package domain

import (
	"fmt"
	"strings"
)

// MaritalStatus is the PTKP marital status code printed on the withholding slip
type MaritalStatus string

const (
	StatusSingle    MaritalStatus = "TK" // tidak kawin
	StatusMarried   MaritalStatus = "K"  // kawin
	StatusSeparated MaritalStatus = "HB" // hidup berpisah, treated as TK
)

// MaxDependents is the statutory cap on dependents counted for PTKP and TER
const MaxDependents = 3

// ParseMaritalStatus accepts the status code in any case
func ParseMaritalStatus(s string) (MaritalStatus, error) {
	switch MaritalStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusSingle:
		return StatusSingle, nil
	case StatusMarried:
		return StatusMarried, nil
	case StatusSeparated:
		return StatusSeparated, nil
	default:
		return "", fmt.Errorf("unknown marital status %q (want TK, K or HB)", s)
	}
}

// IsMarried reports whether the married PTKP addition applies
func (m MaritalStatus) IsMarried() bool {
	return m == StatusMarried
}

// Category is the TER table bucket
type Category string

const (
	CategoryA Category = "A"
	CategoryB Category = "B"
	CategoryC Category = "C"
)

// Categories lists every TER category in table order
var Categories = []Category{CategoryA, CategoryB, CategoryC}

// ParseCategory accepts "a", "B", "ter-c" and similar spellings
func ParseCategory(s string) (Category, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "TER-")
	v = strings.TrimSpace(strings.TrimPrefix(v, "TER"))
	switch Category(v) {
	case CategoryA, CategoryB, CategoryC:
		return Category(v), nil
	default:
		return "", fmt.Errorf("unknown TER category %q (want A, B or C)", s)
	}
}

// Taxpayer holds the personal facts that drive PTKP and the TER category
type Taxpayer struct {
	Name          string        `yaml:"name" json:"name"`
	MaritalStatus MaritalStatus `yaml:"marital_status" json:"marital_status"`
	Dependents    int           `yaml:"dependents" json:"dependents"`
	HasNPWP       bool          `yaml:"has_npwp" json:"has_npwp"`
}

// CountedDependents clamps the dependent count into [0, MaxDependents]
func (t Taxpayer) CountedDependents() int {
	switch {
	case t.Dependents < 0:
		return 0
	case t.Dependents > MaxDependents:
		return MaxDependents
	default:
		return t.Dependents
	}
}

// StatusCode renders the PTKP code printed on the slip, e.g. "K/2".
// HB keeps its own code even though it is computed as TK.
func (t Taxpayer) StatusCode() string {
	status := t.MaritalStatus
	if status == "" {
		status = StatusSingle
	}
	return fmt.Sprintf("%s/%d", status, t.CountedDependents())
}

// Category derives the TER category from marital status and dependents.
// It is always recomputed from the two inputs.
func (t Taxpayer) Category() Category {
	deps := t.CountedDependents()
	if t.MaritalStatus.IsMarried() {
		switch deps {
		case 0:
			return CategoryA
		case 1, 2:
			return CategoryB
		default:
			return CategoryC
		}
	}
	if deps <= 1 {
		return CategoryA
	}
	return CategoryB
}
