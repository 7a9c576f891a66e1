package models

import (
	"fmt"
	"strings"
)

// Condition is the grading of a physical copy.
type Condition string

const (
	ConditionMint     Condition = "mint"
	ConditionNearMint Condition = "near-mint"
	ConditionVeryFine Condition = "very-fine"
	ConditionFine     Condition = "fine"
	ConditionVeryGood Condition = "very-good"
	ConditionGood     Condition = "good"
	ConditionFair     Condition = "fair"
	ConditionPoor     Condition = "poor"
)

// Conditions lists every grade from best to worst.
var Conditions = []Condition{
	ConditionMint,
	ConditionNearMint,
	ConditionVeryFine,
	ConditionFine,
	ConditionVeryGood,
	ConditionGood,
	ConditionFair,
	ConditionPoor,
}

func (c Condition) Valid() bool {
	switch c {
	case ConditionMint, ConditionNearMint, ConditionVeryFine, ConditionFine,
		ConditionVeryGood, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// ParseCondition matches raw case-insensitively after trimming.
func ParseCondition(raw string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown condition %q", raw)
	}
	return c, nil
}

// ConditionNames returns the enum values joined for error messages.
func ConditionNames() string {
	names := make([]string, 0, len(Conditions))
	for _, c := range Conditions {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
