// SPDX-License-Identifier: Apache-2.0

package gift

import (
	"strings"
)

// Role is the meaning a sheet column carries for a question.
type Role int

const (
	RoleID Role = iota
	RoleStatement
	RoleCorrect
)

func (r Role) String() string {
	switch r {
	case RoleID:
		return "id"
	case RoleStatement:
		return "statement"
	case RoleCorrect:
		return "correct_answer"
	}
	return "unknown"
}

// roleRule maps normalized header names to a role.
type roleRule struct {
	names []string
	role  Role
}

// roleRules are evaluated in order; a header fills at most one role.
var roleRules = []roleRule{
	{names: []string{"id"}, role: RoleID},
	{names: []string{"enunciado", "pregunta", "question"}, role: RoleStatement},
	{names: []string{"correcta", "respuesta", "correct", "answer"}, role: RoleCorrect},
}

// Headers looked up when no column matched a role.
const (
	fallbackID        = "id"
	fallbackStatement = "enunciado"
	fallbackCorrect   = "correcta"
)

// ColumnMap is the resolved header for each role plus the ordered
// distractor columns. Rows are only ever read through a ColumnMap.
type ColumnMap struct {
	ID          string
	Statement   string
	Correct     string
	Distractors []string
}

// ResolveColumns maps sheet headers to roles in a single pass. When several
// headers fit the same role the last one in column order wins.
func ResolveColumns(headers []string) ColumnMap {
	cm := ColumnMap{
		ID:        fallbackID,
		Statement: fallbackStatement,
		Correct:   fallbackCorrect,
	}
	for _, h := range headers {
		norm := normalizeHeader(h)
		if role, ok := matchRole(norm); ok {
			cm.set(role, h)
		}
		if isDistractorHeader(norm) {
			cm.Distractors = append(cm.Distractors, h)
		}
	}
	return cm
}

// Header returns the column resolved for role.
func (cm ColumnMap) Header(role Role) string {
	switch role {
	case RoleID:
		return cm.ID
	case RoleStatement:
		return cm.Statement
	case RoleCorrect:
		return cm.Correct
	}
	return ""
}

// OptionCount is the number of answer options each question offers:
// one correct answer plus one per distractor column.
func (cm ColumnMap) OptionCount() int {
	return len(cm.Distractors) + 1
}

func (cm *ColumnMap) set(role Role, header string) {
	switch role {
	case RoleID:
		cm.ID = header
	case RoleStatement:
		cm.Statement = header
	case RoleCorrect:
		cm.Correct = header
	}
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func matchRole(norm string) (Role, bool) {
	for _, rule := range roleRules {
		for _, name := range rule.names {
			if norm == name {
				return rule.role, true
			}
		}
	}
	return 0, false
}

// isDistractorHeader reports whether norm contains "distractor" or is "d"
// followed by one or more ASCII digits, e.g. "d1" or "d23".
func isDistractorHeader(norm string) bool {
	if strings.Contains(norm, "distractor") {
		return true
	}
	if len(norm) < 2 || norm[0] != 'd' {
		return false
	}
	for _, c := range norm[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
