package core

import "fmt"

// Violation is a single field constraint failure.
type Violation struct {
	Field   string
	Message string
}

// Violations collects constraint failures in rule-declaration order.
type Violations []Violation

func (v Violations) IsEmpty() bool {
	return len(v) == 0
}

// Details groups the messages by field name, preserving per-field order.
// It returns nil when there are no violations.
func (v Violations) Details() map[string][]string {
	if len(v) == 0 {
		return nil
	}
	details := make(map[string][]string, len(v))
	for _, violation := range v {
		details[violation.Field] = append(details[violation.Field], violation.Message)
	}
	return details
}

// must builds the shared `"<field>" must <constraint>` message.
func must(field, constraint string) Violation {
	return Violation{Field: field, Message: fmt.Sprintf("%q must %s", field, constraint)}
}
