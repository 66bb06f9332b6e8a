// Package draw validates draw requests and samples winning numbers.
//
// A draw picks WinnersCount distinct integers uniformly at random from the
// inclusive range [Start, End]. Validation and sampling are pure functions:
// callers validate raw input with Validate, then hand the typed Request to
// Sample or Draw together with a random Source.
package draw

import (
	"fmt"
	"strconv"
	"strings"
)

// Field identifies the input field a validation failure refers to.
type Field string

const (
	FieldStart        Field = "start"
	FieldEnd          Field = "end"
	FieldWinnersCount Field = "winnersCount"
)

// Rule identifies which validation rule was violated.
type Rule string

const (
	// RuleInteger rejects empty or non-integer text.
	RuleInteger Rule = "integer"
	// RuleMinimum rejects values below 1.
	RuleMinimum Rule = "minimum"
	// RuleGreater rejects an end that is not strictly greater than start.
	RuleGreater Rule = "greater"
	// RuleExceeds rejects more winners than numbers in the range.
	RuleExceeds Rule = "exceeds"
	// RuleRangeTooLarge rejects ranges above the configured limit.
	RuleRangeTooLarge Rule = "range_too_large"
)

// Input is the raw, untyped form input for one draw.
type Input struct {
	Start        string
	End          string
	WinnersCount string
}

// Request is a validated draw request.
type Request struct {
	Start        int `json:"start"`
	End          int `json:"end"`
	WinnersCount int `json:"winnersCount"`
}

// Size returns the count of integers in [Start, End].
func (r Request) Size() int {
	return r.End - r.Start + 1
}

// CeilingRange is the largest range Sample will hold in memory, whatever the
// configured limits say.
const CeilingRange = 10_000_000

// Limits bounds requests beyond the base rules. The zero value only applies
// CeilingRange.
type Limits struct {
	// MaxRange caps the count of integers in the range. Zero or values above
	// CeilingRange mean CeilingRange.
	MaxRange int
}

// RangeCap returns the effective range size limit.
func (l Limits) RangeCap() int {
	if l.MaxRange <= 0 || l.MaxRange > CeilingRange {
		return CeilingRange
	}
	return l.MaxRange
}

// ValidationError reports the first violated rule for a draw request.
type ValidationError struct {
	Field   Field
	Rule    Rule
	Key     string
	Message string
}

// Error renders the field and message.
func (e *ValidationError) Error() string {
	return string(e.Field) + ": " + e.Message
}

func newValidationError(field Field, rule Rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Rule:    rule,
		Key:     MessageKey(field, rule),
		Message: message,
	}
}

// MessageKey returns the localization key for a field/rule pair.
func MessageKey(field Field, rule Rule) string {
	return "draw.error." + string(field) + "." + string(rule)
}

var fieldLabels = map[Field]string{
	FieldStart:        "start",
	FieldEnd:          "end",
	FieldWinnersCount: "winners count",
}

// Validate parses raw input and applies the draw rules in precedence order.
// Only the first violation is reported.
func Validate(input Input, limits Limits) (Request, error) {
	start, err := parsePositive(FieldStart, input.Start)
	if err != nil {
		return Request{}, err
	}
	end, err := parsePositive(FieldEnd, input.End)
	if err != nil {
		return Request{}, err
	}
	count, err := parsePositive(FieldWinnersCount, input.WinnersCount)
	if err != nil {
		return Request{}, err
	}
	req := Request{Start: start, End: end, WinnersCount: count}
	if err := checkRelations(req, limits); err != nil {
		return Request{}, err
	}
	return req, nil
}

// ValidateRequest applies the draw rules to an already typed request.
func ValidateRequest(req Request, limits Limits) error {
	if err := checkMinimum(FieldStart, req.Start); err != nil {
		return err
	}
	if err := checkMinimum(FieldEnd, req.End); err != nil {
		return err
	}
	if err := checkMinimum(FieldWinnersCount, req.WinnersCount); err != nil {
		return err
	}
	return checkRelations(req, limits)
}

func parsePositive(field Field, raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, newValidationError(field, RuleInteger, fieldLabels[field]+" must be a whole number")
	}
	if err := checkMinimum(field, value); err != nil {
		return 0, err
	}
	return value, nil
}

func checkMinimum(field Field, value int) error {
	if value < 1 {
		return newValidationError(field, RuleMinimum, fieldLabels[field]+" must be at least 1")
	}
	return nil
}

func checkRelations(req Request, limits Limits) error {
	if req.End <= req.Start {
		return newValidationError(FieldEnd, RuleGreater, "end must be greater than start")
	}
	if req.WinnersCount > req.Size() {
		return newValidationError(FieldWinnersCount, RuleExceeds, "winners count cannot exceed available numbers")
	}
	if limit := limits.RangeCap(); req.Size() > limit {
		return newValidationError(FieldEnd, RuleRangeTooLarge, fmt.Sprintf("range cannot exceed %d numbers", limit))
	}
	return nil
}
