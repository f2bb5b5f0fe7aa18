package service

import (
	"errors"
	"fmt"
)

// Sentinel error kinds surfaced to controllers; matched with errors.Is.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAlreadyAnswered  = errors.New("already answered")
	ErrNotFound         = errors.New("not found")
)

// Validation rule identifiers, one per structural rule that can fail.
const (
	RuleEmptyStem        = "empty_stem"
	RuleEmptyFirstChoice = "empty_first_choice"
	RuleChoiceGap        = "choice_gap"
	RuleTooFewChoices    = "too_few_choices"
	RuleBadAnswerType    = "bad_answer_type"
	RuleBadSurveyShape   = "bad_survey_shape"
)

// ValidationError reports exactly which structural rule a submitted
// edit violated. Nothing is persisted when one is returned.
type ValidationError struct {
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Rule, e.Detail)
}

func validationErr(rule, format string, args ...interface{}) error {
	return &ValidationError{Rule: rule, Detail: fmt.Sprintf(format, args...)}
}
