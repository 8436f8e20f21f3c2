package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxAdditionalFrameworks = 25
	MaxIDLength             = 64
)

func init() {
	validate = validator.New()
}

// CrosswalkRequest represents a crosswalk explorer query.
type CrosswalkRequest struct {
	PrimaryFrameworkID     string   `json:"primaryFrameworkId" validate:"required,max=64"`
	ComparisonFrameworkID  string   `json:"comparisonFrameworkId" validate:"omitempty,max=64"`
	AdditionalFrameworkIDs []string `json:"additionalFrameworkIds" validate:"omitempty,max=25,dive,required,max=64"`

	ShowAllControls               bool `json:"showAllControls"`
	IncludeOrganizationalControls bool `json:"includeOrganizationalControls"`
}

// ValidateCrosswalkRequest validates a crosswalk query request.
func ValidateCrosswalkRequest(req *CrosswalkRequest) error {
	if req == nil {
		return errors.New("crosswalk request cannot be nil")
	}

	// Validate using struct tags
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	// Overlaying a framework on itself is a client bug, not a resolvable
	// query.
	if req.ComparisonFrameworkID != "" && req.ComparisonFrameworkID == req.PrimaryFrameworkID {
		return errors.New("comparisonFrameworkId: must differ from primaryFrameworkId")
	}

	seen := make(map[string]bool, len(req.AdditionalFrameworkIDs))
	for _, id := range req.AdditionalFrameworkIDs {
		if id == req.PrimaryFrameworkID {
			return errors.New("additionalFrameworkIds: must not include primaryFrameworkId")
		}
		if seen[id] {
			return fmt.Errorf("additionalFrameworkIds: duplicate framework %s", id)
		}
		seen[id] = true
	}

	return nil
}

// formatValidationError converts validator errors into user-facing
// messages without leaking struct internals.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: required", fe.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s: exceeds maximum of %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
