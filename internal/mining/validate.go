package mining

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the "coin" tag, which requires a catalog id, to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("coin", func(fl validator.FieldLevel) bool {
		return HasCoin(fl.Field().String())
	})
}

// NewValidator returns a validator that understands the tags used on
// OperatingParameters.
func NewValidator() *validator.Validate {
	v := validator.New()
	if err := RegisterValidations(v); err != nil {
		panic(fmt.Sprintf("register mining validations: %v", err))
	}
	return v
}

// ValidateStrict checks every field against its domain without clamping.
// A missing or unknown coin is reported as ErrUnknownCoin so callers can map
// it the same way as engine lookups.
func ValidateStrict(v *validator.Validate, p OperatingParameters) error {
	if !HasCoin(p.CoinID) {
		return fmt.Errorf("%w: %q", ErrUnknownCoin, p.CoinID)
	}
	err := v.Struct(p)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate parameters: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return &DomainError{Fields: msgs}
}

// DomainError lists parameters outside their documented domain.
type DomainError struct {
	Fields []string
}

func (e *DomainError) Error() string {
	return "parameters out of domain: " + strings.Join(e.Fields, "; ")
}
