package util

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// IsUUID reports whether s is a well-formed record identifier.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// ValidateAmount checks an expense amount (positive, bounded).
func ValidateAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("amount must be positive, got %f", amount)
	}
	if amount >= 10000000 {
		return fmt.Errorf("amount too large, got %f", amount)
	}
	return nil
}

// ValidatePurpose checks an expense purpose (3-200 chars after trimming).
func ValidatePurpose(purpose string) error {
	p := strings.TrimSpace(purpose)
	if len(p) < 3 {
		return fmt.Errorf("purpose must be at least 3 characters long")
	}
	if len(p) > 200 {
		return fmt.Errorf("purpose cannot be more than 200 characters")
	}
	return nil
}

// ValidateCategoryName checks a category name (unique-ness is the store's job).
func ValidateCategoryName(name string) error {
	n := strings.TrimSpace(name)
	if len(n) < 2 {
		return fmt.Errorf("category name must be at least 2 characters long")
	}
	if len(n) > 64 {
		return fmt.Errorf("category name too long, max 64 characters")
	}
	return nil
}
