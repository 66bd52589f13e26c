package repository

import "errors"

// Common repository errors
var (
	// ErrPolicyNotFound is returned when an access policy is not found
	ErrPolicyNotFound = errors.New("access policy not found")

	// ErrRuleNotFound is returned when an access rule is not found
	ErrRuleNotFound = errors.New("access rule not found")

	// ErrSystemPolicyImmutable is returned on attempts to modify or
	// delete a policy seeded by the system bootstrap
	ErrSystemPolicyImmutable = errors.New("system policy is immutable")

	// ErrRuleResourceTypeMismatch is returned when a rule's resource type
	// does not match the resource type of its policy
	ErrRuleResourceTypeMismatch = errors.New("rule resource type does not match policy resource type")
)
