package cname

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which validation rule rejected the input.
type ErrorKind int

const (
	// ErrEmptyDomain indicates an empty or missing domain name.
	ErrEmptyDomain ErrorKind = iota
	// ErrInvalidCharacters indicates characters outside the DNS character set.
	ErrInvalidCharacters
	// ErrLabelTooLong indicates a label longer than 63 characters.
	ErrLabelTooLong
	// ErrMalformedDomain indicates a structurally invalid domain name.
	ErrMalformedDomain
	// ErrInvalidHyphenUsage indicates a label starting or ending with a hyphen.
	ErrInvalidHyphenUsage
	// ErrInvalidTTL indicates a TTL that is zero or not a valid unsigned integer.
	ErrInvalidTTL
	// ErrExcessiveDomainLength indicates a domain longer than 255 characters.
	ErrExcessiveDomainLength
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrEmptyDomain:
		return "empty_domain"
	case ErrInvalidCharacters:
		return "invalid_characters"
	case ErrLabelTooLong:
		return "label_too_long"
	case ErrMalformedDomain:
		return "malformed_domain"
	case ErrInvalidHyphenUsage:
		return "invalid_hyphen_usage"
	case ErrInvalidTTL:
		return "invalid_ttl"
	case ErrExcessiveDomainLength:
		return "excessive_domain_length"
	default:
		return "unknown"
	}
}

// DomainError is a validation failure produced while constructing a
// RecordConfig. Exactly one error is reported per input: the first
// validation rule the input fails. Detail carries the offending label,
// value or a short description, depending on the kind.
type DomainError struct {
	Kind   ErrorKind
	Detail string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	switch e.Kind {
	case ErrEmptyDomain:
		return "domain name cannot be empty"
	case ErrInvalidCharacters:
		return fmt.Sprintf("domain contains invalid characters: %s", e.Detail)
	case ErrLabelTooLong:
		return fmt.Sprintf("domain label exceeds maximum length of 63 characters: %s", e.Detail)
	case ErrMalformedDomain:
		return fmt.Sprintf("invalid domain format: %s", e.Detail)
	case ErrInvalidHyphenUsage:
		return fmt.Sprintf("domain labels cannot start or end with hyphens: %s", e.Detail)
	case ErrInvalidTTL:
		return fmt.Sprintf("invalid TTL value: %s", e.Detail)
	case ErrExcessiveDomainLength:
		return fmt.Sprintf("total domain length exceeds 255 characters: %s", e.Detail)
	default:
		return fmt.Sprintf("domain error: %s", e.Detail)
	}
}

// IsKind reports whether err is (or wraps) a *DomainError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Kind == kind
}
