// Package cname generates RFC 1035 compliant DNS CNAME records from
// validated domain configurations. Validation happens exactly once, in
// NewRecordConfig; every operation downstream of a RecordConfig is a pure
// function that cannot fail on domain or TTL grounds.
package cname

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// maxDomainLength is the RFC 1035 limit on a full domain name.
const maxDomainLength = 255

// maxLabelLength is the RFC 1035 limit on a single label.
const maxLabelLength = 63

// asciiProfile converts internationalized domains to their Punycode form.
// The lookup mapping performs Unicode normalization, so precomposed and
// combining-character spellings of the same name converge on identical
// ASCII output. STD3 and hyphen checks are disabled here: the character
// and hyphen rules below run on the converted form so that they report
// the offending label instead of an opaque conversion failure.
var asciiProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.CheckHyphens(false),
)

// ValidateDomain normalizes an internationalized domain to its ASCII form
// and validates it against DNS syntax rules. It returns the ASCII domain
// or a *DomainError for the first rule the input fails.
//
// Surrounding whitespace is rejected, not trimmed: " example.com " and
// "example.com" are different inputs and only the latter is valid.
func ValidateDomain(raw string) (string, error) {
	if strings.TrimSpace(raw) != raw {
		return "", &DomainError{Kind: ErrInvalidCharacters, Detail: "domain contains leading or trailing whitespace"}
	}
	if raw == "" {
		return "", &DomainError{Kind: ErrEmptyDomain}
	}

	// Punycode encodes any label containing a non-ASCII rune wholesale,
	// which would smuggle control characters and exotic whitespace past
	// the ASCII gates below. Reject them, and undecodable bytes, before
	// conversion.
	if !utf8.ValidString(raw) {
		return "", &DomainError{Kind: ErrInvalidCharacters, Detail: "domain is not valid UTF-8"}
	}
	for _, r := range raw {
		if unicode.IsControl(r) || (r >= utf8.RuneSelf && unicode.IsSpace(r)) {
			return "", &DomainError{Kind: ErrInvalidCharacters, Detail: raw}
		}
	}

	ascii, err := asciiProfile.ToASCII(raw)
	if err != nil {
		return "", &DomainError{Kind: ErrInvalidCharacters, Detail: raw}
	}

	if err := checkASCIIDomain(ascii); err != nil {
		return "", err
	}
	return ascii, nil
}

// checkASCIIDomain applies the RFC 1035 syntax rules to an already
// ASCII-converted domain name.
func checkASCIIDomain(domain string) error {
	if len(domain) > maxDomainLength {
		return &DomainError{Kind: ErrExcessiveDomainLength, Detail: domain}
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return &DomainError{Kind: ErrMalformedDomain, Detail: "domain must have at least two labels (e.g. example.com)"}
	}

	for _, label := range labels {
		if label == "" {
			return &DomainError{Kind: ErrMalformedDomain, Detail: "empty label in domain name"}
		}
		if len(label) > maxLabelLength {
			return &DomainError{Kind: ErrLabelTooLong, Detail: label}
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return &DomainError{Kind: ErrInvalidHyphenUsage, Detail: label}
		}
		for _, c := range label {
			if !isDomainChar(c) {
				return &DomainError{Kind: ErrInvalidCharacters, Detail: label}
			}
		}
	}
	return nil
}

func isDomainChar(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-'
}
