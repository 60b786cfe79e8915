package cname

import (
	"strconv"
	"strings"
)

// DefaultTTL is the TTL, in seconds, applied when none is supplied.
const DefaultTTL uint32 = 3600

// Placeholders recognized in custom record formats. Substitution is a
// literal, case-sensitive substring replacement with no escape mechanism.
const (
	placeholderDomain = "{domain}"
	placeholderTTL    = "{ttl}"
)

// RecordConfig is a validated, immutable CNAME record configuration.
// The zero value is not usable; NewRecordConfig is the only constructor
// and the single validation gate of the package. RecordConfig is a plain
// value type: it is comparable with == and copying it is cloning it.
type RecordConfig struct {
	domain    string
	ttl       uint32
	format    string
	hasFormat bool
}

// NewRecordConfig validates domain and ttl and returns an immutable
// configuration. The domain goes through IDN normalization and RFC 1035
// validation (see ValidateDomain). A nil ttl selects DefaultTTL; a zero
// ttl is rejected with ErrInvalidTTL. format, if non-nil, is stored
// verbatim with no validation: an empty format is legal and produces an
// empty record.
func NewRecordConfig(domain string, ttl *uint32, format *string) (RecordConfig, error) {
	ascii, err := ValidateDomain(domain)
	if err != nil {
		return RecordConfig{}, err
	}

	seconds := DefaultTTL
	if ttl != nil {
		seconds = *ttl
	}
	if seconds == 0 {
		return RecordConfig{}, &DomainError{Kind: ErrInvalidTTL, Detail: "TTL must be greater than 0"}
	}

	cfg := RecordConfig{domain: ascii, ttl: seconds}
	if format != nil {
		cfg.format = *format
		cfg.hasFormat = true
	}
	return cfg, nil
}

// Domain returns the validated ASCII (Punycode) form of the domain.
func (c RecordConfig) Domain() string { return c.domain }

// TTL returns the record TTL in seconds.
func (c RecordConfig) TTL() uint32 { return c.ttl }

// Format returns the custom record format and whether one was supplied.
func (c RecordConfig) Format() (string, bool) { return c.format, c.hasFormat }

// Clone returns a copy of the configuration.
func (c RecordConfig) Clone() RecordConfig { return c }

// Generate renders the CNAME record for the configuration. With no custom
// format the output is "<domain> <ttl> IN CNAME www.<domain>", with no
// trailing newline. With a custom format, every occurrence of {domain}
// and {ttl} in the format text is replaced literally; no other
// placeholders are recognized.
func (c RecordConfig) Generate() string {
	ttl := strconv.FormatUint(uint64(c.ttl), 10)
	if c.hasFormat {
		record := strings.ReplaceAll(c.format, placeholderDomain, c.domain)
		return strings.ReplaceAll(record, placeholderTTL, ttl)
	}
	return c.domain + " " + ttl + " IN CNAME www." + c.domain
}
