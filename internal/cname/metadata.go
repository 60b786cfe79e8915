package cname

import "strconv"

// Metadata keys consumed by FromMetadata. Lookups are exact and
// case-sensitive: front-matter keys are produced lower-cased by the
// metadata loader, and "CNAME" is not recognized as "cname".
const (
	metaKeyCNAME  = "cname"
	metaKeyTTL    = "ttl"
	metaKeyFormat = "format"
)

// FromMetadata builds and renders a CNAME record from loosely-typed
// content-file front matter. The "cname" key is required; a missing key
// is reported as ErrEmptyDomain, the same kind as an empty value. "ttl",
// when present, must parse as a base-10 unsigned 32-bit integer. "format"
// is passed through verbatim.
func FromMetadata(metadata map[string]string) (string, error) {
	domain, ok := metadata[metaKeyCNAME]
	if !ok {
		return "", &DomainError{Kind: ErrEmptyDomain, Detail: "missing cname metadata key"}
	}

	var ttl *uint32
	if raw, ok := metadata[metaKeyTTL]; ok {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return "", &DomainError{Kind: ErrInvalidTTL, Detail: raw}
		}
		seconds := uint32(parsed)
		ttl = &seconds
	}

	var format *string
	if raw, ok := metadata[metaKeyFormat]; ok {
		format = &raw
	}

	cfg, err := NewRecordConfig(domain, ttl, format)
	if err != nil {
		return "", err
	}
	return cfg.Generate(), nil
}
