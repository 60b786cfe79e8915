package generators

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Robots renders a robots.txt that allows all crawlers and points them
// at the sitemap under baseURL.
func Robots(baseURL string) string {
	base := strings.TrimSuffix(baseURL, "/")
	return fmt.Sprintf("User-agent: *\nSitemap: %s/sitemap.xml\n", base)
}

// SecurityConfig holds the fields of an RFC 9116 security.txt file.
// Contact and Expires are mandatory; a config missing either renders
// as an empty document.
type SecurityConfig struct {
	Contact            []string
	Expires            string
	Acknowledgments    string
	PreferredLanguages string
	Canonical          string
	Policy             string
	Hiring             string
	Encryption         string
}

// FromMetadata reads security fields from front matter. Multiple
// contacts are comma separated in the security_contact value.
func SecurityFromMetadata(meta map[string]string) SecurityConfig {
	var contacts []string
	for _, c := range strings.Split(meta["security_contact"], ",") {
		if c = strings.TrimSpace(c); c != "" {
			contacts = append(contacts, c)
		}
	}
	return SecurityConfig{
		Contact:            contacts,
		Expires:            strings.TrimSpace(meta["security_expires"]),
		Acknowledgments:    strings.TrimSpace(meta["security_acknowledgments"]),
		PreferredLanguages: strings.TrimSpace(meta["security_languages"]),
		Canonical:          strings.TrimSpace(meta["security_canonical"]),
		Policy:             strings.TrimSpace(meta["security_policy"]),
		Hiring:             strings.TrimSpace(meta["security_hiring"]),
		Encryption:         strings.TrimSpace(meta["security_encryption"]),
	}
}

// Generate renders the security.txt content. A config without the
// mandatory Contact and Expires fields yields an empty string.
func (c SecurityConfig) Generate() string {
	if len(c.Contact) == 0 || c.Expires == "" {
		return ""
	}

	var sb strings.Builder
	for _, contact := range c.Contact {
		fmt.Fprintf(&sb, "Contact: %s\n", contact)
	}
	fmt.Fprintf(&sb, "Expires: %s\n", c.Expires)
	writeSecurityLine(&sb, "Acknowledgments", c.Acknowledgments)
	writeSecurityLine(&sb, "Preferred-Languages", c.PreferredLanguages)
	writeSecurityLine(&sb, "Canonical", c.Canonical)
	writeSecurityLine(&sb, "Policy", c.Policy)
	writeSecurityLine(&sb, "Hiring", c.Hiring)
	writeSecurityLine(&sb, "Encryption", c.Encryption)
	return sb.String()
}

func writeSecurityLine(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}

// ExportToFile writes the rendered security.txt to path.
func (c SecurityConfig) ExportToFile(path string) error {
	if err := os.WriteFile(path, []byte(c.Generate()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ExpiresFromNow formats an expiry timestamp d from now in the RFC 3339
// form security.txt expects.
func ExpiresFromNow(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}
