package textdata

import (
	"fmt"
	"strings"
)

// LicenseType classifies an entry in a license catalog.
type LicenseType int

const (
	// Original is the canonical text of a license.
	Original LicenseType = iota
	// Header is a short notice meant for source file headers. A license may
	// have several.
	Header
	// Alternate is another format of the same license text, not a variant
	// with different meaning.
	Alternate
)

var licenseTypeLabels = map[LicenseType]string{
	Original:  "original text",
	Header:    "license header",
	Alternate: "alternate text",
}

var licenseTypeKeys = map[LicenseType]string{
	Original:  "original",
	Header:    "header",
	Alternate: "alternate",
}

// String returns the human readable label.
func (t LicenseType) String() string {
	if label, ok := licenseTypeLabels[t]; ok {
		return label
	}
	return fmt.Sprintf("LicenseType(%d)", int(t))
}

// Key returns the short identifier used in storage and JSON output.
func (t LicenseType) Key() string {
	if key, ok := licenseTypeKeys[t]; ok {
		return key
	}
	return ""
}

// ParseLicenseType accepts either the short key or the label.
func ParseLicenseType(value string) (LicenseType, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for t, key := range licenseTypeKeys {
		if normalized == key || normalized == licenseTypeLabels[t] {
			return t, nil
		}
	}
	return Original, fmt.Errorf("unknown license type %q", value)
}

// MarshalText implements encoding.TextMarshaler.
func (t LicenseType) MarshalText() ([]byte, error) {
	key := t.Key()
	if key == "" {
		return nil, fmt.Errorf("unknown license type %d", int(t))
	}
	return []byte(key), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *LicenseType) UnmarshalText(data []byte) error {
	parsed, err := ParseLicenseType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
