// Package validation provides input and catalog data validation for the
// pharmacy API.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/openrx/pharmacy-api/catalog"
)

// Pre-compiled regex patterns, compiled once at package initialization and
// reused for all validations
var (
	// Input validation: alphanumeric + safe punctuation
	inputRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-\.\+']+$`)

	// Medicine ids: alphanumeric with hyphens, no whitespace
	idRegex = regexp.MustCompile(`^[a-zA-Z0-9\-]+$`)

	// Dangerous patterns as strings (strings.Contains is 5-10x faster than
	// regex for simple substring matching)
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "eval(", "expression(", "url(", "@import",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"--", "/*", "*/", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
	}
)

// ValidateSearchTerm checks a user-supplied catalog search term.
func ValidateSearchTerm(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("search term cannot be empty")
	}

	if len(input) < 3 {
		return fmt.Errorf("search term too short: minimum 3 characters")
	}

	if len(input) > 50 {
		return fmt.Errorf("search term too long: maximum 50 characters")
	}

	// Word count limit prevents DoS with many short words
	if len(strings.Fields(input)) > 6 {
		return fmt.Errorf("search term too complex: maximum 6 words allowed")
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("search term contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("search term contains invalid characters. Only letters, numbers, spaces, hyphens, apostrophes, periods, and the plus sign are allowed")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("search term contains excessive character repetition")
	}

	return nil
}

// ValidateMedicineID checks a user-supplied medicine identifier.
func ValidateMedicineID(input string) error {
	if input == "" {
		return fmt.Errorf("medicine id cannot be empty")
	}

	if len(input) > 64 {
		return fmt.Errorf("medicine id too long: maximum 64 characters")
	}

	if !idRegex.MatchString(input) {
		return fmt.Errorf("medicine id contains invalid characters. Only letters, numbers, and hyphens are allowed")
	}

	return nil
}

// ValidateMedicine checks that a catalog entry is well formed.
func ValidateMedicine(m *catalog.Medicine) error {
	if m == nil {
		return fmt.Errorf("medicine is nil")
	}

	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("empty medicine id")
	}

	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("empty name for medicine %s", m.ID)
	}

	if len(m.Name) > 200 {
		return fmt.Errorf("name too long for medicine %s: %d characters", m.ID, len(m.Name))
	}

	if len(m.Category) > 50 {
		return fmt.Errorf("category too long for medicine %s: %d characters", m.ID, len(m.Category))
	}

	if m.Price < 0 {
		return fmt.Errorf("negative price for medicine %s: %f", m.ID, m.Price)
	}

	if m.Stock < 0 {
		return fmt.Errorf("negative stock for medicine %s: %d", m.ID, m.Stock)
	}

	return nil
}

// CatalogQualityReport summarizes data quality findings over a catalog.
type CatalogQualityReport struct {
	DuplicateIDs          []string
	InvalidCount          int
	InvalidIDs            []string // first 10
	MissingGenericName    int
	MissingGenericNameIDs []string // first 10
	ZeroPriced            int
	Expired               int
	ExpiredIDs            []string // first 10
}

// ReportCatalogQuality checks every catalog entry and collects quality
// findings without failing on any of them.
func ReportCatalogQuality(medicines []catalog.Medicine) *CatalogQualityReport {
	report := &CatalogQualityReport{}

	now := time.Now()
	seen := make(map[string]bool, len(medicines))

	for i := range medicines {
		m := &medicines[i]

		if seen[m.ID] {
			report.DuplicateIDs = append(report.DuplicateIDs, m.ID)
		}
		seen[m.ID] = true

		if err := ValidateMedicine(m); err != nil {
			report.InvalidCount++
			if len(report.InvalidIDs) < 10 {
				report.InvalidIDs = append(report.InvalidIDs, m.ID)
			}
		}

		if strings.TrimSpace(m.GenericName) == "" {
			report.MissingGenericName++
			if len(report.MissingGenericNameIDs) < 10 {
				report.MissingGenericNameIDs = append(report.MissingGenericNameIDs, m.ID)
			}
		}

		if m.Price == 0 {
			report.ZeroPriced++
		}

		if m.ExpiryDate != "" {
			if expiry, err := time.Parse("2006-01-02", m.ExpiryDate); err == nil && expiry.Before(now) {
				report.Expired++
				if len(report.ExpiredIDs) < 10 {
					report.ExpiredIDs = append(report.ExpiredIDs, m.ID)
				}
			}
		}
	}

	return report
}

// hasExcessiveRepetition checks for potential DoS patterns with the same
// character repeated more than 10 times consecutively
func hasExcessiveRepetition(input string) bool {
	for i := 0; i < len(input)-10; i++ {
		allSame := true
		for j := 1; j <= 10; j++ {
			if input[i] != input[i+j] {
				allSame = false
				break
			}
		}
		if allSame {
			return true
		}
	}
	return false
}
