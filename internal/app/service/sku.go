package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/Manulynx/kitaluro/pkg/util"
)

const (
	skuSupplierFallback = "GEN"
	skuCategoryFallback = "XX"
	skuRandomLen        = 4
	// Bound on regenerations after a storage-level uniqueness violation.
	skuMaxAttempts = 5
	// Bound on the zero-padded counter appended on a pre-check collision.
	skuMaxCounter = 99
)

// skuCode extracts up to n alphanumeric characters of a name, uppercased.
// Names shorter than n keep what they have; the fallback literal is used only
// when the name yields no alphanumerics at all.
func skuCode(name string, n int, fallback string) string {
	var b strings.Builder
	count := 0
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			count++
			if count >= n {
				break
			}
		}
	}
	if count == 0 {
		return fallback
	}
	return b.String()
}

// BuildSKU constructs a candidate SKU of the form
// SUP-CA-YYMMDD-HHMM-XXXX from the supplier and category names and the
// creation timestamp. Uniqueness is not guaranteed here; callers must check
// and retry.
func BuildSKU(supplierName, categoryName string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		skuCode(supplierName, 3, skuSupplierFallback),
		skuCode(categoryName, 2, skuCategoryFallback),
		at.Format("060102"),
		at.Format("1504"),
		util.RandomHex(skuRandomLen),
	)
}
