package dataset

import (
	"strings"

	"mit-dashboard/internal/models"
)

// LRStatus selects rows by whether a lorry receipt has been generated.
type LRStatus int

const (
	LRAny LRStatus = iota
	LRGenerated
	LRNotGenerated
)

// ParseLRStatus maps a request parameter to a selector. Both the short
// form ("generated") and the legacy display labels ("LR Generated") are
// accepted; anything unrecognized means no constraint.
func ParseLRStatus(s string) LRStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generated", "lr generated", "lr_generated":
		return LRGenerated
	case "not_generated", "not generated", "lr not generated", "lr_not_generated":
		return LRNotGenerated
	default:
		return LRAny
	}
}

// Criteria is the per-request filter. A nil field means "no constraint";
// the HTTP layer maps the empty string and the "All" sentinel to nil
// before the core ever sees them.
type Criteria struct {
	Division    *string
	AgeBucket   *string
	Transporter *string
	PoNo        *string
	LRStatus    LRStatus
}

func (c Criteria) matches(s models.Shipment) bool {
	if c.Division != nil && s.Division.String() != *c.Division {
		return false
	}
	if c.AgeBucket != nil && s.AgeBucket.String() != *c.AgeBucket {
		return false
	}
	if c.Transporter != nil && s.TransporterName.String() != *c.Transporter {
		return false
	}
	if c.PoNo != nil {
		needle := strings.ToLower(strings.TrimSpace(*c.PoNo))
		if needle != "" && !strings.Contains(strings.ToLower(s.PoNo.String()), needle) {
			return false
		}
	}
	switch c.LRStatus {
	case LRGenerated:
		if !s.LRGenerated() {
			return false
		}
	case LRNotGenerated:
		if s.LRGenerated() {
			return false
		}
	}
	return true
}

// Filter returns the rows matching every active criterion, in source
// order. It never errors: a criterion that matches nothing yields an
// empty result.
func (t *Table) Filter(c Criteria) []models.Shipment {
	out := make([]models.Shipment, 0, len(t.rows))
	for _, row := range t.rows {
		if c.matches(row) {
			out = append(out, row)
		}
	}
	return out
}
