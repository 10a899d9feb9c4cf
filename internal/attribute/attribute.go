// Package attribute selects, among a property's sale events, the one
// representing the current owner's original purchase.
package attribute

import (
	"github.com/rjmelnik/deedtrace/internal/model"
	"github.com/rjmelnik/deedtrace/internal/names"
)

// OriginalPurchase reconciles the free-text current-owners string against the
// chronologically ordered sale events and returns the event most likely to be
// the current owner's original purchase, or nil when no rule matches.
//
// The rules form a fixed-priority cascade; the first rule that yields a match
// wins and later rules are not evaluated. Specificity runs from shared first
// names (most distinctive for co-owner lists) down to full-string equality as
// a cosmetic-differences-only last resort. Within a rule, the earliest
// qualifying event in chronological order is taken; rule 4's >=2 shared
// tokens can in principle match two unrelated buyers, and the chronological
// tie-break is a heuristic, not a guarantee.
func OriginalPurchase(currentOwners string, sales []model.SaleEvent) *model.SaleEvent {
	ownerFirst := names.FirstNameSet(currentOwners)
	ownerTokens := names.TokenSet(currentOwners)
	ownerLast := names.LastNameSet(currentOwners)

	// 1. Every current-owner first name appears among the buyer's tokens.
	if len(ownerFirst) > 0 {
		for i := range sales {
			if ownerFirst.SubsetOf(names.BareTokens(sales[i].Buyer)) {
				return &sales[i]
			}
		}
	}

	// 2. Buyer token set equals the owner token set exactly.
	if len(ownerTokens) > 0 {
		for i := range sales {
			if names.TokenSet(sales[i].Buyer).Equal(ownerTokens) {
				return &sales[i]
			}
		}
	}

	// 3. Every current-owner last name appears among the buyer's tokens.
	if len(ownerLast) > 0 {
		for i := range sales {
			if ownerLast.SubsetOf(names.BareTokens(sales[i].Buyer)) {
				return &sales[i]
			}
		}
	}

	// 4. At least two tokens shared between owner and buyer.
	if len(ownerTokens) > 0 {
		for i := range sales {
			bt := names.TokenSet(sales[i].Buyer)
			if len(bt) > 0 && ownerTokens.IntersectionSize(bt) >= 2 {
				return &sales[i]
			}
		}
	}

	// 5. Whitespace/punctuation-insensitive full-string equality, skipped
	// when the owners text names a trust or similar entity.
	if !names.HasOrgNoise(currentOwners) {
		ownerNorm := names.Normalize(currentOwners)
		for i := range sales {
			if names.Normalize(sales[i].Buyer) == ownerNorm {
				return &sales[i]
			}
		}
	}

	return nil
}
