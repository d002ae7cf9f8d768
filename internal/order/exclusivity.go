package order

import (
	"github.com/Moetaz0/BeatMarket-Back/internal/beat"
	"github.com/Moetaz0/BeatMarket-Back/internal/license"
)

// CheckAvailability rejects a beat that is exclusively owned by someone other
// than the requesting user. The owner may re-purchase their own exclusive
// beat; that matches the legacy marketplace behavior.
func CheckAvailability(b *beat.Beat, requestingUserID int) error {
	if !b.IsExclusive {
		return nil
	}
	if b.ExclusiveOwnerID != nil && *b.ExclusiveOwnerID == requestingUserID {
		return nil
	}
	return &ExclusivityBlockedError{BeatTitle: b.Title}
}

// GrantsExclusivity reports whether a paid purchase under the resolved license
// transfers sole ownership of the beat to the buyer. Decided only after funds
// are known to be sufficient; the transfer itself happens in the commit phase.
func GrantsExclusivity(lic *license.License) bool {
	return lic != nil && lic.IsExclusive
}
