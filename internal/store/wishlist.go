package store

// Wishlist is the gear a customer saved for later, in the order saved
type Wishlist struct {
	GearIDs []string `json:"gearIds"`
}

// Toggle saves gearID, or drops it if already saved. added reports which.
func (w Wishlist) Toggle(gearID string) (next Wishlist, added bool) {
	ids := make([]string, 0, len(w.GearIDs)+1)
	for _, id := range w.GearIDs {
		if id == gearID {
			added = false
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == len(w.GearIDs) {
		ids = append(ids, gearID)
		added = true
	}
	return Wishlist{GearIDs: ids}, added
}

// Contains reports whether gearID is saved
func (w Wishlist) Contains(gearID string) bool {
	for _, id := range w.GearIDs {
		if id == gearID {
			return true
		}
	}
	return false
}
