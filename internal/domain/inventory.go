package domain

// Inventory is the full item list of an account together with its cap
type Inventory struct {
	AccountID int64  `json:"account_id"`
	Capacity  int    `json:"capacity"`
	Items     []Item `json:"items"`
}

// Free returns how many more items fit
func (inv Inventory) Free() int {
	if n := inv.Capacity - len(inv.Items); n > 0 {
		return n
	}
	return 0
}
