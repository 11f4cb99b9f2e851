package store

// CartLine is one gear id with a quantity in a quote cart
type CartLine struct {
	GearID   string `json:"gearId"`
	Quantity int    `json:"quantity"`
}

// Cart is the quote being built by one customer session
type Cart struct {
	Lines []CartLine `json:"lines"`
	Days  int        `json:"days"`
}

// Add increases the quantity of gearID, appending a new line if needed.
func (c Cart) Add(gearID string, qty int) Cart {
	lines := make([]CartLine, len(c.Lines), len(c.Lines)+1)
	copy(lines, c.Lines)
	for i := range lines {
		if lines[i].GearID == gearID {
			lines[i].Quantity += qty
			c.Lines = lines
			return c
		}
	}
	c.Lines = append(lines, CartLine{GearID: gearID, Quantity: qty})
	return c
}

// Remove drops gearID from the cart.
func (c Cart) Remove(gearID string) Cart {
	lines := make([]CartLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		if l.GearID != gearID {
			lines = append(lines, l)
		}
	}
	c.Lines = lines
	return c
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
