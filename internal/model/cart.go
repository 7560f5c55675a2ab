package model

// CartLine is one distinct dish in the active cart. Name is the merge key:
// the cart never holds two lines with the same name.
type CartLine struct {
	Name        string `json:"name"`
	UnitPrice   int64  `json:"price"`
	Quantity    int    `json:"qty"`
	ImageURL    string `json:"img"`
	Description string `json:"desc"`
}

// LineFromProduct copies a catalog product's display fields into a cart line.
func LineFromProduct(p Product) CartLine {
	return CartLine{
		Name:        p.Name,
		UnitPrice:   p.Price,
		Quantity:    1,
		ImageURL:    p.ImageURL,
		Description: p.Description,
	}
}
