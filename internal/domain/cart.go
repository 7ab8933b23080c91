package domain

// CartItem is one cart line: a product held by a session with a
// positive quantity. There is at most one line per (session, product);
// repeated adds merge into the existing line.
type CartItem struct {
	ID           int64   `json:"id"`
	SessionToken string  `json:"-"`
	ProductID    int64   `json:"product_id"`
	Quantity     int     `json:"quantity"`
	Product      Product `json:"product"`
}

// LineTotal is the line subtotal at current product price.
func (i CartItem) LineTotal() int64 {
	return int64(i.Quantity) * i.Product.Price
}
