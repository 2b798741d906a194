package models

// Product is the subset of a menu product a customer can put in the cart.
type Product struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"min=0"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CartItem is one line of the cart. Price is in integer currency units.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	ImageURL string `json:"imageUrl,omitempty"`
}

func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// CartView is what the API returns for a session cart.
type CartView struct {
	Items     []CartItem `json:"items"`
	IsOpen    bool       `json:"isOpen"`
	Total     int64      `json:"total"`
	ItemCount int        `json:"itemCount"`
}
