package domain

// CartItem is one cart line: a user's intent to buy a quantity of one
// product. The server merges lines by (UserID, ProductID) only; color and
// size are selectors carried along, not part of the merge key.
type CartItem struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color,omitempty"`
	Size      string `json:"size,omitempty"`
}
