// Package cart holds the shopping cart aggregate and its HTTP handlers. A
// cart is scoped to exactly one shop at a time; its operations are pure over
// in-memory state, with persistence done as an explicit load/save pair at the
// handler boundary.
package cart

import "mandi/models"

// Item is one cart line. The ShopProduct snapshot carries the price and
// stock as seen when the item was added; the store is re-checked at order
// placement.
type Item struct {
	ShopProductID string             `json:"shopProductId"`
	ShopProduct   models.ShopProduct `json:"shopProduct"`
	Quantity      int                `json:"quantity"`
}

// Cart is the per-user aggregate. Invariant: every item belongs to ShopID;
// an empty cart has no shop scope.
type Cart struct {
	ShopID string       `json:"shopId,omitempty"`
	Shop   *models.Shop `json:"shop,omitempty"`
	Items  []Item       `json:"items"`
}

// AddItem puts one unit of sp into the cart. Adding from a different shop
// silently discards the existing cart first; adding an already-present
// product increments its line instead of appending a second one. Stock is not
// checked here.
func (c *Cart) AddItem(sp models.ShopProduct, shop *models.Shop) {
	if c.ShopID != "" && c.ShopID != sp.ShopID {
		c.Clear()
	}
	c.ShopID = sp.ShopID
	c.Shop = shop

	for i := range c.Items {
		if c.Items[i].ShopProductID == sp.ShopProductID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{ShopProductID: sp.ShopProductID, ShopProduct: sp, Quantity: 1})
}

// UpdateQuantity sets a line's quantity directly. Zero or negative removes
// the line. No upper bound is enforced here; callers clamp to stock.
func (c *Cart) UpdateQuantity(shopProductID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(shopProductID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ShopProductID == shopProductID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem drops the matching line. Removing the last line resets the shop
// scope as well — a cart is never empty but shop-scoped.
func (c *Cart) RemoveItem(shopProductID string) {
	for i := range c.Items {
		if c.Items[i].ShopProductID == shopProductID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	if len(c.Items) == 0 {
		c.Clear()
	}
}

// Clear resets the cart unconditionally.
func (c *Cart) Clear() {
	c.ShopID = ""
	c.Shop = nil
	c.Items = nil
}

// Total is recomputed from the lines on every read.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.ShopProduct.Price * float64(it.Quantity)
	}
	return total
}

// ItemCount is the sum of line quantities.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
