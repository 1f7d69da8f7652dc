package cart

import (
	"testing"

	"mandi/models"
)

func sp(id, shopID string, price float64, stock int) models.ShopProduct {
	return models.ShopProduct{
		ShopProductID: id,
		ShopID:        shopID,
		ProductID:     "prod-" + id,
		Price:         price,
		Stock:         stock,
		IsAvailable:   true,
	}
}

func TestAddItemSingleShopInvariant(t *testing.T) {
	var c Cart
	shopA := &models.Shop{ShopID: "A"}
	shopB := &models.Shop{ShopID: "B"}

	c.AddItem(sp("p1", "A", 40, 10), shopA)
	c.AddItem(sp("p2", "A", 25, 5), shopA)
	if len(c.Items) != 2 || c.ShopID != "A" {
		t.Fatalf("expected 2 items scoped to A, got %d items, shop %q", len(c.Items), c.ShopID)
	}

	// Adding from another shop discards the old cart first.
	c.AddItem(sp("p9", "B", 15, 3), shopB)
	if c.ShopID != "B" {
		t.Fatalf("shop scope not switched, got %q", c.ShopID)
	}
	if len(c.Items) != 1 || c.Items[0].ShopProductID != "p9" {
		t.Fatalf("old items survived the switch: %+v", c.Items)
	}
	for _, it := range c.Items {
		if it.ShopProduct.ShopID != "B" {
			t.Fatalf("item from wrong shop present: %+v", it)
		}
	}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	var c Cart
	shop := &models.Shop{ShopID: "A"}

	c.AddItem(sp("p1", "A", 40, 10), shop)
	c.AddItem(sp("p1", "A", 40, 10), shop)

	if len(c.Items) != 1 {
		t.Fatalf("expected one line, got %d", len(c.Items))
	}
	if c.Items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", c.Items[0].Quantity)
	}
}

func TestUpdateQuantity(t *testing.T) {
	var c Cart
	shop := &models.Shop{ShopID: "A"}
	c.AddItem(sp("p1", "A", 40, 10), shop)

	c.UpdateQuantity("p1", 3)
	if c.Items[0].Quantity != 3 {
		t.Fatalf("expected 3, got %d", c.Items[0].Quantity)
	}

	// Unknown id is a no-op.
	c.UpdateQuantity("nope", 5)
	if len(c.Items) != 1 {
		t.Fatalf("unexpected line added: %+v", c.Items)
	}

	// Zero or negative behaves as removal.
	c.UpdateQuantity("p1", 0)
	if len(c.Items) != 0 || c.ShopID != "" {
		t.Fatalf("cart should be fully cleared, got %+v", c)
	}
}

func TestRemoveLastItemClearsShopScope(t *testing.T) {
	var c Cart
	shop := &models.Shop{ShopID: "A"}
	c.AddItem(sp("p1", "A", 40, 10), shop)
	c.AddItem(sp("p2", "A", 25, 5), shop)

	c.RemoveItem("p1")
	if len(c.Items) != 1 || c.ShopID != "A" {
		t.Fatalf("expected one item still scoped to A, got %+v", c)
	}

	c.RemoveItem("p2")
	if len(c.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", c.Items)
	}
	if c.ShopID != "" || c.Shop != nil {
		t.Fatal("empty cart must not keep shop scope")
	}
}

func TestTotalsRecomputedPerRead(t *testing.T) {
	var c Cart
	shop := &models.Shop{ShopID: "A"}
	c.AddItem(sp("p1", "A", 40, 10), shop)
	c.UpdateQuantity("p1", 3)

	if got := c.Total(); got != 120 {
		t.Fatalf("total: want 120, got %v", got)
	}
	if got := c.ItemCount(); got != 3 {
		t.Fatalf("itemCount: want 3, got %v", got)
	}

	c.AddItem(sp("p2", "A", 25.5, 5), shop)
	if got := c.Total(); got != 145.5 {
		t.Fatalf("total: want 145.5, got %v", got)
	}
	if got := c.ItemCount(); got != 4 {
		t.Fatalf("itemCount: want 4, got %v", got)
	}

	c.Clear()
	if c.Total() != 0 || c.ItemCount() != 0 {
		t.Fatal("cleared cart must total zero")
	}
}
