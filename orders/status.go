package orders

import "mandi/models"

// The forward progression of a customer order. Cancel is reachable from any
// non-terminal state; picked_up and cancelled are terminal.
var forward = map[string]string{
	models.OrderPending:   models.OrderConfirmed,
	models.OrderConfirmed: models.OrderPreparing,
	models.OrderPreparing: models.OrderReady,
	models.OrderReady:     models.OrderPickedUp,
}

// NextStatus returns the single forward step from status, when one exists.
func NextStatus(status string) (string, bool) {
	next, ok := forward[status]
	return next, ok
}

// Terminal reports whether no further transition is offered from status.
func Terminal(status string) bool {
	return status == models.OrderPickedUp || status == models.OrderCancelled
}

// CanCancel reports whether the cancel action is offered from status.
func CanCancel(status string) bool {
	return models.ValidOrderStatus(status) && !Terminal(status)
}

// Actions lists the actions a shopkeeper dashboard offers for an order in
// the given status. The data layer itself does not gate transitions; these
// drive the affordances only.
func Actions(status string) []string {
	var actions []string
	if next, ok := NextStatus(status); ok {
		actions = append(actions, next)
	}
	if CanCancel(status) {
		actions = append(actions, models.OrderCancelled)
	}
	return actions
}
