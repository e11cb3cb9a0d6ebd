package events

// Topic names for storefront domain events. Subscribers receive the result
// classification; any user-facing message text is owned by the consumer.
const (
	TopicPromoApplied  = "cart.promo_applied"
	TopicPromoRejected = "cart.promo_rejected"
	TopicItemRemoved   = "cart.item_removed"
	TopicCartCleared   = "cart.cleared"
	TopicOrderPlaced   = "order.placed"
	TopicOrderAdvanced = "order.advanced"
)
