// file: dto/payment.go
package dto

// ========== Webhook ==========

// CheckoutMetadata is embedded into the provider checkout session and
// echoed back in payment notifications. The secret ties a notification to
// the checkout we created.
type CheckoutMetadata struct {
	HyperionCheckoutID string `json:"hyperion_checkout_id"`
	Secret             string `json:"secret"`
}

type NotificationData struct {
	// ID is the provider's payment identifier; it carries the at-most-once
	// guarantee across webhook redeliveries.
	ID     string `json:"id"`
	Amount int    `json:"amount"`
}

// PaymentNotification is the provider's webhook body. Metadata is absent on
// notifications that do not correlate to one of our checkouts.
type PaymentNotification struct {
	EventType string            `json:"eventType" binding:"required"`
	Data      NotificationData  `json:"data"`
	Metadata  *CheckoutMetadata `json:"metadata"`
}

const (
	EventTypePayment = "Payment"
	EventTypeOrder   = "Order"
)

// ========== Requests ==========

type CreatePaymentReq struct {
	Total int `json:"total" binding:"required"`
}

// ========== Responses ==========

type PaymentURLResp struct {
	URL string `json:"url"`
}
