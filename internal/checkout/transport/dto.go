package transport

// CheckoutRequest is the POST /products body: a bare array of product IDs.
type CheckoutRequest []int32

// InteractionConflictResponse is returned when the selected products must not
// be combined.
type InteractionConflictResponse struct {
	Message      string     `json:"message"`
	Interactions [][]string `json:"interactions"`
}
