// Package order models the production order aggregate.
//
// An order is created in Received when the kitchen learns about a customer order,
// then advances strictly forward:
//
//	Received -> InProgress -> Ready -> Delivered
//
// StartProduction, MarkReady and MarkDelivered each require the immediate
// predecessor status and return ErrIllegalTransition otherwise, leaving the order
// untouched. Each transition stamps its stage time once. Delivered orders are
// never removed; they only leave the production queue.
//
// Items are a first-class list on the aggregate. EncodeItems and DecodeItems give
// persistence an opaque blob format; a blob that cannot be decoded yields an
// empty list and ErrItemsCorrupted.
package order
