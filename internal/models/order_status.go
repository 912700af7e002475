package models

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned when a status change is not present in the
// transition table for its dimension. Handlers map it to 409 Conflict.
var ErrInvalidTransition = errors.New("status transition not allowed")

//
// --- Order Status ---
//

type OrderStatus string

const (
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

var orderStatusNext = map[OrderStatus]map[OrderStatus]bool{
	OrderProcessing: {OrderShipped: true, OrderCancelled: true},
	OrderShipped:    {OrderDelivered: true, OrderCancelled: true},
	OrderDelivered:  {},
	OrderCancelled:  {},
}

// ParseOrderStatus validates a caller-supplied status string against the enum.
func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderStatusNext[status]; !ok {
		return "", fmt.Errorf("unknown order status %q", s)
	}
	return status, nil
}

// CanTransition reports whether the order status may move from s to 'to'.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return orderStatusNext[s][to]
}

//
// --- Payment Status ---
//

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

var paymentStatusNext = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentPending: {PaymentPaid: true, PaymentFailed: true},
	// A failed payment can be retried
	PaymentFailed: {PaymentPending: true},
	PaymentPaid:   {},
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := paymentStatusNext[status]; !ok {
		return "", fmt.Errorf("unknown payment status %q", s)
	}
	return status, nil
}

func (s PaymentStatus) CanTransition(to PaymentStatus) bool {
	return paymentStatusNext[s][to]
}

//
// --- Return Status ---
//

type ReturnStatus string

const (
	ReturnEligible   ReturnStatus = "eligible"
	ReturnIneligible ReturnStatus = "ineligible"
	Returned         ReturnStatus = "returned"
)

var returnStatusNext = map[ReturnStatus]map[ReturnStatus]bool{
	ReturnEligible:   {Returned: true, ReturnIneligible: true},
	ReturnIneligible: {},
	Returned:         {},
}

func ParseReturnStatus(s string) (ReturnStatus, error) {
	status := ReturnStatus(s)
	if _, ok := returnStatusNext[status]; !ok {
		return "", fmt.Errorf("unknown return status %q", s)
	}
	return status, nil
}

func (s ReturnStatus) CanTransition(to ReturnStatus) bool {
	return returnStatusNext[s][to]
}

//
// --- Return Approval Status ---
//

type ReturnApprovalStatus string

const (
	ApprovalPending  ReturnApprovalStatus = "pending"
	ApprovalApproved ReturnApprovalStatus = "approved"
	ApprovalRejected ReturnApprovalStatus = "rejected"
)

var returnApprovalNext = map[ReturnApprovalStatus]map[ReturnApprovalStatus]bool{
	ApprovalPending:  {ApprovalApproved: true, ApprovalRejected: true},
	ApprovalApproved: {},
	ApprovalRejected: {},
}

func ParseReturnApprovalStatus(s string) (ReturnApprovalStatus, error) {
	status := ReturnApprovalStatus(s)
	if _, ok := returnApprovalNext[status]; !ok {
		return "", fmt.Errorf("unknown return approval status %q", s)
	}
	return status, nil
}

func (s ReturnApprovalStatus) CanTransition(to ReturnApprovalStatus) bool {
	return returnApprovalNext[s][to]
}
