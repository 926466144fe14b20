package payment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crm/internal/core/domain/model/kernel"
	"crm/internal/pkg/errs"
	"crm/internal/pkg/guard"
)

// Domain errors for payment operations.
var (
	// ErrInsufficientCash is returned when the cash received does not cover
	// the payment amount.
	ErrInsufficientCash = errors.New("cash received is less than the payment amount")
	// ErrCashOnlyOperation is returned when a cash settlement is attempted on
	// a non-cash payment.
	ErrCashOnlyOperation = errors.New("operation is allowed for cash payments only")
	// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
)

// Method identifies how the client pays for an order.
type Method int

const (
	// MethodUnknown is the zero value and is never valid.
	MethodUnknown Method = iota
	// MethodCash is settlement in cash on delivery.
	MethodCash
	// MethodCard is a card terminal payment on delivery.
	MethodCard
	// MethodOnline is a gateway payment confirmed by webhook.
	MethodOnline
	// MethodBankTransfer is an invoice settled by bank transfer.
	MethodBankTransfer
)

const (
	methodUnknownName      = "unknown"
	methodCashName         = "cash"
	methodCardName         = "card"
	methodOnlineName       = "online"
	methodBankTransferName = "bank_transfer"
)

// MethodFromString parses a payment method name as stored in the database.
func MethodFromString(name string) (Method, error) {
	switch name {
	case methodCashName:
		return MethodCash, nil
	case methodCardName:
		return MethodCard, nil
	case methodOnlineName:
		return MethodOnline, nil
	case methodBankTransferName:
		return MethodBankTransfer, nil
	default:
		return MethodUnknown, errs.NewValueIsInvalidError("method")
	}
}

// Validate checks that the method is one of the known payment methods.
func (m Method) Validate() error {
	switch m {
	case MethodCash, MethodCard, MethodOnline, MethodBankTransfer:
		return nil
	case MethodUnknown:
		return errs.NewValueIsRequiredError("method")
	default:
		return errs.NewValueIsInvalidError("method")
	}
}

// String returns the canonical name of the method.
func (m Method) String() string {
	switch m {
	case MethodCash:
		return methodCashName
	case MethodCard:
		return methodCardName
	case MethodOnline:
		return methodOnlineName
	case MethodBankTransfer:
		return methodBankTransferName
	default:
		return methodUnknownName
	}
}

// InvalidTransitionError is returned when a payment is moved along a path the
// state machine does not allow.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid payment status transition: %s -> %s", e.From, e.To)
}

// Payment records the settlement of a single order. Online payments carry a
// gateway transaction identifier and the raw gateway payload of the last
// webhook that touched them; cash payments record the cash received and the
// change returned.
type Payment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	method         Method
	status         Status
	amount         kernel.Money
	cashReceived   *kernel.Money
	change         *kernel.Money
	transactionID  string
	gatewayPayload json.RawMessage
	createdAt      time.Time
	processedAt    *time.Time
	guard          guard.ConstructorGuard
}

// NewPayment creates a payment in the Pending status.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	method Method,
	amount kernel.Money,
	createdAt time.Time,
) (*Payment, error) {
	payment := &Payment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payment.setID(id),
		payment.setOrderID(orderID),
		payment.setMethod(method),
		payment.setAmount(amount),
		payment.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	payment.status = StatusPending
	return payment, nil
}

// RestorePayment reconstructs a payment from persistence in an arbitrary
// lifecycle state.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	method Method,
	status Status,
	amount kernel.Money,
	cashReceived *kernel.Money,
	change *kernel.Money,
	transactionID string,
	gatewayPayload json.RawMessage,
	createdAt time.Time,
	processedAt *time.Time,
) (*Payment, error) {
	payment, err := NewPayment(id, orderID, method, amount, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	payment.status = status
	payment.cashReceived = cashReceived
	payment.change = change
	payment.transactionID = transactionID
	payment.gatewayPayload = gatewayPayload
	payment.processedAt = processedAt
	return payment, nil
}

// Validate checks that the payment was created through a constructor.
func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// IsEqual compares two payments by identifier.
func (p *Payment) IsEqual(other *Payment) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID {
	return p.id
}

// OrderID returns the paid order's identifier.
func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

// Method returns how the payment is settled.
func (p *Payment) Method() Method {
	return p.method
}

// Status returns the payment's lifecycle state.
func (p *Payment) Status() Status {
	return p.status
}

// Amount returns the sum to be settled.
func (p *Payment) Amount() kernel.Money {
	return p.amount
}

// CashReceived returns the cash handed over, nil for non-cash payments.
func (p *Payment) CashReceived() *kernel.Money {
	return p.cashReceived
}

// Change returns the change handed back, nil for non-cash payments.
func (p *Payment) Change() *kernel.Money {
	return p.change
}

// TransactionID returns the gateway transaction identifier, empty until the
// gateway reports one.
func (p *Payment) TransactionID() string {
	return p.transactionID
}

// GatewayPayload returns the raw body of the last webhook that touched the
// payment, nil when none did.
func (p *Payment) GatewayPayload() json.RawMessage {
	return p.gatewayPayload
}

// CreatedAt returns when the payment was registered.
func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// ProcessedAt returns when the payment reached a settled state, nil until
// then.
func (p *Payment) ProcessedAt() *time.Time {
	return p.processedAt
}

// BeginProcessing marks the payment as picked up by the gateway.
func (p *Payment) BeginProcessing() error {
	return p.transitionTo(StatusProcessing)
}

// Complete settles the payment, recording the gateway transaction and the
// raw webhook payload.
func (p *Payment) Complete(transactionID string, payload json.RawMessage, at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if err := p.transitionTo(StatusCompleted); err != nil {
		return err
	}

	p.transactionID = transactionID
	p.gatewayPayload = payload
	p.processedAt = &at
	return nil
}

// Fail marks the payment as rejected by the gateway.
func (p *Payment) Fail(payload json.RawMessage, at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if err := p.transitionTo(StatusFailed); err != nil {
		return err
	}

	p.gatewayPayload = payload
	p.processedAt = &at
	return nil
}

// Refund returns a completed payment to the client.
func (p *Payment) Refund(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	if err := p.transitionTo(StatusRefunded); err != nil {
		return err
	}

	p.processedAt = &at
	return nil
}

// SettleCash completes a cash payment, computing the change from the cash
// received. The received sum must cover the payment amount.
func (p *Payment) SettleCash(received kernel.Money, at time.Time) error {
	if p.method != MethodCash {
		return ErrCashOnlyOperation
	}
	if err := received.Validate(); err != nil {
		return err
	}
	if received.MinorUnits() < p.amount.MinorUnits() {
		return ErrInsufficientCash
	}
	change, err := received.SubFloored(p.amount)
	if err != nil {
		return err
	}

	if err = p.Complete("", nil, at); err != nil {
		return err
	}

	p.cashReceived = &received
	p.change = &change
	return nil
}

func (p *Payment) transitionTo(next Status) error {
	if !p.status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: p.status, To: next}
	}
	p.status = next
	return nil
}

func (p *Payment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Payment) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	p.orderID = orderID
	return nil
}

func (p *Payment) setMethod(method Method) error {
	if err := method.Validate(); err != nil {
		return err
	}
	p.method = method
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("amount", err)
	}
	p.amount = amount
	return nil
}

func (p *Payment) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	p.createdAt = createdAt
	return nil
}
