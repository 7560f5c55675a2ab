// Package checkout implements the multi-step checkout flow: a linear state
// machine that collects customer, address and delivery/payment details,
// validates each step, and on submission hands the order off to WhatsApp.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/exoticflavors/exotic-storefront/internal/model"
)

// Step is one stage of the checkout flow. Steps advance linearly and Back
// returns exactly one step; there are no skips in either direction.
type Step string

const (
	CollectingCustomerInfo       Step = "customer_info"
	CollectingAddress            Step = "address"
	CollectingDeliveryAndPayment Step = "delivery_payment"
	Submitting                   Step = "submitting"
	Confirmed                    Step = "confirmed"
)

// SubmitDelay stands in for the dispatch round trip; submission always
// succeeds once it runs to completion.
const SubmitDelay = 800 * time.Millisecond

// ConfirmedRedirectDelay is how long the client should show the confirmation
// before returning to the home view.
const ConfirmedRedirectDelay = 3 * time.Second

var (
	ErrWrongStep      = errors.New("checkout: operation not valid for current step")
	ErrUnknownField   = errors.New("checkout: unknown field")
	ErrFieldsRequired = errors.New("checkout: required fields missing")
)

// Fields holds everything the three collection steps gather. Delivery and
// payment methods always carry a valid default, so step 3 can never fail
// validation.
type Fields struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`

	Street   string `json:"street"`
	Area     string `json:"area"`
	Landmark string `json:"landmark"`
	Notes    string `json:"notes"`

	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
}

// requiredByStep lists the fields that must be non-blank (after trimming)
// before Advance leaves that step.
var requiredByStep = map[Step][]string{
	CollectingCustomerInfo:       {"full_name", "phone", "whatsapp"},
	CollectingAddress:            {"street", "area", "landmark"},
	CollectingDeliveryAndPayment: {},
}

// Flow is one customer's in-progress checkout. It is owned by the state
// store, which serializes all access; Flow itself has no locking.
type Flow struct {
	step      Step
	fields    Fields
	errors    map[string]string
	submitted bool
}

// New starts a flow at the first step. The entry guard (non-empty cart,
// authenticated user) is the caller's responsibility.
func New() *Flow {
	return &Flow{
		step: CollectingCustomerInfo,
		fields: Fields{
			DeliveryMethod: MethodDelivery,
			PaymentMethod:  PaymentCash,
		},
		errors: map[string]string{},
	}
}

func (f *Flow) Step() Step     { return f.step }
func (f *Flow) Fields() Fields { return f.fields }

// Errors returns the field-level validation errors surfaced by the last
// rejected Advance.
func (f *Flow) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// SetField writes one field by its JSON name and clears any error recorded
// against it, so editing a rejected field dismisses its message.
func (f *Flow) SetField(name, value string) error {
	switch name {
	case "full_name":
		f.fields.FullName = value
	case "phone":
		f.fields.Phone = value
	case "whatsapp":
		f.fields.WhatsApp = value
	case "street":
		f.fields.Street = value
	case "area":
		f.fields.Area = value
	case "landmark":
		f.fields.Landmark = value
	case "notes":
		f.fields.Notes = value
	case "delivery_method":
		if m := DeliveryMethod(value); m == MethodDelivery || m == MethodPickup {
			f.fields.DeliveryMethod = m
		} else {
			return fmt.Errorf("%w: delivery_method %q", ErrUnknownField, value)
		}
	case "payment_method":
		if m := PaymentMethod(value); m == PaymentCash || m == PaymentTransfer {
			f.fields.PaymentMethod = m
		} else {
			return fmt.Errorf("%w: payment_method %q", ErrUnknownField, value)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	delete(f.errors, name)
	return nil
}

func (f *Flow) fieldValue(name string) string {
	switch name {
	case "full_name":
		return f.fields.FullName
	case "phone":
		return f.fields.Phone
	case "whatsapp":
		return f.fields.WhatsApp
	case "street":
		return f.fields.Street
	case "area":
		return f.fields.Area
	case "landmark":
		return f.fields.Landmark
	}
	return ""
}

// Advance validates the current step and moves to the next one. On a
// validation failure the flow stays on the current step and the field errors
// are retained for rendering.
func (f *Flow) Advance() error {
	required, ok := requiredByStep[f.step]
	if !ok {
		return ErrWrongStep
	}

	f.errors = map[string]string{}
	for _, name := range required {
		if strings.TrimSpace(f.fieldValue(name)) == "" {
			f.errors[name] = fmt.Sprintf("%s is required", fieldLabel(name))
		}
	}
	if len(f.errors) > 0 {
		return ErrFieldsRequired
	}

	switch f.step {
	case CollectingCustomerInfo:
		f.step = CollectingAddress
	case CollectingAddress:
		f.step = CollectingDeliveryAndPayment
	}
	return nil
}

// Back returns exactly one step. A no-op on the first step and while
// submitting or confirmed.
func (f *Flow) Back() {
	switch f.step {
	case CollectingAddress:
		f.step = CollectingCustomerInfo
	case CollectingDeliveryAndPayment:
		f.step = CollectingAddress
	}
}

// DeliveryFee for the currently entered area and delivery method. Computed
// on every call so it can never go stale against the form.
func (f *Flow) DeliveryFee() int64 {
	return DeliveryFee(f.fields.Area, f.fields.DeliveryMethod)
}

// GrandTotal is the payable amount for the given cart subtotal.
func (f *Flow) GrandTotal(subtotal int64) int64 {
	return subtotal + f.DeliveryFee()
}

// Submit runs the final step: a fixed artificial delay standing in for the
// dispatch round trip, then exactly one onSuccess call, then Confirmed.
// Cancelling the context abandons the submission before anything is emitted
// and returns the flow to the delivery/payment step. A flow submits at most
// once.
func (f *Flow) Submit(ctx context.Context, onSuccess func()) error {
	if f.step != CollectingDeliveryAndPayment || f.submitted {
		return ErrWrongStep
	}
	f.step = Submitting

	select {
	case <-ctx.Done():
		f.step = CollectingDeliveryAndPayment
		return ctx.Err()
	case <-time.After(SubmitDelay):
	}

	f.submitted = true
	f.step = Confirmed
	if onSuccess != nil {
		onSuccess()
	}
	return nil
}

// WhatsAppLink builds the wa.me deep link used to hand the placed order to
// the kitchen's WhatsApp line.
func WhatsAppLink(number string, o model.Order, fields Fields) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s for %s\n", o.Reference, fields.FullName)
	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%s x%d - N%d\n", line.Name, line.Quantity, line.UnitPrice*int64(line.Quantity))
	}
	fmt.Fprintf(&b, "Delivery: %s", fields.DeliveryMethod)
	if fields.DeliveryMethod == MethodDelivery {
		fmt.Fprintf(&b, " to %s, %s (%s)", fields.Street, fields.Area, fields.Landmark)
	}
	fmt.Fprintf(&b, "\nPayment: %s\nTotal: N%d", fields.PaymentMethod, o.Total)
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}

func fieldLabel(name string) string {
	switch name {
	case "full_name":
		return "Full name"
	case "phone":
		return "Phone"
	case "whatsapp":
		return "WhatsApp number"
	case "street":
		return "Street address"
	case "area":
		return "Area"
	case "landmark":
		return "Landmark"
	}
	return name
}
