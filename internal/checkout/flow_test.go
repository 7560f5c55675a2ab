package checkout

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exoticflavors/exotic-storefront/internal/model"
)

func filledStepOne(t *testing.T) *Flow {
	t.Helper()
	f := New()
	require.NoError(t, f.SetField("full_name", "Adaeze Obi"))
	require.NoError(t, f.SetField("phone", "08031234567"))
	require.NoError(t, f.SetField("whatsapp", "08031234567"))
	return f
}

func filledStepTwo(t *testing.T) *Flow {
	t.Helper()
	f := filledStepOne(t)
	require.NoError(t, f.Advance())
	require.NoError(t, f.SetField("street", "12 Herbert Macaulay Way"))
	require.NoError(t, f.SetField("area", "Yaba"))
	require.NoError(t, f.SetField("landmark", "Opposite the big mosque"))
	return f
}

func readyToSubmit(t *testing.T) *Flow {
	t.Helper()
	f := filledStepTwo(t)
	require.NoError(t, f.Advance())
	return f
}

func TestNewStartsWithDefaults(t *testing.T) {
	f := New()
	assert.Equal(t, CollectingCustomerInfo, f.Step())
	assert.Equal(t, MethodDelivery, f.Fields().DeliveryMethod)
	assert.Equal(t, PaymentCash, f.Fields().PaymentMethod)
}

func TestAdvanceBlocksOnMissingCustomerInfo(t *testing.T) {
	f := New()
	require.NoError(t, f.SetField("phone", "08031234567"))
	require.NoError(t, f.SetField("whatsapp", "08031234567"))

	err := f.Advance()
	assert.ErrorIs(t, err, ErrFieldsRequired)
	assert.Equal(t, CollectingCustomerInfo, f.Step())
	assert.Contains(t, f.Errors(), "full_name")
	assert.NotContains(t, f.Errors(), "phone")
}

func TestAdvanceIgnoresLaterStepFields(t *testing.T) {
	// Step one only checks its own three fields; the empty address must not
	// block it.
	f := filledStepOne(t)
	require.NoError(t, f.Advance())
	assert.Equal(t, CollectingAddress, f.Step())
}

func TestWhitespaceDoesNotSatisfyRequiredFields(t *testing.T) {
	f := New()
	require.NoError(t, f.SetField("full_name", "   "))
	require.NoError(t, f.SetField("phone", "08031234567"))
	require.NoError(t, f.SetField("whatsapp", "08031234567"))

	assert.ErrorIs(t, f.Advance(), ErrFieldsRequired)
	assert.Contains(t, f.Errors(), "full_name")
}

func TestSetFieldClearsItsError(t *testing.T) {
	f := New()
	require.ErrorIs(t, f.Advance(), ErrFieldsRequired)
	require.Contains(t, f.Errors(), "full_name")

	require.NoError(t, f.SetField("full_name", "Adaeze Obi"))
	assert.NotContains(t, f.Errors(), "full_name")
}

func TestSetFieldRejectsUnknownNamesAndMethods(t *testing.T) {
	f := New()
	assert.ErrorIs(t, f.SetField("hairstyle", "braids"), ErrUnknownField)
	assert.ErrorIs(t, f.SetField("delivery_method", "drone"), ErrUnknownField)
	assert.ErrorIs(t, f.SetField("payment_method", "barter"), ErrUnknownField)

	require.NoError(t, f.SetField("delivery_method", "pickup"))
	require.NoError(t, f.SetField("payment_method", "transfer"))
	assert.Equal(t, MethodPickup, f.Fields().DeliveryMethod)
	assert.Equal(t, PaymentTransfer, f.Fields().PaymentMethod)
}

func TestBackReturnsExactlyOneStep(t *testing.T) {
	f := filledStepTwo(t)
	require.NoError(t, f.Advance())
	require.Equal(t, CollectingDeliveryAndPayment, f.Step())

	f.Back()
	assert.Equal(t, CollectingAddress, f.Step())

	// Entered data survives the round trip.
	assert.Equal(t, "Yaba", f.Fields().Area)

	f.Back()
	f.Back() // already on the first step, no-op
	assert.Equal(t, CollectingCustomerInfo, f.Step())
}

func TestGrandTotalTracksAreaAndMethod(t *testing.T) {
	f := readyToSubmit(t)
	assert.Equal(t, int64(1500), f.DeliveryFee())
	assert.Equal(t, int64(8500), f.GrandTotal(7000))

	require.NoError(t, f.SetField("delivery_method", "pickup"))
	assert.Equal(t, int64(0), f.DeliveryFee())
	assert.Equal(t, int64(7000), f.GrandTotal(7000))
}

func TestSubmitEmitsExactlyOnce(t *testing.T) {
	f := readyToSubmit(t)

	calls := 0
	require.NoError(t, f.Submit(context.Background(), func() { calls++ }))
	assert.Equal(t, 1, calls)
	assert.Equal(t, Confirmed, f.Step())

	// A confirmed flow refuses to submit again.
	assert.ErrorIs(t, f.Submit(context.Background(), func() { calls++ }), ErrWrongStep)
	assert.Equal(t, 1, calls)
}

func TestSubmitRequiresFinalStep(t *testing.T) {
	f := filledStepOne(t)
	assert.ErrorIs(t, f.Submit(context.Background(), nil), ErrWrongStep)
	assert.Equal(t, CollectingCustomerInfo, f.Step())
}

func TestSubmitCancellationEmitsNothing(t *testing.T) {
	f := readyToSubmit(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := f.Submit(ctx, func() { calls++ })
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
	assert.Equal(t, CollectingDeliveryAndPayment, f.Step())

	// The abandoned flow can be submitted again.
	require.NoError(t, f.Submit(context.Background(), func() { calls++ }))
	assert.Equal(t, 1, calls)
}

func TestWhatsAppLinkCarriesOrderSummary(t *testing.T) {
	f := readyToSubmit(t)
	order := model.Order{
		Reference: "ref-123",
		Lines: []model.CartLine{
			{Name: "Suya Skewers (Beef)", UnitPrice: 3500, Quantity: 2},
		},
		Subtotal:    7000,
		DeliveryFee: 1500,
		Total:       8500,
	}

	link := WhatsAppLink("2348132791933", order, f.Fields())
	assert.True(t, strings.HasPrefix(link, "https://wa.me/2348132791933?text="), link)
	assert.Contains(t, link, "Suya")
	assert.Contains(t, link, "8500")
	assert.NotContains(t, link, " ") // everything after ?text= is escaped
}
