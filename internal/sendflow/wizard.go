package sendflow

import (
	"sync"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/pricing"
)

// Wizard is the single source of truth for one in-progress shipment.
// Every step writes its own slice through an updater and every step can
// read all slices (the summary step needs the whole picture).
//
// The wizard never does network I/O. Prices are derived on every read,
// recomputation is cheap and keeps the struct free of stale caches.
//
// Only the visible step writes at any moment, but the UI layer may read
// from timers/renders concurrently, so the lock is kept anyway. It costs
// nothing at this scale.
type Wizard struct {
	mu sync.RWMutex

	parcel    *models.ParcelDetails
	route     *models.Route
	handover  *models.Handover
	sender    *models.SenderInfo
	recipient *models.RecipientInfo
	payment   *models.PaymentInstrument
	security  *models.Security

	currentStep int
}

// NewWizard returns an empty wizard positioned at step 1.
// Using a wizard that was never constructed (a nil *Wizard) panics on
// first use, which is what we want: that is an integration bug, not a
// runtime condition to paper over.
func NewWizard() *Wizard {
	return &Wizard{currentStep: 1}
}

// UpdateParcel replaces the parcel slice wholesale. No partial merge.
func (w *Wizard) UpdateParcel(p models.ParcelDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.parcel = &p
}

// UpdateRoute replaces the route slice wholesale.
func (w *Wizard) UpdateRoute(r models.Route) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.route = &r
}

// UpdateHandover replaces the handover slice wholesale.
func (w *Wizard) UpdateHandover(h models.Handover) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handover = &h
}

// UpdateSender replaces the sender slice wholesale.
func (w *Wizard) UpdateSender(s models.SenderInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sender = &s
}

// UpdateRecipient replaces the recipient slice wholesale.
func (w *Wizard) UpdateRecipient(r models.RecipientInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.recipient = &r
}

// UpdatePayment stores the payment instrument confirmed on the summary
// step. Optional: absent means the charge settles out of band.
func (w *Wizard) UpdatePayment(p models.PaymentInstrument) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payment = &p
}

// UpdateSecurity stores the generated codes. Written once at commit time.
func (w *Wizard) UpdateSecurity(sec models.Security) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.security = &sec
}

// Parcel returns the parcel slice, nil until step 1 completes.
func (w *Wizard) Parcel() *models.ParcelDetails {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.parcel
}

func (w *Wizard) Route() *models.Route {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.route
}

func (w *Wizard) Handover() *models.Handover {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.handover
}

func (w *Wizard) Sender() *models.SenderInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sender
}

func (w *Wizard) Recipient() *models.RecipientInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.recipient
}

func (w *Wizard) Payment() *models.PaymentInstrument {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.payment
}

func (w *Wizard) Security() *models.Security {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.security
}

// BasePrice derives the base price from the parcel slice.
// Zero until the parcel is set.
func (w *Wizard) BasePrice() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.parcel == nil {
		return 0
	}
	return pricing.BasePriceFor(w.parcel.Size, w.parcel.WeightRange)
}

// PickupFee derives the surcharge from the handover slice.
func (w *Wizard) PickupFee() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.handover == nil {
		return 0
	}
	return pricing.PickupFeeFor(w.handover.Method)
}

// TotalPrice is always BasePrice + PickupFee. Recomputed on every read,
// never cached, so it can never disagree with the slices.
func (w *Wizard) TotalPrice() int64 {
	return pricing.CalculateTotalPrice(w.BasePrice(), w.PickupFee())
}

// CurrentStep returns the explicit step cursor.
func (w *Wizard) CurrentStep() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentStep
}

// SetCurrentStep moves the cursor. Steps decide when to advance, the
// wizard never increments implicitly.
func (w *Wizard) SetCurrentStep(n int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.currentStep = n
}

// Reset clears every slice and puts the cursor back to step 1.
// Safe to call any number of times from any step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.parcel = nil
	w.route = nil
	w.handover = nil
	w.sender = nil
	w.recipient = nil
	w.payment = nil
	w.security = nil
	w.currentStep = 1
}
