package sendflow

import (
	"context"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
)

// Step numbers for the send flow. The cursor in the wizard always holds
// one of these. The handover step branches internally between dropoff
// and pickup, it is one step either way, not a skippable state.
const (
	StepSize = iota + 1
	StepRoute
	StepHandoverMethod
	StepSender
	StepRecipient
	StepSummary
	StepSecureHandover

	TotalSteps = StepSecureHandover
)

// CommitFunc finalizes the wizard into a durable shipment.
// It must leave the wizard intact on failure so the user can retry.
type CommitFunc func(ctx context.Context) error

// Controller drives the step cursor. It owns the transition rules,
// the wizard owns the data.
type Controller struct {
	wizard *Wizard
	commit CommitFunc
}

// NewController wires a controller to a wizard and a commit function.
func NewController(w *Wizard, commit CommitFunc) *Controller {
	return &Controller{wizard: w, commit: commit}
}

// Next advances one step. Gated on the current step being complete,
// and a no-op at the terminal step: the cursor can never go past
// TotalSteps no matter how often this is called.
func (c *Controller) Next() error {
	if !c.CanAdvance() {
		return ErrIncompleteStep
	}
	step := c.wizard.CurrentStep()
	if step < TotalSteps {
		c.wizard.SetCurrentStep(step + 1)
	}
	return nil
}

// Back retreats one step. No-op at step 1.
func (c *Controller) Back() {
	step := c.wizard.CurrentStep()
	if step > 1 {
		c.wizard.SetCurrentStep(step - 1)
	}
}

// Close abandons the flow: everything entered so far is discarded.
func (c *Controller) Close() {
	c.wizard.Reset()
}

// CanAdvance reports whether the current step's own required fields are
// present. This is the client-side gating that enables the continue
// button. It only ever looks at the current step's slice, going back
// and changing an earlier answer does NOT invalidate later slices.
func (c *Controller) CanAdvance() bool {
	switch c.wizard.CurrentStep() {
	case StepSize:
		p := c.wizard.Parcel()
		return p != nil && p.Size != "" && p.WeightRange != ""
	case StepRoute:
		r := c.wizard.Route()
		return r != nil && r.Complete()
	case StepHandoverMethod:
		h := c.wizard.Handover()
		if h == nil || !h.Valid() {
			return false
		}
		if h.Method == models.HandoverPickup {
			d := h.PickupDetails
			return ValidateRequired(d.Landmark) && ValidatePhoneNumber(d.Phone) && d.Timing != ""
		}
		return h.Method == models.HandoverDropoff
	case StepSender:
		s := c.wizard.Sender()
		return s != nil && ValidateName(s.Name) && ValidatePhoneNumber(s.Phone)
	case StepRecipient:
		r := c.wizard.Recipient()
		return r != nil && ValidateName(r.Name) && ValidatePhoneNumber(r.Phone)
	case StepSummary:
		// Pay is gated on the selected agent, everything else was
		// already gated by the earlier steps.
		h := c.wizard.Handover()
		return h != nil && h.SelectedAgent != nil
	case StepSecureHandover:
		return true
	}
	return false
}

// Pay runs the commit from the summary step and advances to the secure
// handover screen on success. On failure the cursor does not move and
// the wizard keeps all its data, so the user can simply retry.
//
// The wizard is NOT reset here: the secure handover screen still needs
// the codes and the shipment details. Complete and Close own the reset.
func (c *Controller) Pay(ctx context.Context) error {
	if c.wizard.CurrentStep() != StepSummary {
		return ErrWrongStep
	}
	if err := c.commit(ctx); err != nil {
		return err
	}
	c.wizard.SetCurrentStep(StepSecureHandover)
	return nil
}

// Complete finishes the flow from the terminal step and clears the
// wizard for the next shipment.
func (c *Controller) Complete() error {
	if c.wizard.CurrentStep() != StepSecureHandover {
		return ErrWrongStep
	}
	c.wizard.Reset()
	return nil
}
