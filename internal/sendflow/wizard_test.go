package sendflow

import (
	"testing"

	"github.com/ISABROTHER/DELIVERYAPP/internal/models"
	"github.com/ISABROTHER/DELIVERYAPP/internal/pricing"
)

func TestWizard_StartsEmptyAtStepOne(t *testing.T) {
	w := NewWizard()
	if w.CurrentStep() != 1 {
		t.Fatalf("new wizard should start at step 1, got %d", w.CurrentStep())
	}
	if w.Parcel() != nil || w.Route() != nil || w.Handover() != nil ||
		w.Sender() != nil || w.Recipient() != nil || w.Security() != nil {
		t.Fatal("new wizard should have no slices set")
	}
	if w.TotalPrice() != 0 {
		t.Fatalf("empty wizard should price at 0, got %d", w.TotalPrice())
	}
}

func TestWizard_UpdatesReplaceWholesale(t *testing.T) {
	w := NewWizard()
	w.UpdateParcel(models.ParcelDetails{Size: models.SizeSmall, WeightRange: "1-5kg", Category: "books"})
	w.UpdateParcel(models.ParcelDetails{Size: models.SizeLarge, WeightRange: "10-25kg"})

	p := w.Parcel()
	if p.Size != models.SizeLarge || p.WeightRange != "10-25kg" {
		t.Fatalf("update should replace the whole slice, got %+v", p)
	}
	if p.Category != "" {
		t.Fatal("category from the first update must not survive a wholesale replace")
	}
}

func TestWizard_DerivedPrices(t *testing.T) {
	w := NewWizard()
	w.UpdateParcel(models.ParcelDetails{Size: models.SizeSmall, WeightRange: "1-5kg"})

	if got := w.BasePrice(); got != pricing.BasePriceFor(models.SizeSmall, "1-5kg") {
		t.Fatalf("base price mismatch: %d", got)
	}
	if got := w.PickupFee(); got != 0 {
		t.Fatalf("no handover set yet, fee should be 0, got %d", got)
	}

	w.UpdateHandover(models.Handover{Method: models.HandoverDropoff})
	if got := w.TotalPrice(); got != w.BasePrice() {
		t.Fatalf("dropoff total should equal base, got %d", got)
	}

	w.UpdateHandover(models.Handover{
		Method:        models.HandoverPickup,
		PickupDetails: &models.PickupDetails{Landmark: "Blue gate", Phone: "0244000000", Timing: models.TimingASAP},
	})
	if got := w.TotalPrice(); got != w.BasePrice()+pricing.PickupFeeCents {
		t.Fatalf("pickup total should carry the surcharge, got %d", got)
	}

	// totalPrice == basePrice + pickupFee must hold on every read
	for i := 0; i < 3; i++ {
		if w.TotalPrice() != w.BasePrice()+w.PickupFee() {
			t.Fatal("total price derivation is not stable across reads")
		}
	}
}

func TestWizard_ResetIsIdempotent(t *testing.T) {
	w := NewWizard()
	w.UpdateParcel(models.ParcelDetails{Size: models.SizeMedium, WeightRange: "5-10kg"})
	w.UpdateSender(models.SenderInfo{Name: "Ama Owusu", Phone: "0244000000"})
	w.UpdateSecurity(models.Security{ShipmentCode: "SHP111111", SenderPin: "222222", TrackingID: "TRKAAAAAAAAAA"})
	w.SetCurrentStep(6)

	// calling reset repeatedly must always land in the same empty state
	for i := 0; i < 3; i++ {
		w.Reset()
		if w.CurrentStep() != 1 {
			t.Fatalf("reset #%d: step = %d, want 1", i+1, w.CurrentStep())
		}
		if w.Parcel() != nil || w.Sender() != nil || w.Security() != nil {
			t.Fatalf("reset #%d left slices behind", i+1)
		}
		if w.TotalPrice() != 0 {
			t.Fatalf("reset #%d: price should derive to 0", i+1)
		}
	}
}

func TestWizard_BackwardEditKeepsLaterAnswers(t *testing.T) {
	// Changing an earlier answer does not invalidate later slices.
	w := NewWizard()
	w.UpdateParcel(models.ParcelDetails{Size: models.SizeSmall, WeightRange: "0-1kg"})
	w.UpdateRecipient(models.RecipientInfo{Name: "Kwame Boateng", Phone: "0551234567"})

	w.UpdateParcel(models.ParcelDetails{Size: models.SizeLarge, WeightRange: "10-25kg"})
	if w.Recipient() == nil {
		t.Fatal("re-entering the parcel step must not clear the recipient")
	}
}
