package domain

import "time"

// OfferType represents the kind of reward a special offer grants
type OfferType string

const (
	OfferDiscountPercent OfferType = "discount_percent"
	OfferFixedPrice      OfferType = "fixed_price"
	OfferFreeDrink       OfferType = "free_drink"
	OfferFreeSlot        OfferType = "free_slot"
)

// IsValid returns true for the known offer types
func (t OfferType) IsValid() bool {
	switch t {
	case OfferDiscountPercent, OfferFixedPrice, OfferFreeDrink, OfferFreeSlot:
		return true
	default:
		return false
	}
}

// ConditionType describes when an offer may be used
type ConditionType string

const (
	ConditionNone      ConditionType = "none"
	ConditionBuyXSlots ConditionType = "buy_x_slots"
)

// SpecialOffer is either an admin template or a redeemable instance targeted at one user
type SpecialOffer struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Type             OfferType     `json:"type"`
	Value            float64       `json:"value"`
	StartDate        time.Time     `json:"startDate"`
	EndDate          time.Time     `json:"endDate"`
	TargetUserID     string        `json:"targetUserId,omitempty"`
	ConditionType    ConditionType `json:"conditionType,omitempty"`
	ConditionValue   int           `json:"conditionValue,omitempty"`
	RewardProduct    string        `json:"rewardProduct,omitempty"` // drink name for free_drink
	IsTemplate       bool          `json:"isTemplate,omitempty"`
	Used             bool          `json:"used,omitempty"`
	ParentTemplateID string        `json:"parentTemplateId,omitempty"`
}

// IsActiveAt returns true if now lies inside [StartDate, EndDate]
func (o *SpecialOffer) IsActiveAt(now time.Time) bool {
	return !now.Before(o.StartDate) && !now.After(o.EndDate)
}

// IsEligibleFor returns true if the user may redeem the offer at the given moment.
// Templates are never redeemable; untargeted non-template offers are open to everyone.
func (o *SpecialOffer) IsEligibleFor(userID string, now time.Time) bool {
	if o.Used || !o.IsActiveAt(now) {
		return false
	}
	targeted := o.TargetUserID != "" && o.TargetUserID == userID
	global := o.TargetUserID == "" && !o.IsTemplate
	return targeted || global
}

// FreeSlots returns the number of free slots the offer grants
func (o *SpecialOffer) FreeSlots() int {
	if o.Type != OfferFreeSlot {
		return 0
	}
	return int(o.Value)
}
