package v1

import (
	"time"

	"loyaltyflow/pkg/campaign"
)

// CampaignType is the display form of a campaign type descriptor.
type CampaignType struct {
	ID                string                      `json:"id"`
	Name              string                      `json:"name"`
	Description       string                      `json:"description"`
	Question          string                      `json:"question,omitempty"`
	ValueDescriptions []campaign.ValueDescription `json:"value_descriptions,omitempty"`
	Automatic         bool                        `json:"automatic"`
}

func NewCampaignType(d campaign.Descriptor) CampaignType {
	return CampaignType{
		ID:                string(d.ID),
		Name:              d.Name,
		Description:       d.Description,
		Question:          d.Question,
		ValueDescriptions: d.ValueDescriptions,
		Automatic:         d.Automatic(),
	}
}

// EvaluationContext is everything a reward-issuance system knows when it asks
// whether a purchase qualifies. Fields a campaign type does not read are ignored.
type EvaluationContext struct {
	Values       []string              `json:"values"`
	User         campaign.User         `json:"user"`
	Purchase     *campaign.Purchase    `json:"purchase,omitempty"`
	CustomerData campaign.CustomerData `json:"customer_data"`
	Campaign     CampaignWindow        `json:"campaign"`
}

type CampaignWindow struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Input narrows the context to the variant the given campaign type reads.
func (c EvaluationContext) Input(id campaign.ID) campaign.Input {
	switch id {
	case campaign.IsPurchaseGreaterThan:
		return campaign.PurchaseThresholdInput{Values: c.Values}
	case campaign.IsBirthday:
		return campaign.BirthdayInput{User: c.User}
	case campaign.Stamps:
		return campaign.StampsInput{
			Values:       c.Values,
			Purchase:     c.Purchase,
			CustomerData: c.CustomerData,
			Campaign:     campaign.Campaign{Start: c.Campaign.Start, End: c.Campaign.End},
		}
	default:
		return campaign.BasicInput{}
	}
}

// Decision is the answer to an evaluation. When NeedsReview is set, Qualified is
// meaningless and Question has to be put to a human.
type Decision struct {
	CampaignType string    `json:"campaign_type"`
	Qualified    bool      `json:"qualified"`
	NeedsReview  bool      `json:"needs_review"`
	Question     string    `json:"question,omitempty"`
	EvaluatedAt  time.Time `json:"evaluated_at"`
}
