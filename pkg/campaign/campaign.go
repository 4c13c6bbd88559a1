package campaign

import "time"

type ID string

const (
	BasicCampaign         ID = "basicCampaign"
	IsPurchaseGreaterThan ID = "isPurchaseGreaterThan"
	IsBirthday            ID = "isBirthday"
	Stamps                ID = "stamps"
)

type ValueType string

const (
	TypeNumber ValueType = "number"
)

// ValueDescription describes one business-supplied parameter of a campaign type.
type ValueDescription struct {
	Name string    `json:"name"`
	Type ValueType `json:"type"`
}

// Requirement decides whether the input qualifies for a reward at time now.
// Implementations must be pure.
type Requirement func(now time.Time, in Input) bool

// Descriptor is one entry of the campaign type catalog.
type Descriptor struct {
	ID                ID                 `json:"id"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Question          string             `json:"question,omitempty"`
	ValueDescriptions []ValueDescription `json:"value_descriptions,omitempty"`
	Requirement       Requirement        `json:"-"`
}

// Automatic reports whether the qualification decision can be computed without a human.
func (d Descriptor) Automatic() bool {
	return d.Requirement != nil
}

// NeedsReview reports whether a human has to answer Question to decide qualification.
func (d Descriptor) NeedsReview() bool {
	return d.Requirement == nil && d.Question != ""
}

// Input is the evaluation context handed to a Requirement. Each campaign type
// has its own variant carrying only the fields its predicate reads.
type Input interface {
	campaignType() ID
}

type User struct {
	Birthday *time.Time `json:"birthday,omitempty"`
}

type Purchase struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerData is the evaluated customer's history with one business.
type CustomerData struct {
	Purchases []Purchase `json:"purchases"`
}

// Campaign is the configured instance being evaluated. A nil End means open-ended.
type Campaign struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

type BasicInput struct{}

func (BasicInput) campaignType() ID { return BasicCampaign }

// PurchaseThresholdInput carries the business-supplied amount shown in the review question.
type PurchaseThresholdInput struct {
	Values []string
}

func (PurchaseThresholdInput) campaignType() ID { return IsPurchaseGreaterThan }

type BirthdayInput struct {
	User User
}

func (BirthdayInput) campaignType() ID { return IsBirthday }

type StampsInput struct {
	Values       []string
	Purchase     *Purchase
	CustomerData CustomerData
	Campaign     Campaign
}

func (StampsInput) campaignType() ID { return Stamps }

// Values returns the business-supplied parameter values carried by in, if any.
func Values(in Input) []string {
	switch v := in.(type) {
	case PurchaseThresholdInput:
		return v.Values
	case StampsInput:
		return v.Values
	default:
		return nil
	}
}

// InputType returns the campaign type an input variant belongs to.
func InputType(in Input) ID {
	if in == nil {
		return ""
	}
	return in.campaignType()
}
