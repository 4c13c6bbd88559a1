package campaign

var defaultRegistry = mustRegistry(
	Descriptor{
		ID:          BasicCampaign,
		Name:        "Basic Campaign",
		Description: "Default campaign type without any special functionality.",
	},
	Descriptor{
		ID:          IsPurchaseGreaterThan,
		Name:        "Purchase Price",
		Description: "If the total cost of the purchase is greater than X",
		// the price is unknown to us, a human answers instead
		Question: "Is the price of the purchase more than {0}?",
		ValueDescriptions: []ValueDescription{
			{Name: "Purchase amount", Type: TypeNumber},
		},
	},
	Descriptor{
		ID:          IsBirthday,
		Name:        "Customer Birthday",
		Description: "If it's the customer's birthday!",
		Requirement: birthdayRequirement,
	},
	Descriptor{
		ID:          Stamps,
		Name:        "Stamp card",
		Description: "Scan the user's QR code every time they make a purchase. After X scans they earn the reward.",
		ValueDescriptions: []ValueDescription{
			{Name: "Stamps to earn the reward", Type: TypeNumber},
		},
		Requirement: stampsRequirement,
	},
)

// Default returns the built-in campaign type catalog.
func Default() *Registry {
	return defaultRegistry
}

func mustRegistry(descs ...Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic("campaign catalog is invalid: " + err.Error())
	}
	return r
}
