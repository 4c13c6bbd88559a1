package req

type CampaignTypeURI struct {
	ID string `uri:"id" binding:"required"`
}
