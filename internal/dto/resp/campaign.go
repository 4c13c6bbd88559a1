package resp

import v1 "loyaltyflow/pkg/api/v1"

type ListCampaignTypesResponse struct {
	Data []v1.CampaignType `json:"data"`
}

type GetCampaignTypeResponse struct {
	*v1.CampaignType
}

type EvaluateResponse struct {
	v1.Decision
}

type ErrorResponse struct {
	Error string `json:"error"`
}
