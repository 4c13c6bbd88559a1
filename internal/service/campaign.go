package service

import (
	"context"
	"errors"
	"time"

	"loyaltyflow/internal/metrics"
	v1 "loyaltyflow/pkg/api/v1"
	"loyaltyflow/pkg/campaign"
	"loyaltyflow/pkg/logger"

	"go.uber.org/zap"
)

// CampaignService answers catalog lookups and qualification questions on behalf
// of the reward-issuance system.
type CampaignService struct {
	registry *campaign.Registry
	observer metrics.EvaluationObserver
	now      func() time.Time
	loc      *time.Location
}

type Option func(*CampaignService)

// WithClock overrides the time source used for predicates that read the current date.
func WithClock(now func() time.Time) Option {
	return func(s *CampaignService) { s.now = now }
}

// WithLocation sets the location "now" is expressed in before it reaches a predicate.
func WithLocation(loc *time.Location) Option {
	return func(s *CampaignService) { s.loc = loc }
}

func NewCampaignService(registry *campaign.Registry, observer metrics.EvaluationObserver, opts ...Option) *CampaignService {
	s := &CampaignService{
		registry: registry,
		observer: observer,
		now:      time.Now,
		loc:      time.UTC,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *CampaignService) List(ctx context.Context) []v1.CampaignType {
	descs := s.registry.List()
	res := make([]v1.CampaignType, 0, len(descs))
	for _, d := range descs {
		res = append(res, v1.NewCampaignType(d))
	}
	return res
}

func (s *CampaignService) Get(ctx context.Context, id campaign.ID) (*v1.CampaignType, error) {
	d, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	ct := v1.NewCampaignType(d)
	return &ct, nil
}

// Evaluate decides whether in qualifies under the campaign type id.
// Types without a predicate either ask for human review (when they carry a
// question) or are always eligible.
func (s *CampaignService) Evaluate(ctx context.Context, id campaign.ID, in campaign.Input) (v1.Decision, error) {
	d, err := s.lookup(id)
	if err != nil {
		return v1.Decision{}, err
	}

	now := s.now().In(s.loc)
	decision := v1.Decision{CampaignType: string(d.ID), EvaluatedAt: now}
	outcome := metrics.OutcomeRejected

	switch {
	case d.Automatic():
		if got := campaign.InputType(in); got != d.ID {
			logger.Warn("evaluation input does not match campaign type",
				zap.String("campaign_type", string(d.ID)),
				zap.String("input_type", string(got)),
				zap.String("operator", GetOperator(ctx)))
		}
		decision.Qualified = d.Requirement(now, in)
	case d.NeedsReview():
		decision.NeedsReview = true
		decision.Question = d.RenderQuestion(campaign.Values(in))
	default:
		decision.Qualified = true
	}

	switch {
	case decision.NeedsReview:
		outcome = metrics.OutcomeNeedsReview
	case decision.Qualified:
		outcome = metrics.OutcomeQualified
	}
	s.observer.RecordEvaluation(string(d.ID), outcome)

	logger.Debug("campaign type evaluated",
		zap.String("campaign_type", string(d.ID)),
		zap.String("outcome", outcome),
		zap.String("operator", GetOperator(ctx)))

	return decision, nil
}

func (s *CampaignService) lookup(id campaign.ID) (campaign.Descriptor, error) {
	d, err := s.registry.Lookup(id)
	if errors.Is(err, campaign.ErrNotFound) {
		s.observer.RecordLookupMiss()
	}
	return d, err
}

func (s *CampaignService) Health(ctx context.Context) error {
	if s.registry.Len() == 0 {
		return errors.New("campaign type catalog is empty")
	}
	return nil
}
