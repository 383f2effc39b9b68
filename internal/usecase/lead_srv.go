package usecase

import (
	"context"
	"fmt"

	"property-booking/internal/relay"
	"property-booking/pkg/metrics"

	"go.uber.org/zap"
)

// LeadService relays website form submissions to the CRM.
type LeadService interface {
	Submit(ctx context.Context, form string, payload map[string]any) error
}

type leadService struct {
	forms     map[string]relay.Form
	forwarder Forwarder
	log       *zap.Logger
}

func NewLeadService(forms map[string]relay.Form, forwarder Forwarder, log *zap.Logger) LeadService {
	return &leadService{
		forms:     forms,
		forwarder: forwarder,
		log:       log.With(zap.String("service", "lead")),
	}
}

func (s *leadService) Submit(ctx context.Context, form string, payload map[string]any) error {
	target, ok := s.forms[form]
	if !ok {
		return fmt.Errorf("unknown form %q", form)
	}

	body := target.Reshape(payload)
	s.log.Info("Relaying form submission",
		zap.String("form", form),
		zap.Any("payload", body),
	)

	if err := s.forwarder.Forward(ctx, target.URL, body); err != nil {
		metrics.IncRelay(form, "failed")
		s.log.Error("Form relay failed", zap.Error(err), zap.String("form", form))
		return fmt.Errorf("forward %s submission: %w", form, err)
	}

	metrics.IncRelay(form, "ok")
	s.log.Info("Form relayed", zap.String("form", form))
	return nil
}
