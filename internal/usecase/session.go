package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"FinCompare/internal/domain/models"
	drepo "FinCompare/internal/domain/repository"
)

// ErrBadMessage is returned for session messages that cannot be applied.
var ErrBadMessage = errors.New("bad session message")

// Session holds one client's comparison state. It is owned by a single
// goroutine and is not safe for concurrent use.
type Session struct {
	ID string

	svc    *ComparisonService
	period drepo.Period
	ratios []models.RatioKey

	companies map[models.Slot]*models.SelectedCompany
	data      map[models.Slot]SlotData
}

func NewSession(id string, svc *ComparisonService) *Session {
	return &Session{
		ID:        id,
		svc:       svc,
		period:    drepo.DefaultPeriod(),
		ratios:    models.AllRatioKeys(),
		companies: make(map[models.Slot]*models.SelectedCompany, 2),
		data:      make(map[models.Slot]SlotData, 2),
	}
}

// Apply handles one client message and returns the recomputed comparison.
func (s *Session) Apply(ctx context.Context, msg models.SessionMessage) (*models.Comparison, error) {
	switch msg.Type {
	case models.MsgSelect:
		slot, err := models.ParseSlot(msg.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		if msg.Company == nil || strings.TrimSpace(msg.Company.Symbol) == "" {
			return nil, fmt.Errorf("%w: select needs a company symbol", ErrBadMessage)
		}
		s.Select(ctx, slot, msg.Company)
	case models.MsgClear:
		slot, err := models.ParseSlot(msg.Slot)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		s.Clear(slot)
	case models.MsgRatios:
		keys, err := models.ParseRatioKeys(msg.Ratios)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadMessage, err)
		}
		s.ratios = keys
	case models.MsgPeriod:
		p := drepo.Period(strings.ToLower(strings.TrimSpace(msg.Period)))
		if !drepo.IsValidPeriod(p) {
			return nil, fmt.Errorf("%w: unknown period %q", ErrBadMessage, msg.Period)
		}
		s.SetPeriod(ctx, p)
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrBadMessage, msg.Type)
	}
	return s.Comparison(ctx), nil
}

// Select puts company into slot and replaces that slot's snapshots.
func (s *Session) Select(ctx context.Context, slot models.Slot, company *models.SelectedCompany) {
	c := *company
	c.Symbol = strings.ToUpper(strings.TrimSpace(c.Symbol))
	s.companies[slot] = &c
	s.data[slot] = s.svc.Load(ctx, slot, &c, s.period)
}

// Clear empties slot.
func (s *Session) Clear(slot models.Slot) {
	delete(s.companies, slot)
	delete(s.data, slot)
}

// SetPeriod switches period and reloads every selected slot.
func (s *Session) SetPeriod(ctx context.Context, p drepo.Period) {
	if p == s.period {
		return
	}
	s.period = p
	for slot, c := range s.companies {
		s.data[slot] = s.svc.Load(ctx, slot, c, p)
	}
}

// Comparison recomputes the comparison from the current state.
func (s *Session) Comparison(ctx context.Context) *models.Comparison {
	in := CompareInput{
		CompanyA: s.companies[models.SlotA],
		CompanyB: s.companies[models.SlotB],
		Period:   s.period,
		Ratios:   s.ratios,
	}
	return s.svc.Build(ctx, in, s.data[models.SlotA], s.data[models.SlotB])
}
