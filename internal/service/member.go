package service

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/maska/internal/model"
	"github.com/deppfellow/maska/internal/repository"
	"github.com/deppfellow/maska/internal/sqlerr"
	"github.com/rs/zerolog"
)

// MemberService binds the generic gateway to members. Reads and writes are
// straight delegations; the store's constraints are the only enforcement.
type MemberService struct {
	members repository.Gateway[model.Member]
	logger  *zerolog.Logger
}

func NewMemberService(members repository.Gateway[model.Member], logger *zerolog.Logger) *MemberService {
	return &MemberService{
		members: members,
		logger:  logger,
	}
}

func (s *MemberService) Save(ctx context.Context, m model.Member) (model.Member, error) {
	return s.members.Save(ctx, m)
}

func (s *MemberService) Update(ctx context.Context, m model.Member) (model.Member, error) {
	return s.members.Update(ctx, m)
}

func (s *MemberService) Delete(ctx context.Context, m model.Member) (model.Member, error) {
	return s.members.Delete(ctx, m)
}

func (s *MemberService) FindByID(ctx context.Context, id int64) (model.Member, bool, error) {
	return s.members.FindByID(ctx, id)
}

func (s *MemberService) FindAll(ctx context.Context) ([]model.Member, error) {
	return s.members.FindAll(ctx)
}

// SampleMembers returns the five demo members. Licences run one year from
// now.
func SampleMembers(now time.Time) []model.Member {
	expiry := now.AddDate(1, 0, 0)

	return []model.Member{
		model.NewMember("John", "Doe", "PA123456", "American", now, expiry, 889939),
		model.NewMember("Jane", "Doe", "PA123457", "American", now, expiry, 889940),
		model.NewMember("Alice", "Smith", "PA123458", "British", now, expiry, 889941),
		model.NewMember("Bob", "Smith", "PA123459", "British", now, expiry, 889942),
		model.NewMember("Charlie", "Brown", "PA123460", "Canadian", now, expiry, 889943),
	}
}

// Seed saves every sample member whose cin and membership number are both
// unused and reports how many were inserted. Calling it again is a no-op.
//
// A unique violation on save means another writer took the key first; that
// sample counts as present.
func (s *MemberService) Seed(ctx context.Context) (int, error) {
	existing, err := s.members.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list members before seeding: %w", err)
	}

	knownCIN := make(map[string]bool, len(existing))
	knownNumber := make(map[int32]bool, len(existing))
	for _, m := range existing {
		knownCIN[m.CIN] = true
		knownNumber[m.MembershipNumber] = true
	}

	inserted := 0
	for _, sample := range SampleMembers(time.Now()) {
		if knownCIN[sample.CIN] || knownNumber[sample.MembershipNumber] {
			continue
		}
		if _, err := s.members.Save(ctx, sample); err != nil {
			if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
				s.logger.Debug().Err(err).Str("cin", sample.CIN).Msg("sample member already present")
				continue
			}
			return inserted, fmt.Errorf("failed to seed member %s: %w", sample.CIN, err)
		}
		inserted++
	}

	if inserted > 0 {
		s.logger.Info().Int("inserted", inserted).Msg("seeded sample members")
	}

	return inserted, nil
}

// ExpiringWithin lists members whose licence expires in [now, now+window].
func (s *MemberService) ExpiringWithin(ctx context.Context, now time.Time, window time.Duration) ([]model.Member, error) {
	all, err := s.members.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var expiring []model.Member
	for _, m := range all {
		if m.LicenceExpiresWithin(now, window) {
			expiring = append(expiring, m)
		}
	}
	return expiring, nil
}
