package access

import (
	"context"
	"strings"

	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/services/naming"
)

// Lookup outcomes recorded in Attempt
const (
	OutcomeHit        = "hit"
	OutcomeNotPresent = "not_present"
	OutcomeInactive   = "inactive"
	OutcomeFailed     = "failed"
)

// Attempt is one key tried against one collection
type Attempt struct {
	Collection string `json:"collection"`
	Key        string `json:"key"`
	Outcome    string `json:"outcome"`
	Error      string `json:"error,omitempty"`
}

// Resolution is the outcome of the lookup chain for one input
type Resolution struct {
	Input         string
	Key           string // matched document key, empty when guessed
	Collection    string // collection the match came from
	CanonicalName string
	DisplayName   string
	Memo1         string
	Memo2         string
	Photo         model.PhotoRef
	Found         bool
	Aliased       bool // canonical name came from the alias table
	PhotoTier     Tier
	Attempts      []Attempt
}

// ResolveAccessCode maps raw input to a record. Every naming variant is
// tried against the access code collection first, then against the
// participants collection. A miss still yields a guessed canonical name.
func (s *Service) ResolveAccessCode(ctx context.Context, input string) (*Resolution, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, model.ErrInvalidInput
	}

	res := &Resolution{Input: input}
	variants := naming.Variants(input)

	for _, key := range variants {
		code, err := s.repo.AccessCode(ctx, key)
		if err != nil {
			if stop := s.record(ctx, res, model.CollectionAccessCodes, key, err); stop != nil {
				return nil, stop
			}
			continue
		}
		if !code.Active {
			res.Attempts = append(res.Attempts, Attempt{Collection: model.CollectionAccessCodes, Key: key, Outcome: OutcomeInactive})
			continue
		}
		res.Attempts = append(res.Attempts, Attempt{Collection: model.CollectionAccessCodes, Key: key, Outcome: OutcomeHit})
		res.found(model.CollectionAccessCodes, code.ID, code.DisplayName, code.Photo)
		res.Memo1 = code.Memo1
		res.Memo2 = code.Memo2
		break
	}

	if !res.Found {
		for _, key := range variants {
			p, err := s.repo.Participant(ctx, key)
			if err != nil {
				if stop := s.record(ctx, res, model.CollectionParticipants, key, err); stop != nil {
					return nil, stop
				}
				continue
			}
			if !p.Active {
				res.Attempts = append(res.Attempts, Attempt{Collection: model.CollectionParticipants, Key: key, Outcome: OutcomeInactive})
				continue
			}
			res.Attempts = append(res.Attempts, Attempt{Collection: model.CollectionParticipants, Key: key, Outcome: OutcomeHit})
			res.found(model.CollectionParticipants, p.ID, p.DisplayName, p.Photo)
			break
		}
	}

	if res.Found {
		if res.DisplayName == "" {
			res.DisplayName = s.aliases.Canonical(res.Key)
		}
		res.CanonicalName = res.DisplayName
		s.metrics.AccessResolved(OutcomeFound)
		return res, nil
	}

	canonical, aliased := s.aliases.Lookup(input)
	if !aliased {
		canonical = naming.Capitalize(input)
	}
	res.CanonicalName = canonical
	res.DisplayName = canonical
	res.Aliased = aliased
	res.Photo = model.PhotoRef{Kind: model.RefAbsent}
	s.metrics.AccessResolved(OutcomeGuessed)
	return res, nil
}

func (r *Resolution) found(collection, key, displayName string, photo model.PhotoRef) {
	r.Found = true
	r.Collection = collection
	r.Key = key
	r.DisplayName = displayName
	r.Photo = photo
}

// record notes a failed lookup and returns non-nil only when the chain must stop
func (s *Service) record(ctx context.Context, res *Resolution, collection, key string, err error) error {
	if stop := s.degraded(ctx, collection, key, err); stop != nil {
		return stop
	}
	attempt := Attempt{Collection: collection, Key: key, Outcome: OutcomeNotPresent}
	if !isNotPresent(err) {
		attempt.Outcome = OutcomeFailed
		attempt.Error = err.Error()
	}
	res.Attempts = append(res.Attempts, attempt)
	return nil
}
