package repository

import (
	"strings"
	"sync"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

// ServicesRepository manages the bookable services collection. Writers are
// serialized so two concurrent edits can't drop each other's changes.
type ServicesRepository struct {
	content *Content[[]model.Service]
	mu      sync.Mutex
}

func NewServicesRepository(st store.Store, b *bus.Bus) *ServicesRepository {
	return &ServicesRepository{
		content: NewContent(st, b, store.KeyServices, bus.TopicServicesUpdated, model.DefaultServices),
	}
}

// List returns every service, active or not. Active-only filtering is a
// read-time concern of the public consumer, not enforced here.
func (r *ServicesRepository) List() []model.Service {
	return r.content.Load()
}

// Create validates draft and appends it with the next id (max existing + 1).
func (r *ServicesRepository) Create(draft model.ServiceDraft) (*model.Service, error) {
	normalized, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	services := r.content.Load()
	maxID := 0
	for _, s := range services {
		if s.ID > maxID {
			maxID = s.ID
		}
	}

	svc := normalized.toService(maxID + 1)
	services = append(services, svc)
	if err := r.content.Save(services); err != nil {
		return nil, apperrors.Storage(err)
	}
	return &svc, nil
}

// Update replaces the service matching id. The id itself is immutable.
func (r *ServicesRepository) Update(id int, draft model.ServiceDraft) (*model.Service, error) {
	normalized, err := normalizeDraft(draft)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	services := r.content.Load()
	for i, s := range services {
		if s.ID == id {
			svc := normalized.toService(id)
			services[i] = svc
			if err := r.content.Save(services); err != nil {
				return nil, apperrors.Storage(err)
			}
			return &svc, nil
		}
	}
	return nil, apperrors.NotFound("Service")
}

func (r *ServicesRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	services := r.content.Load()
	for i, s := range services {
		if s.ID == id {
			services = append(services[:i], services[i+1:]...)
			if err := r.content.Save(services); err != nil {
				return apperrors.Storage(err)
			}
			return nil
		}
	}
	return apperrors.NotFound("Service")
}

// ToggleActive flips the active flag only, leaving every other field alone.
func (r *ServicesRepository) ToggleActive(id int) (*model.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	services := r.content.Load()
	for i := range services {
		if services[i].ID == id {
			services[i].Active = !services[i].Active
			if err := r.content.Save(services); err != nil {
				return nil, apperrors.Storage(err)
			}
			return &services[i], nil
		}
	}
	return nil, apperrors.NotFound("Service")
}

type normalizedDraft struct {
	model.ServiceDraft
}

func (d normalizedDraft) toService(id int) model.Service {
	return model.Service{
		ID:          id,
		Type:        d.Type,
		Title:       d.Title,
		Price:       d.Price,
		Duration:    d.Duration,
		Description: d.Description,
		Includes:    d.Includes,
		Active:      d.Active,
	}
}

// normalizeDraft trims the text fields, drops blank includes entries, and
// rejects the draft if any required field ends up empty.
func normalizeDraft(draft model.ServiceDraft) (*normalizedDraft, error) {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Price = strings.TrimSpace(draft.Price)
	draft.Duration = strings.TrimSpace(draft.Duration)
	draft.Description = strings.TrimSpace(draft.Description)

	switch {
	case draft.Title == "":
		return nil, apperrors.MissingRequired("title")
	case draft.Price == "":
		return nil, apperrors.MissingRequired("price")
	case draft.Duration == "":
		return nil, apperrors.MissingRequired("duration")
	case draft.Description == "":
		return nil, apperrors.MissingRequired("description")
	}

	if draft.Type != model.ServiceTypePackage && draft.Type != model.ServiceTypeCourse {
		return nil, apperrors.InvalidInput("type", "must be package or course")
	}

	includes := make([]string, 0, len(draft.Includes))
	for _, item := range draft.Includes {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			includes = append(includes, trimmed)
		}
	}
	if len(includes) == 0 {
		return nil, apperrors.ValidationError("includes must have at least one non-empty entry")
	}
	draft.Includes = includes

	return &normalizedDraft{draft}, nil
}
