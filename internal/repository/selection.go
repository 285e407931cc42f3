package repository

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

// SelectionRepository hands the "book now" choice from the services page to
// the contact form. The selection is single-use: Consume removes it.
type SelectionRepository struct {
	store store.Store
	bus   *bus.Bus
	now   func() time.Time
}

func NewSelectionRepository(st store.Store, b *bus.Bus) *SelectionRepository {
	return &SelectionRepository{store: st, bus: b, now: time.Now}
}

func (r *SelectionRepository) Select(service string, svcType model.ServiceType) error {
	sel := model.ServiceSelection{
		Service:   service,
		Type:      svcType,
		Timestamp: r.now().UnixMilli(),
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	if err := r.store.Set(store.KeySelectedService, data); err != nil {
		return err
	}
	r.bus.Publish(bus.TopicServiceSelected)
	return nil
}

// Consume returns the pending selection, if any, and clears it.
func (r *SelectionRepository) Consume() (*model.ServiceSelection, bool) {
	raw, ok, err := r.store.Get(store.KeySelectedService)
	if err != nil || !ok {
		return nil, false
	}

	var sel model.ServiceSelection
	if err := json.Unmarshal(raw, &sel); err != nil {
		log.Warn().Err(err).Msg("stored service selection unparseable, dropping it")
		r.store.Delete(store.KeySelectedService)
		return nil, false
	}

	r.store.Delete(store.KeySelectedService)
	return &sel, true
}

// SweepStale removes a selection nobody consumed within maxAge. Returns the
// number of records removed (0 or 1).
func (r *SelectionRepository) SweepStale(maxAge time.Duration) (int64, error) {
	raw, ok, err := r.store.Get(store.KeySelectedService)
	if err != nil || !ok {
		return 0, err
	}

	var sel model.ServiceSelection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return 1, r.store.Delete(store.KeySelectedService)
	}
	if r.now().UnixMilli()-sel.Timestamp < maxAge.Milliseconds() {
		return 0, nil
	}
	return 1, r.store.Delete(store.KeySelectedService)
}
