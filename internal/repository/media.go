package repository

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kulhudhufushidive/site-server/internal/bus"
	apperrors "github.com/kulhudhufushidive/site-server/internal/errors"
	"github.com/kulhudhufushidive/site-server/internal/media"
	"github.com/kulhudhufushidive/site-server/internal/model"
	"github.com/kulhudhufushidive/site-server/internal/store"
)

// MediaRepository owns the uploaded image records and the carousel derived
// from them. File bytes live with the media storage collaborator; records
// live here.
type MediaRepository struct {
	content *Content[[]model.Image]
	storage media.Storage
	mu      sync.Mutex
	now     func() time.Time
}

func NewMediaRepository(st store.Store, b *bus.Bus, storage media.Storage) *MediaRepository {
	return &MediaRepository{
		content: NewContent(st, b, store.KeyUploadedImages, bus.TopicCarouselUpdated, func() []model.Image {
			return []model.Image{}
		}),
		storage: storage,
		now:     time.Now,
	}
}

func (r *MediaRepository) List() []model.Image {
	return r.content.Load()
}

// Upload hands the bytes to the media storage and records the result. A
// storage failure fails only this file; batch callers keep going with the
// rest of their files.
func (r *MediaRepository) Upload(ctx context.Context, originalName string, src io.Reader) (*model.Image, error) {
	stored, err := r.storage.Save(ctx, originalName, src)
	if err != nil {
		return nil, apperrors.UploadFailed(originalName, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	img := model.Image{
		ID:           r.newID(),
		URL:          stored.URL,
		Name:         originalName,
		Filename:     stored.Filename,
		IsInCarousel: false,
	}

	images := append(r.content.Load(), img)
	if err := r.content.Save(images); err != nil {
		return nil, apperrors.Storage(err)
	}
	return &img, nil
}

// ToggleCarousel flips whether the image participates in the hero carousel.
func (r *MediaRepository) ToggleCarousel(id int64) (*model.Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	images := r.content.Load()
	for i := range images {
		if images[i].ID == id {
			images[i].IsInCarousel = !images[i].IsInCarousel
			if err := r.content.Save(images); err != nil {
				return nil, apperrors.Storage(err)
			}
			return &images[i], nil
		}
	}
	return nil, apperrors.NotFound("Image")
}

// Remove drops the record. The remote file is deleted best-effort first: a
// storage failure is logged and the record still goes away, so the local
// state never hangs on to an image the admin removed.
func (r *MediaRepository) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	images := r.content.Load()
	for i, img := range images {
		if img.ID != id {
			continue
		}
		if img.Filename != "" {
			if err := r.storage.Delete(ctx, img.Filename); err != nil {
				log.Warn().Err(err).Str("filename", img.Filename).Msg("failed to delete media file, removing record anyway")
			}
		}
		images = append(images[:i], images[i+1:]...)
		if err := r.content.Save(images); err != nil {
			return apperrors.Storage(err)
		}
		return nil
	}
	return apperrors.NotFound("Image")
}

// CarouselSlides derives the carousel from images marked for it, in record
// order. The result is never nil: an empty slice tells the presentation
// layer to fall back to the built-in slides.
func (r *MediaRepository) CarouselSlides() []model.CarouselSlide {
	images := r.content.Load()
	slides := make([]model.CarouselSlide, 0, len(images))
	for _, img := range images {
		if !img.IsInCarousel {
			continue
		}
		slides = append(slides, model.CarouselSlide{
			Src:   img.URL,
			Alt:   fmt.Sprintf("Diving experience - %s", img.Name),
			Title: "",
		})
	}
	return slides
}

// newID builds a time-plus-random id, unique enough for a single admin's
// media library.
func (r *MediaRepository) newID() int64 {
	return r.now().UnixMilli()*1000 + rand.Int63n(1000)
}
