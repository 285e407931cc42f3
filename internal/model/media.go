package model

// Image is one uploaded media record. Filename is the remote storage key and
// is only set when the media service accepted the upload; records without it
// have nothing to delete remotely.
type Image struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Name         string `json:"name"`
	Filename     string `json:"filename,omitempty"`
	IsInCarousel bool   `json:"isInCarousel"`
}

// CarouselSlide is the derived shape the hero carousel renders.
type CarouselSlide struct {
	Src   string `json:"src"`
	Alt   string `json:"alt"`
	Title string `json:"title"`
}

// DefaultCarouselSlides is the built-in image set shown whenever no uploaded
// image is marked for the carousel.
func DefaultCarouselSlides() []CarouselSlide {
	return []CarouselSlide{
		{Src: "images/media/Hero3.jpg", Alt: "Diving Experience 1", Title: "Professional Diving"},
		{Src: "images/media/Hero4.jpg", Alt: "Diving Experience 2", Title: "Underwater Adventure"},
		{Src: "images/media/Hero1.jpg", Alt: "Diving Experience 3", Title: "Ocean Exploration"},
		{Src: "images/media/Hero2.jpg", Alt: "Diving Experience 4", Title: "Marine Life Discovery"},
	}
}
