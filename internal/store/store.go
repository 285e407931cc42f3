// Package store is the persistence layer every content repository and the
// session manager share: a small synchronous key-value store with one JSON
// value per key. Each owner uses a disjoint key, so there is no key-level
// contention; cross-process writers are last-write-wins.
package store

import "errors"

// MaxValueBytes caps a single stored value, mirroring the origin-storage
// quota the site's content was sized against.
const MaxValueBytes = 5 << 20

var ErrQuotaExceeded = errors.New("store: value exceeds quota")

// Well-known keys. Keep these stable: persisted data has no migration path
// beyond the version envelope written around each value.
const (
	KeyHeroContent     = "heroContent"
	KeySiteContent     = "siteContent"
	KeyContactInfo     = "contactInfo"
	KeyServices        = "adminServices"
	KeyUploadedImages  = "adminUploadedImages"
	KeySelectedService = "selectedService"
	KeyAdminSession    = "admin_auth"
)

// Store is a synchronous key-value store. Get reports presence explicitly so
// callers can distinguish "absent" from an empty value.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
