package repositories

import "context"

// Slot names used by the application. They match the keys written by the
// browser-only version of the dashboard so old payloads import unchanged.
const (
	SlotUser     = "user"
	SlotGoats    = "goats"
	SlotCheckins = "checkins"
	SlotGoatsSeq = "goats_seq"

	// SlotSigningKey holds the generated session signing key when JWT_SECRET is unset.
	SlotSigningKey = "signing_key"
)

// SlotReader defines read operations on named JSON slots.
type SlotReader interface {
	// Load returns the payload last saved under slot.
	// It returns apperrors.ErrSlotAbsent when nothing was ever saved.
	Load(ctx context.Context, slot string) ([]byte, error)
}

// SlotWriter defines write operations on named JSON slots.
type SlotWriter interface {
	// Save overwrites slot with payload in a single write.
	Save(ctx context.Context, slot string, payload []byte) error

	// Delete removes slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context, slot string) error
}

// SlotStore combines all slot operations. Each backend implements it.
type SlotStore interface {
	SlotReader
	SlotWriter
}
