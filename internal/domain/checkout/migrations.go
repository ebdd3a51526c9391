// internal/domain/checkout/migrations.go
package checkout

import (
	"github.com/your-org/storefront-gateway/internal/commerce"
)

// schemaVersion is the persisted record layout version. Records at older
// versions run through the migration chain on load.
const schemaVersion = 2

// persistedRecord is the durable slice of a device's checkout state
type persistedRecord struct {
	Version       int                `json:"version"`
	Checkout      *commerce.Checkout `json:"checkout"`
	PaymentMethod *PaymentMethod     `json:"payment_method"`
}

// migrations is the ordered chain of pure record transforms. Index i migrates
// a record from version i to version i+1.
var migrations = []func(persistedRecord) persistedRecord{
	// v0 -> v1: the v0 layout stored a checkout shape incompatible with the
	// current session projection; drop it and start fresh.
	func(r persistedRecord) persistedRecord {
		r.Checkout = nil
		return r
	},
	// v1 -> v2: payment hints predating the method split carry no method
	// field; reset them so the device reselects.
	func(r persistedRecord) persistedRecord {
		r.PaymentMethod = nil
		return r
	},
}

// migrate brings a persisted record up to the current schema version
func migrate(record persistedRecord) persistedRecord {
	for record.Version < schemaVersion && record.Version < len(migrations) {
		record = migrations[record.Version](record)
		record.Version++
	}
	return record
}
