// internal/domain/entity/ownership_history.go
package entity

import (
	"time"
)

// OwnershipHistory is one immutable audit entry written when an update
// changes the owner name on an Rc. RcID is a back-reference only; deleting
// the Rc does not remove its history.
type OwnershipHistory struct {
	ID       string `bson:"_id,omitempty" json:"id,omitempty"`
	RcID     string `bson:"rcId" json:"rcId"`
	RcNumber string `bson:"rcNumber" json:"rcNumber"` // denormalized snapshot

	PreviousOwnerName string `bson:"previousOwnerName" json:"previousOwnerName"`
	NewOwnerName      string `bson:"newOwnerName" json:"newOwnerName"`

	TransferredAt        time.Time `bson:"transferredAt" json:"transferredAt"`
	StolenAtTransfer     *bool     `bson:"stolenAtTransfer,omitempty" json:"stolenAtTransfer,omitempty"`
	SuspiciousAtTransfer *bool     `bson:"suspiciousAtTransfer,omitempty" json:"suspiciousAtTransfer,omitempty"`
}
