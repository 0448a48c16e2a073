package templates

import (
	"fmt"
)

// Subjects for the two outbound owner notifications.
const (
	SubjectRcCreated         = "RC Registered Successfully"
	SubjectOwnershipTransfer = "RC Ownership Transfer Complete"
)

// RcCreatedBody renders the plain-text body sent after a successful
// registration.
func RcCreatedBody(ownerName, rcNumber string) string {
	return fmt.Sprintf(`Hello %s,

Your vehicle registration has been successfully added.
RC Number: %s

Thank you,
RC Verification System
`, ownerName, rcNumber)
}

// OwnershipTransferBody renders the plain-text body sent to the new owner
// after a transfer is recorded.
func OwnershipTransferBody(ownerName, rcNumber string) string {
	return fmt.Sprintf(`Hello %s,

The ownership of the vehicle with RC Number %s
has been successfully updated under your name.

Thank you,
RC Verification System
`, ownerName, rcNumber)
}
