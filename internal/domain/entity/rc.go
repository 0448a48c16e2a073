// internal/domain/entity/rc.go
package entity

import (
	"time"
)

// Rc represents one vehicle Registration Certificate document.
// Stolen and Suspicious are pointers on purpose: an absent flag is not
// the same as an explicit false, and filters must keep the distinction.
type Rc struct {
	ID             string   `bson:"_id,omitempty" json:"id,omitempty"`
	RcNumber       string   `bson:"rcNumber" json:"rcNumber"` // unique index
	OwnersCount    int      `bson:"ownersCount" json:"ownersCount"`
	PreviousOwners []string `bson:"previousOwners" json:"previousOwners"`

	Owner            Owner            `bson:"owner" json:"owner"`
	VehicleInfo      VehicleInfo      `bson:"vehicleInfo" json:"vehicleInfo"`
	RegistrationInfo RegistrationInfo `bson:"registrationInfo" json:"registrationInfo"`
	Insurance        *Insurance       `bson:"insurance,omitempty" json:"insurance,omitempty"`
	Puc              *Puc             `bson:"puc,omitempty" json:"puc,omitempty"`

	ChassisNumber     string `bson:"chassisNumber" json:"chassisNumber"`
	EngineNumber      string `bson:"engineNumber" json:"engineNumber"`
	RegistrationState string `bson:"registrationState" json:"registrationState"`

	Stolen     *bool `bson:"stolen,omitempty" json:"stolen,omitempty"`
	Suspicious *bool `bson:"suspicious,omitempty" json:"suspicious,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Owner holds the current keeper of the vehicle.
type Owner struct {
	Name         string `bson:"name" json:"name"`
	Phone        string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string `bson:"email,omitempty" json:"email,omitempty"`
	Address      string `bson:"address,omitempty" json:"address,omitempty"`
	AadhaarLast4 string `bson:"aadhaarLast4,omitempty" json:"aadhaarLast4,omitempty"`
}

// VehicleInfo holds the technical description of the vehicle.
type VehicleInfo struct {
	Type            string `bson:"type,omitempty" json:"type,omitempty"`
	Make            string `bson:"make" json:"make"`
	Model           string `bson:"model" json:"model"`
	Variant         string `bson:"variant,omitempty" json:"variant,omitempty"`
	FuelType        string `bson:"fuelType,omitempty" json:"fuelType,omitempty"`
	Color           string `bson:"color,omitempty" json:"color,omitempty"`
	ManufactureYear int    `bson:"manufactureYear,omitempty" json:"manufactureYear,omitempty"`
}

// RegistrationInfo holds registration validity.
type RegistrationInfo struct {
	RegistrationDate time.Time `bson:"registrationDate,omitempty" json:"registrationDate,omitempty"`
	ValidTill        time.Time `bson:"validTill,omitempty" json:"validTill,omitempty"`
	Active           bool      `bson:"active" json:"active"`
}

// Insurance is an optional validity-dated policy reference.
type Insurance struct {
	Provider     string    `bson:"provider,omitempty" json:"provider,omitempty"`
	PolicyNumber string    `bson:"policyNumber,omitempty" json:"policyNumber,omitempty"`
	ValidTill    time.Time `bson:"validTill,omitempty" json:"validTill,omitempty"`
}

// Puc is the Pollution Under Control certificate reference.
type Puc struct {
	CertificateNumber string    `bson:"certificateNumber,omitempty" json:"certificateNumber,omitempty"`
	ValidTill         time.Time `bson:"validTill,omitempty" json:"validTill,omitempty"`
}

// IsStolen reports the stolen flag treating an absent value as false.
func (r *Rc) IsStolen() bool {
	return r.Stolen != nil && *r.Stolen
}

// IsSuspicious reports the suspicious flag treating an absent value as false.
func (r *Rc) IsSuspicious() bool {
	return r.Suspicious != nil && *r.Suspicious
}
