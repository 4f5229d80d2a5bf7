package domain

import "time"

// PortalLink grants a client read access to their company's audits and
// proposals. The share token and passcode are stored hashed; the raw
// values exist only in the link handed to the client.
type PortalLink struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	CompanyID    string    `bson:"company_id" json:"companyId"`
	TokenHash    string    `bson:"token_hash" json:"-"`
	PasscodeHash string    `bson:"passcode_hash,omitempty" json:"-"`
	ExpiresAt    time.Time `bson:"expires_at" json:"expiresAt"`
	Revoked      bool      `bson:"revoked,omitempty" json:"revoked"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
