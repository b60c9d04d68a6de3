package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the account model. PasswordHash is never serialized and is only
// selected by queries that explicitly need it.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Product is the catalog model. Price holds ciphertext produced by the
// PriceCipher; OriginalPrice keeps the plaintext amount for internal
// reference and is excluded from default reads.
type Product struct {
	bun.BaseModel    `bun:"table:products,alias:prd"`
	ID               uuid.UUID      `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name             string         `bun:"name,notnull" json:"name,omitempty"`
	Description      string         `bun:"description,notnull" json:"description,omitempty"`
	ImageURL         string         `bun:"image_url,notnull" json:"image_url,omitempty"`
	Price            string         `bun:"price,notnull" json:"-"`
	OriginalPrice    float64        `bun:"original_price" json:"-"`
	TechnicalDetails map[string]any `bun:"technical_details" json:"technical_details,omitempty"`
	CreatedAt        *time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt        *time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// LeadEmail is a write-once marketing record captured during the PDF
// download flow. It references a product but is unrelated to User.
type LeadEmail struct {
	bun.BaseModel `bun:"table:lead_emails,alias:lead"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull" json:"email,omitempty"`
	ProductID     uuid.UUID  `bun:"product_id,notnull,type:uuid" json:"product_id,omitempty"`
	DownloadedAt  *time.Time `bun:"downloaded_at,nullzero,default:current_timestamp" json:"downloaded_at,omitempty"`
	IPAddress     string     `bun:"ip_address" json:"ip_address,omitempty"`
	UserAgent     string     `bun:"user_agent" json:"user_agent,omitempty"`
}

// ProductView is the response shape for catalog reads. Price is a pointer so
// anonymous responses omit the key entirely rather than sending null; an
// unauthenticated client cannot distinguish "no price" from "has price".
type ProductView struct {
	ID               uuid.UUID      `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description"`
	ImageURL         string         `json:"image_url,omitempty"`
	Price            *float64       `json:"price,omitempty"`
	TechnicalDetails map[string]any `json:"technical_details,omitempty"`
	CreatedAt        *time.Time     `json:"created_at,omitempty"`
	UpdatedAt        *time.Time     `json:"updated_at,omitempty"`
}
