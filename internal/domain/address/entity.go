// internal/domain/address/entity.go
package address

import "time"

// Address is a saved shipping address owned by the upstream API. This service
// only reads them; at most one address per user carries IsDefault, enforced
// upstream and consumed here as an invariant.
type Address struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Province      string    `json:"province"`
	District      string    `json:"district"`
	Ward          string    `json:"ward"`
	DetailAddress string    `json:"detail_address"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
