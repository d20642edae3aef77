package lead

import "time"

// Lead is a captured marketing contact. Phone is optional and stored as an
// empty string when absent.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}
