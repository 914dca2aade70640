package models

type Profile struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// CreatedDate returns the date part of CreatedAt.
func (p Profile) CreatedDate() string {
	if len(p.CreatedAt) > 10 {
		return p.CreatedAt[:10]
	}
	return p.CreatedAt
}
