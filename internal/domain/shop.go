package domain

import "time"

// Shop is a registered store: the shop URL is the natural key and the access
// token is the Shopify Admin API credential captured at registration.
type Shop struct {
	ShopURL     string    `json:"shop_url" db:"shop_url"`
	AccessToken string    `json:"-" db:"access_token"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
