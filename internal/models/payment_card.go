package models

// CardBrand represents a payment card network
type CardBrand string

const (
	CardBrandVisa       CardBrand = "visa"
	CardBrandMastercard CardBrand = "mastercard"
	CardBrandAmex       CardBrand = "amex"
	CardBrandDiscover   CardBrand = "discover"
	CardBrandOther      CardBrand = "other"
)

// PaymentCard represents a card subscriptions are charged to. Only the last
// four digits are ever stored.
type PaymentCard struct {
	Base
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	Nickname    string    `gorm:"not null" json:"nickname"`
	LastFour    string    `gorm:"size:4;not null" json:"last_four"`
	Brand       CardBrand `gorm:"not null" json:"brand"`
	ExpiryMonth int       `json:"expiry_month"`
	ExpiryYear  int       `json:"expiry_year"`
	IsDefault   bool      `gorm:"default:false" json:"is_default"`

	// Relationships
	Subscriptions []Subscription `gorm:"foreignKey:CardID" json:"subscriptions,omitempty"`
}
