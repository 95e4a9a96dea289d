package entity

// DropType represents the category of a drop.
type DropType string

const (
	DropTypePack     DropType = "pack"
	DropTypeCard     DropType = "card"
	DropTypeCurrency DropType = "currency"
	DropTypeSpecial  DropType = "special"
)

// AllDropTypes lists every drop type in catalog order.
func AllDropTypes() []DropType {
	return []DropType{DropTypePack, DropTypeCard, DropTypeCurrency, DropTypeSpecial}
}

// String returns the string representation of the DropType.
func (t DropType) String() string {
	return string(t)
}

// IsValid checks if the DropType is a valid value.
func (t DropType) IsValid() bool {
	switch t {
	case DropTypePack, DropTypeCard, DropTypeCurrency, DropTypeSpecial:
		return true
	default:
		return false
	}
}
