package profile

// User is the storefront account shell. There is no authentication; the
// single mock account stands in for a signed-in shopper.
type User struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatarUrl"`
	JoinedAt  string `json:"joinedAt"`
}

// Section is one entry in the profile navigation shell.
type Section struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// MockUser returns the demo account.
func MockUser() User {
	return User{
		Name:      "Alex Johnson",
		Email:     "alex.johnson@example.com",
		AvatarURL: "https://source.unsplash.com/150x150/?portrait,person,smiling",
		JoinedAt:  "2023-03",
	}
}

// Sections returns the profile navigation entries in display order.
func Sections() []Section {
	return []Section{
		{Key: "orders", Label: "Order History"},
		{Key: "account", Label: "Account Details"},
		{Key: "addresses", Label: "Address Book"},
		{Key: "payment-methods", Label: "Payment Methods"},
	}
}
