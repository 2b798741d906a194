package models

type MenuProduct struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
	PriceLabel  string `json:"priceLabel,omitempty"`
	ImageURL    string `json:"imageUrl"`
	IsActive    bool   `json:"isActive"`
}

type MenuCategory struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Color    string        `json:"color"`
	IsActive bool          `json:"isActive"`
	Products []MenuProduct `json:"products"`
}

type Business struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Slug         string `json:"slug,omitempty"`
	PrimaryColor string `json:"primaryColor,omitempty"`
	TemplateType string `json:"templateType,omitempty"`
	LogoURL      string `json:"logoUrl,omitempty"`
}

type Menu struct {
	Menu     []MenuCategory `json:"menu"`
	Business Business       `json:"business"`
}

// ActiveCategories drops inactive categories and products, the way the
// public menu page lists them.
func (m *Menu) ActiveCategories() []MenuCategory {
	out := make([]MenuCategory, 0, len(m.Menu))
	for _, c := range m.Menu {
		if !c.IsActive {
			continue
		}
		products := make([]MenuProduct, 0, len(c.Products))
		for _, p := range c.Products {
			if p.IsActive {
				products = append(products, p)
			}
		}
		c.Products = products
		out = append(out, c)
	}
	return out
}

type CategoryInput struct {
	Name     string `json:"name" binding:"required"`
	Color    string `json:"color"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type ProductInput struct {
	CategoryID  string `json:"categoryId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       *int64 `json:"price"`
	ImageURL    string `json:"imageUrl"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Merchant is the user record returned by the remote /usuarios/me endpoint.
type Merchant struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Slug         string `json:"slug"`
	PrimaryColor string `json:"primaryColor"`
	TemplateType string `json:"templateType"`
}

type MerchantEnvelope struct {
	User Merchant `json:"user"`
}

type Credentials struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type Registration struct {
	BusinessName    string `json:"businessName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,e164"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword,omitempty" validate:"required,eqfield=Password"`
	LoyverseKey     string `json:"loyverseKey" validate:"required"`
	PrimaryColor    string `json:"primaryColor" validate:"required"`
	TemplateType    string `json:"templateType" validate:"required"`
}
