package services

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"menulink/internal/metrics"
	"menulink/internal/models"
	"menulink/internal/order"
	"menulink/pkg/menuapi"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MenuAPI is the part of the remote API the menu service calls.
type MenuAPI interface {
	PublicMenu(ctx context.Context, slug string) (*models.Menu, error)
	GetMenu(ctx context.Context, token string) (*models.Menu, error)
	UpdateMenu(ctx context.Context, token string, payload map[string]interface{}) (map[string]interface{}, error)
	ListCategories(ctx context.Context, token string) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, token string, in models.CategoryInput) error
	UpdateCategory(ctx context.Context, token, id string, in models.CategoryInput) error
	DeleteCategory(ctx context.Context, token, id string) error
	CreateProduct(ctx context.Context, token string, in models.ProductInput) error
	UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) error
	DeleteProduct(ctx context.Context, token, id string) error
}

type MenuService interface {
	// PublicMenu returns active categories and products for customers.
	PublicMenu(ctx context.Context, slug string) (*models.Menu, error)
	Business(ctx context.Context, slug string) (*models.Business, error)
	MenuURL(slug string) string

	MerchantMenu(ctx context.Context, sessionID string) (*models.Menu, error)
	UpdateMenu(ctx context.Context, sessionID string, payload map[string]interface{}) (map[string]interface{}, error)
	Categories(ctx context.Context, sessionID string) ([]models.MenuCategory, error)
	CreateCategory(ctx context.Context, sessionID string, in models.CategoryInput) ([]models.MenuCategory, error)
	UpdateCategory(ctx context.Context, sessionID, id string, in models.CategoryInput) ([]models.MenuCategory, error)
	DeleteCategory(ctx context.Context, sessionID, id string) ([]models.MenuCategory, error)
	CreateProduct(ctx context.Context, sessionID string, in models.ProductInput) ([]models.MenuCategory, error)
	UpdateProduct(ctx context.Context, sessionID, id string, in models.ProductInput) ([]models.MenuCategory, error)
	DeleteProduct(ctx context.Context, sessionID, id string) ([]models.MenuCategory, error)
}

type menuService struct {
	api       MenuAPI
	auth      AuthService
	tracker   Tracker
	metrics   *metrics.Metrics
	publicURL string
}

func NewMenuService(api MenuAPI, auth AuthService, tracker Tracker, m *metrics.Metrics, publicURL string) MenuService {
	return &menuService{api: api, auth: auth, tracker: tracker, metrics: m, publicURL: strings.TrimRight(publicURL, "/")}
}

func (s *menuService) PublicMenu(ctx context.Context, slug string) (*models.Menu, error) {
	menu, err := s.fetchPublic(ctx, slug)
	if err != nil {
		return nil, err
	}

	menu.Menu = menu.ActiveCategories()
	for ci := range menu.Menu {
		for pi := range menu.Menu[ci].Products {
			p := &menu.Menu[ci].Products[pi]
			p.PriceLabel, _ = order.FormatOptionalPrice(p.Price)
		}
	}

	s.tracker.Track(ctx, "view_menu", map[string]interface{}{"menuSlug": slug})
	return menu, nil
}

func (s *menuService) Business(ctx context.Context, slug string) (*models.Business, error) {
	menu, err := s.fetchPublic(ctx, slug)
	if err != nil {
		return nil, err
	}
	business := menu.Business
	if business.Slug == "" {
		business.Slug = slug
	}
	return &business, nil
}

func (s *menuService) fetchPublic(ctx context.Context, slug string) (*models.Menu, error) {
	menu, err := s.api.PublicMenu(ctx, slug)
	if err != nil {
		s.metrics.RemoteError("public_menu")
		if menuapi.IsNotFound(err) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return menu, nil
}

func (s *menuService) MenuURL(slug string) string {
	return BuildMenuURL(s.publicURL, slug)
}

func (s *menuService) MerchantMenu(ctx context.Context, sessionID string) (*models.Menu, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	menu, err := s.api.GetMenu(ctx, token)
	if err != nil {
		return nil, s.remoteErr(ctx, sessionID, "get_menu", err)
	}
	return menu, nil
}

func (s *menuService) UpdateMenu(ctx context.Context, sessionID string, payload map[string]interface{}) (map[string]interface{}, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out, err := s.api.UpdateMenu(ctx, token, payload)
	if err != nil {
		return nil, s.remoteErr(ctx, sessionID, "update_menu", err)
	}
	return out, nil
}

func (s *menuService) Categories(ctx context.Context, sessionID string) ([]models.MenuCategory, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.categories(ctx, sessionID, token)
}

func (s *menuService) categories(ctx context.Context, sessionID, token string) ([]models.MenuCategory, error) {
	cats, err := s.api.ListCategories(ctx, token)
	if err != nil {
		return nil, s.remoteErr(ctx, sessionID, "list_categories", err)
	}
	return cats, nil
}

// mutate runs one dashboard write and returns the refreshed categories.
func (s *menuService) mutate(ctx context.Context, sessionID, op string, call func(token string) error) ([]models.MenuCategory, error) {
	token, err := s.auth.Token(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := call(token); err != nil {
		return nil, s.remoteErr(ctx, sessionID, op, err)
	}
	return s.categories(ctx, sessionID, token)
}

func (s *menuService) CreateCategory(ctx context.Context, sessionID string, in models.CategoryInput) ([]models.MenuCategory, error) {
	return s.mutate(ctx, sessionID, "create_category", func(token string) error {
		return s.api.CreateCategory(ctx, token, in)
	})
}

func (s *menuService) UpdateCategory(ctx context.Context, sessionID, id string, in models.CategoryInput) ([]models.MenuCategory, error) {
	return s.mutate(ctx, sessionID, "update_category", func(token string) error {
		return s.api.UpdateCategory(ctx, token, id, in)
	})
}

func (s *menuService) DeleteCategory(ctx context.Context, sessionID, id string) ([]models.MenuCategory, error) {
	return s.mutate(ctx, sessionID, "delete_category", func(token string) error {
		return s.api.DeleteCategory(ctx, token, id)
	})
}

func (s *menuService) CreateProduct(ctx context.Context, sessionID string, in models.ProductInput) ([]models.MenuCategory, error) {
	return s.mutate(ctx, sessionID, "create_product", func(token string) error {
		return s.api.CreateProduct(ctx, token, in)
	})
}

func (s *menuService) UpdateProduct(ctx context.Context, sessionID, id string, in models.ProductInput) ([]models.MenuCategory, error) {
	return s.mutate(ctx, sessionID, "update_product", func(token string) error {
		return s.api.UpdateProduct(ctx, token, id, in)
	})
}

func (s *menuService) DeleteProduct(ctx context.Context, sessionID, id string) ([]models.MenuCategory, error) {
	return s.mutate(ctx, sessionID, "delete_product", func(token string) error {
		return s.api.DeleteProduct(ctx, token, id)
	})
}

func (s *menuService) remoteErr(ctx context.Context, sessionID, op string, err error) error {
	s.metrics.RemoteError(op)
	return s.auth.Check(ctx, sessionID, err)
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// GenerateSlug lowercases name, strips accents and punctuation, and joins
// words with single dashes: "Café Ñandú  Bar!" -> "cafe-nandu-bar".
func GenerateSlug(name string) string {
	if name == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		stripped = strings.ToLower(name)
	}
	s := slugInvalid.ReplaceAllString(stripped, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	return slugDashes.ReplaceAllString(s, "-")
}

func BuildMenuURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/menu/" + slug
}
