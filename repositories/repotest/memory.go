// Package repotest provides map-backed stores with the same observable
// behavior as the Postgres repositories, for service and HTTP tests.
package repotest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DivyaPradhan23/grocery-backend/models"
	"github.com/DivyaPradhan23/grocery-backend/repositories"
)

// DB is the shared state behind every store; one mutex serializes all
// access, which also makes Checkout atomic.
type DB struct {
	mu       sync.Mutex
	nextID   int
	users    map[int]models.User
	products map[int]models.Product
	cart     map[int]models.CartItem
	orders   map[int]models.Order
	wishlist map[int]models.WishlistItem
	promos   map[int]models.PromoCode
}

func NewDB() *DB {
	return &DB{
		users:    map[int]models.User{},
		products: map[int]models.Product{},
		cart:     map[int]models.CartItem{},
		orders:   map[int]models.Order{},
		wishlist: map[int]models.WishlistItem{},
		promos:   map[int]models.PromoCode{},
	}
}

func (db *DB) id() int {
	db.nextID++
	return db.nextID
}

func (db *DB) Users() *UserStore { return &UserStore{db: db} }
func (db *DB) Products() *ProductStore { return &ProductStore{db: db} }
func (db *DB) Cart() *CartStore { return &CartStore{db: db} }
func (db *DB) Orders() *OrderStore { return &OrderStore{db: db} }
func (db *DB) Wishlist() *WishlistStore { return &WishlistStore{db: db} }
func (db *DB) Promos() *PromoStore { return &PromoStore{db: db} }
func (db *DB) Reports() *ReportStore { return &ReportStore{db: db} }

// CartCount returns the number of cart lines held by the user.
func (db *DB) CartCount(userID int) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	n := 0
	for _, item := range db.cart {
		if item.UserID == userID {
			n++
		}
	}
	return n
}

func sortedIDs[T any](m map[int]T) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

type UserStore struct{ db *DB }

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == user.Username {
			return repositories.ErrDuplicate
		}
	}
	user.ID = s.db.id()
	user.CreatedAt = time.Now()
	s.db.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id int) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) UpdateRole(_ context.Context, username, role string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for id, u := range s.db.users {
		if u.Username == username {
			u.Role = role
			s.db.users[id] = u
			return nil
		}
	}
	return repositories.ErrNotFound
}

type ProductStore struct{ db *DB }

func (s *ProductStore) List(_ context.Context) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	products := []models.Product{}
	for _, id := range sortedIDs(s.db.products) {
		products = append(products, s.db.products[id])
	}
	return products, nil
}

func (s *ProductStore) Filter(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	products := []models.Product{}
	for _, id := range sortedIDs(s.db.products) {
		p := s.db.products[id]
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		products = append(products, p)
	}

	if filter.Popular {
		carts := map[int]int{}
		for _, item := range s.db.cart {
			carts[item.ProductID]++
		}
		sort.SliceStable(products, func(i, j int) bool {
			return carts[products[i].ID] > carts[products[j].ID]
		})
	}
	return products, nil
}

func (s *ProductStore) FindByID(_ context.Context, id int) (*models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *ProductStore) Create(_ context.Context, product *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	product.ID = s.db.id()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	s.db.products[product.ID] = *product
	return nil
}

func (s *ProductStore) Update(_ context.Context, product *models.Product) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	existing, ok := s.db.products[product.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	s.db.products[product.ID] = *product
	return nil
}

func (s *ProductStore) UpdateImage(_ context.Context, id int, image string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	p, ok := s.db.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Image = image
	p.UpdatedAt = time.Now()
	s.db.products[id] = p
	return nil
}

// Delete cascades to cart and wishlist lines like the foreign keys do.
func (s *ProductStore) Delete(_ context.Context, id int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.db.products, id)
	for itemID, item := range s.db.cart {
		if item.ProductID == id {
			delete(s.db.cart, itemID)
		}
	}
	for itemID, item := range s.db.wishlist {
		if item.ProductID == id {
			delete(s.db.wishlist, itemID)
		}
	}
	return nil
}

type CartStore struct{ db *DB }

func (s *CartStore) AddOrIncrement(_ context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.products[productID]; !ok {
		return nil, repositories.ErrNotFound
	}
	for id, item := range s.db.cart {
		if item.UserID == userID && item.ProductID == productID {
			item.Quantity += quantity
			s.db.cart[id] = item
			return &item, nil
		}
	}
	item := models.CartItem{
		ID:        s.db.id(),
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	s.db.cart[item.ID] = item
	return &item, nil
}

func (s *CartStore) ListByUser(_ context.Context, userID int) ([]models.CartItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return s.db.cartOf(userID), nil
}

func (db *DB) cartOf(userID int) []models.CartItem {
	items := []models.CartItem{}
	for _, id := range sortedIDs(db.cart) {
		item := db.cart[id]
		if item.UserID != userID {
			continue
		}
		p := db.products[item.ProductID]
		item.Product = &p
		items = append(items, item)
	}
	return items
}

func (s *CartStore) DeleteOwned(_ context.Context, userID, itemID int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	item, ok := s.db.cart[itemID]
	if !ok || item.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(s.db.cart, itemID)
	return nil
}

type OrderStore struct{ db *DB }

func (s *OrderStore) Checkout(_ context.Context, userID int, build repositories.BuildOrderFunc) (*models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.users[userID]; !ok {
		return nil, repositories.ErrNotFound
	}

	order, err := build(s.db.cartOf(userID))
	if err != nil {
		return nil, err
	}

	order.ID = s.db.id()
	order.UserID = userID
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].ID = s.db.id()
		order.Items[i].OrderID = order.ID
	}
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	s.db.orders[order.ID] = stored

	for id, item := range s.db.cart {
		if item.UserID == userID {
			delete(s.db.cart, id)
		}
	}
	return order, nil
}

func (s *OrderStore) ListByUser(_ context.Context, userID int) ([]models.Order, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	orders := []models.Order{}
	ids := sortedIDs(s.db.orders)
	for i := len(ids) - 1; i >= 0; i-- {
		if o := s.db.orders[ids[i]]; o.UserID == userID {
			o.Items = append([]models.OrderItem{}, o.Items...)
			orders = append(orders, o)
		}
	}
	return orders, nil
}

type WishlistStore struct{ db *DB }

func (s *WishlistStore) Create(_ context.Context, item *models.WishlistItem) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.products[item.ProductID]; !ok {
		return repositories.ErrNotFound
	}
	for _, existing := range s.db.wishlist {
		if existing.UserID == item.UserID && existing.ProductID == item.ProductID {
			return repositories.ErrDuplicate
		}
	}
	item.ID = s.db.id()
	item.CreatedAt = time.Now()
	stored := *item
	stored.Product = nil
	s.db.wishlist[item.ID] = stored
	return nil
}

func (s *WishlistStore) ListByUser(_ context.Context, userID int) ([]models.WishlistItem, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	items := []models.WishlistItem{}
	for _, id := range sortedIDs(s.db.wishlist) {
		item := s.db.wishlist[id]
		if item.UserID != userID {
			continue
		}
		p := s.db.products[item.ProductID]
		item.Product = &p
		items = append(items, item)
	}
	return items, nil
}

func (s *WishlistStore) DeleteOwned(_ context.Context, userID, itemID int) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	item, ok := s.db.wishlist[itemID]
	if !ok || item.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(s.db.wishlist, itemID)
	return nil
}

type PromoStore struct{ db *DB }

func (s *PromoStore) FindActiveByCode(_ context.Context, code string) (*models.PromoCode, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.promos {
		if p.Code == code && p.Active {
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *PromoStore) List(_ context.Context) ([]models.PromoCode, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	promos := []models.PromoCode{}
	for _, id := range sortedIDs(s.db.promos) {
		promos = append(promos, s.db.promos[id])
	}
	sort.SliceStable(promos, func(i, j int) bool {
		return promos[i].ExpiryDate.After(promos[j].ExpiryDate)
	})
	return promos, nil
}

func (s *PromoStore) Create(_ context.Context, promo *models.PromoCode) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, p := range s.db.promos {
		if p.Code == promo.Code {
			return repositories.ErrDuplicate
		}
	}
	promo.ID = s.db.id()
	s.db.promos[promo.ID] = *promo
	return nil
}

type ReportStore struct{ db *DB }

func (s *ReportStore) SalesReport(_ context.Context, filter models.SalesReportFilter) ([]models.SalesReportRow, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	sold := map[int]int{}
	for _, o := range s.db.orders {
		for _, item := range o.Items {
			sold[item.ProductID] += item.Quantity
		}
	}

	rows := []models.SalesReportRow{}
	for _, id := range sortedIDs(s.db.products) {
		p := s.db.products[id]
		if filter.Category != "" && !strings.EqualFold(p.Category, filter.Category) {
			continue
		}
		rows = append(rows, models.SalesReportRow{
			ProductID: p.ID,
			Product:   p.Name,
			Category:  p.Category,
			TotalSold: sold[p.ID],
		})
	}

	switch filter.Sort {
	case models.SortMostSold:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalSold > rows[j].TotalSold })
	case models.SortLeastSold:
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalSold < rows[j].TotalSold })
	}
	return rows, nil
}

func (s *ReportStore) LowStock(_ context.Context, threshold int) ([]models.Product, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	products := []models.Product{}
	for _, id := range sortedIDs(s.db.products) {
		if p := s.db.products[id]; p.Stock < threshold {
			products = append(products, p)
		}
	}
	sort.SliceStable(products, func(i, j int) bool { return products[i].Stock < products[j].Stock })
	return products, nil
}
