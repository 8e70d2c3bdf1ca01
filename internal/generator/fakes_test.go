package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"commerce-seeder/internal/model"
	"commerce-seeder/internal/service"

	"github.com/samber/mo"
)

var errInsert = errors.New("insert failed")

// scriptedRand replays queued values and falls back to fixed defaults
type scriptedRand struct {
	ints         []int
	int64s       []int64
	floats       []float64
	defaultFloat float64
}

func newScriptedRand() *scriptedRand {
	return &scriptedRand{defaultFloat: 0.99}
}

func (r *scriptedRand) IntN(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return min(v, n-1)
}

func (r *scriptedRand) Int64N(n int64) int64 {
	if len(r.int64s) == 0 {
		return 0
	}
	v := r.int64s[0]
	r.int64s = r.int64s[1:]
	return min(v, n-1)
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return r.defaultFloat
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

type fakeUserService struct {
	nextID uint
	users  []*model.User
	failOn map[int]bool // 1-based call numbers
	calls  int
}

func (s *fakeUserService) CreateUser(_ context.Context, user *model.User) error {
	s.calls++
	if s.failOn[s.calls] {
		return errInsert
	}
	s.nextID++
	user.ID = s.nextID
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserService) CountUsers(_ context.Context, filters service.UserFilters) (int64, error) {
	var n int64
	for _, u := range s.users {
		if filters.Role == "" || u.Role == filters.Role {
			n++
		}
	}
	return n, nil
}

type fakeProductService struct {
	nextProductID    uint
	nextVariantID    uint
	products         []*model.Product
	variants         []*model.ProductVariant
	failProductCalls map[int]bool
	productCalls     int
}

func (s *fakeProductService) CreateProduct(_ context.Context, product *model.Product) error {
	s.productCalls++
	if s.failProductCalls[s.productCalls] {
		return errInsert
	}
	s.nextProductID++
	product.ID = s.nextProductID
	s.products = append(s.products, product)
	return nil
}

func (s *fakeProductService) CreateVariant(_ context.Context, variant *model.ProductVariant) error {
	s.nextVariantID++
	variant.ID = s.nextVariantID
	s.variants = append(s.variants, variant)
	return nil
}

func (s *fakeProductService) variantsOf(productID uint) []*model.ProductVariant {
	var out []*model.ProductVariant
	for _, v := range s.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out
}

type fakeOrderService struct {
	nextID uint
	orders []*model.Order
	failOn map[int]bool
	calls  int
}

func (s *fakeOrderService) CreateOrder(_ context.Context, order *model.Order) error {
	s.calls++
	if s.failOn[s.calls] {
		return errInsert
	}
	s.nextID++
	order.ID = s.nextID
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	s.orders = append(s.orders, order)
	return nil
}

// stubImages returns the queued results, then None
type stubImages struct {
	results []mo.Option[string]
	calls   int
}

func (s *stubImages) Provision() mo.Option[string] {
	s.calls++
	if len(s.results) == 0 {
		return mo.None[string]()
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r
}

// countingImages always returns a fresh path
type countingImages struct {
	kind string
	n    int
}

func (s *countingImages) Provision() mo.Option[string] {
	s.n++
	return mo.Some(fmt.Sprintf("/%ss/%d.jpg", s.kind, s.n))
}

type plainHasher struct {
	n   int
	err error
}

func (h *plainHasher) HashPassword(password string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	h.n++
	return fmt.Sprintf("hash-%d-%s", h.n, password), nil
}

// fixedFake returns predictable strings
type fixedFake struct{ n int }

func (f *fixedFake) next(prefix string) string {
	f.n++
	return fmt.Sprintf("%s%d", prefix, f.n)
}

func (f *fixedFake) Username() string  { return f.next("user") }
func (f *fixedFake) Email() string     { return f.next("mail") + "@example.com" }
func (f *fixedFake) Name() string      { return f.next("Name ") }
func (f *fixedFake) Word() string      { return f.next("word") }
func (f *fixedFake) Sentence() string  { return f.next("Sentence ") + "." }
func (f *fixedFake) Paragraph() string { return f.next("Paragraph ") + "." }

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users    *fakeUserService
	products *fakeProductService
	orders   *fakeOrderService
	avatars  ImageSource
	images   ImageSource
	rng      Rand
	fake     FakeData
}

func newFixture(rng Rand) *fixture {
	return &fixture{
		users:    &fakeUserService{},
		products: &fakeProductService{},
		orders:   &fakeOrderService{},
		avatars:  &countingImages{kind: "avatar"},
		images:   &countingImages{kind: "product"},
		rng:      rng,
		fake:     &fixedFake{},
	}
}

func (f *fixture) generator() *Generator {
	return New(Dependencies{
		Users:    f.users,
		Products: f.products,
		Orders:   f.orders,
		Hasher:   &plainHasher{},
		Avatars:  f.avatars,
		Images:   f.images,
		Fake:     f.fake,
		Rand:     f.rng,
		Now:      func() time.Time { return testNow },
	})
}
