package catalog

import (
	"context"
	"errors"
	"testing"
)

type fakeRepository struct {
	products  map[int64]*Product
	nextID    int64
	listCalls int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{products: map[int64]*Product{}, nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, p *Product) error {
	p.ID = f.nextID
	f.nextID++
	copied := *p
	f.products[p.ID] = &copied
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id int64) (*Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeRepository) List(_ context.Context, availableOnly bool) ([]*Product, error) {
	f.listCalls++
	var out []*Product
	for _, p := range f.products {
		if availableOnly && !p.IsAvailable {
			continue
		}
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeRepository) Update(_ context.Context, p *Product) error {
	stored, ok := f.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	stock := stored.Stock
	copied := *p
	copied.Stock = stock
	f.products[p.ID] = &copied
	return nil
}

func (f *fakeRepository) SetStock(_ context.Context, id int64, stock int) error {
	p, ok := f.products[id]
	if !ok {
		return ErrNotFound
	}
	p.Stock = stock
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)

	p, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "mug", Price: 12500, Stock: 10, IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if p.ID == 0 {
		t.Error("expected assigned ID")
	}
	if p.Stock != 10 {
		t.Errorf("stock = %d", p.Stock)
	}
}

func TestUpdateProduct_PartialKeepsOtherFields(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	created, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "mug", Price: 12500, Stock: 10, IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	newPrice := int64(15000)
	updated, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Price != 15000 {
		t.Errorf("price = %d", updated.Price)
	}
	if updated.Name != "mug" {
		t.Errorf("name = %q", updated.Name)
	}
	if !updated.IsAvailable {
		t.Error("availability lost on partial update")
	}
}

func TestUpdateProduct_DoesNotTouchStock(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	created, err := svc.CreateProduct(context.Background(), CreateProductRequest{
		Name: "mug", Price: 12500, Stock: 10, IsAvailable: true,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}

	name := "enamel mug"
	if _, err := svc.UpdateProduct(context.Background(), created.ID, UpdateProductRequest{Name: &name}); err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	stored, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Stock != 10 {
		t.Errorf("stock changed to %d", stored.Stock)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc := NewService(newFakeRepository(), nil)

	name := "mug"
	_, err := svc.UpdateProduct(context.Background(), 99, UpdateProductRequest{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestListAvailableProducts_FiltersUnavailable(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, nil)
	mustCreate := func(req CreateProductRequest) {
		if _, err := svc.CreateProduct(context.Background(), req); err != nil {
			t.Fatalf("CreateProduct: %v", err)
		}
	}
	mustCreate(CreateProductRequest{Name: "mug", Price: 12500, Stock: 10, IsAvailable: true})
	mustCreate(CreateProductRequest{Name: "draft", Price: 5000, Stock: 0, IsAvailable: false})

	products, err := svc.ListAvailableProducts(context.Background())
	if err != nil {
		t.Fatalf("ListAvailableProducts: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("got %d products", len(products))
	}
	if products[0].Name != "mug" {
		t.Errorf("name = %q", products[0].Name)
	}
}

func TestCreateProductRequest_Validate(t *testing.T) {
	errs := CreateProductRequest{Name: "", Price: -1, Stock: -5}.Validate()
	if len(errs) != 3 {
		t.Fatalf("got %d errors: %v", len(errs), errs)
	}
	if errs := (CreateProductRequest{Name: "mug", Price: 0, Stock: 0}).Validate(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
