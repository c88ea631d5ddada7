package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProdRepoMock struct{ mock.Mock }

func (m *ProdRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProdRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestProductUsecase_ListProducts(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	items := []model.Product{
		{ID: 1, Name: "Laptop", Price: 99999},
		{ID: 2, Name: "Smartphone", Price: 69999},
	}
	pRepo.On("List", mock.Anything).Return(items, nil)

	out, err := uc.ListProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out))

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProductDetail_InvalidID(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdRepoMock))

	_, err := uc.GetProductDetail(context.Background(), 0)
	assertHTTPStatus(t, err, 400)
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(ctx, 99)
	assertHTTPStatus(t, err, 404)
}

func TestProductUsecase_GetProductDetail_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProdRepoMock)
	uc := usecase.NewProductUsecase(pRepo)

	pRepo.On("FindByID", mock.Anything, int64(1)).
		Return(model.Product{ID: 1, Name: "Laptop", Price: 99999}, nil)

	p, err := uc.GetProductDetail(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Laptop", p.Name)

	pRepo.AssertExpectations(t)
}
