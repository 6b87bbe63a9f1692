package services

import (
	"context"
	"fmt"

	"warung/internal/models"
	"warung/internal/repositories"
)

// ProductService handles business logic related to the catalog.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns every product, or only those whose name contains
// search (case-insensitive) when search is not empty.
func (s *ProductService) ListProducts(ctx context.Context, search string) ([]models.Product, error) {
	if search == "" {
		return s.repo.GetAll(ctx)
	}
	return s.repo.Search(ctx, search)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("product %s: %w", product.Name, ErrInvalidPrice)
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if product.Price.IsNegative() {
		return fmt.Errorf("product %s: %w", product.ID, ErrInvalidPrice)
	}
	return s.repo.Update(ctx, product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
