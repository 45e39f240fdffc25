package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Insert(p *entity.Product) error {
	c := *p
	r.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) GetByID(id string, vis repository.Visibility) (*entity.Product, error) {
	if vis.Scope == repository.ScopeNone {
		return nil, nil
	}
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id, repository.VisibleAll())
}

func (r *fakeProductRepo) List(limit, offset int, vis repository.Visibility) ([]*entity.Product, error) {
	if vis.Scope == repository.ScopeNone {
		return nil, nil
	}
	var out []*entity.Product
	for _, p := range r.products {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeProductRepo) ListLowStock(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.LowStock() {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	c := *p
	r.products[p.ID] = &c
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.products, id)
	return nil
}

type fakeMovementRepo struct{ repo *fakeProductRepo }

func (r *fakeMovementRepo) Insert(m *entity.StockMovement) error {
	// Misma restricción que la tabla real: clave primaria no vacía y única.
	if m.ID == "" {
		return fmt.Errorf("stock_movements: id vacío")
	}
	for _, prev := range r.repo.movements {
		if prev.ID == m.ID {
			return fmt.Errorf("stock_movements: clave duplicada %q", m.ID)
		}
	}
	c := *m
	r.repo.movements = append(r.repo.movements, &c)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.repo.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeStockTx pasa los mismos repos en memoria; si el callback falla
// restaura el snapshot previo, como haría el rollback real.
type fakeStockTx struct{ repo *fakeProductRepo }

func (r *fakeStockTx) RunStock(_ context.Context, fn func(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
) error) error {
	snapProducts := map[string]*entity.Product{}
	for id, p := range r.repo.products {
		c := *p
		snapProducts[id] = &c
	}
	snapMovements := append([]*entity.StockMovement(nil), r.repo.movements...)
	err := fn(r.repo, &fakeMovementRepo{repo: r.repo})
	if err != nil {
		r.repo.products = snapProducts
		r.repo.movements = snapMovements
	}
	return err
}

func newProductUC(repo *fakeProductRepo) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(
		repo,
		&fakeMovementRepo{repo: repo},
		permission.NewDefaultRegistry(),
		&fakeStockTx{repo: repo},
		logger.New(logger.Config{Env: "test", Level: "error"}),
	)
}

func seedProduct(repo *fakeProductRepo, id string, quantity, reorderLevel int64) {
	p := &entity.Product{
		Name:         "Producto " + id,
		SKU:          "SKU-" + id,
		Category:     entity.CategoryGrocery,
		Price:        decimal.NewFromFloat(10.0),
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}
	p.AssignID(id)
	p.Stamp(time.Now())
	repo.products[id] = p
}

func actorWithRole(role string) *entity.User {
	u := &entity.User{Role: role, IsActive: true}
	u.AssignID("actor-" + role)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RechazaSKUDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 10, 2)
	uc := newProductUC(repo)

	_, err := uc.Create(actorWithRole(entity.RoleManager), dto.CreateProductRequest{
		Name: "Otro", SKU: "SKU-p-1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_CajeroSinPermiso(t *testing.T) {
	uc := newProductUC(newFakeProductRepo())

	_, err := uc.Create(actorWithRole(entity.RoleCashier), dto.CreateProductRequest{
		Name: "Arroz", SKU: "SKU-9",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_CategoriaPorDefectoYValidaciones(t *testing.T) {
	repo := newFakeProductRepo()
	uc := newProductUC(repo)
	manager := actorWithRole(entity.RoleManager)

	out, err := uc.Create(manager, dto.CreateProductRequest{Name: "Arroz", SKU: "SKU-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, out.Category)
	assert.NotEmpty(t, out.ID)

	_, err = uc.Create(manager, dto.CreateProductRequest{Name: "", SKU: "SKU-2"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "nombre vacío")

	_, err = uc.Create(manager, dto.CreateProductRequest{
		Name: "Leche", SKU: "SKU-3", Category: "electronics",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría fuera del enum")

	_, err = uc.Create(manager, dto.CreateProductRequest{
		Name: "Leche", SKU: "SKU-4", Price: decimal.NewFromFloat(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "precio negativo")
}

// Un producto invisible (actor sin inventory:read) es indistinguible de uno
// inexistente.
func TestGetByID_SinPermisoDeLectura(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 10, 2)
	uc := newProductUC(repo)

	anon := &entity.User{Role: "desconocido"}
	anon.AssignID("x")
	out, err := uc.GetByID(anon, "p-1")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestListLowStock_CajeroSinAcceso(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 2, 5)
	uc := newProductUC(repo)

	_, err := uc.ListLowStock(actorWithRole(entity.RoleCashier), 100, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.ListLowStock(actorWithRole(entity.RoleManager), 100, 0)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajuste manual de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStock_AjusteConMovimiento(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 10, 2)
	uc := newProductUC(repo)

	out, err := uc.UpdateStock(context.Background(), actorWithRole(entity.RoleManager), "p-1", dto.StockUpdateRequest{
		Quantity: -4,
		Notes:    "merma",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), out.Quantity)
	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.NotEmpty(t, m.ID, "el movimiento se inserta ya con clave")
	assert.Equal(t, entity.MovementRemoval, m.MovementType)
	assert.Equal(t, int64(4), m.Quantity, "magnitud absoluta")
	assert.Equal(t, "merma", m.Notes)
}

// El ajuste manual no puede dejar el stock bajo cero; el rechazo revierte
// la transacción completa.
func TestUpdateStock_RechazaBajoCero(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 3, 2)
	uc := newProductUC(repo)

	_, err := uc.UpdateStock(context.Background(), actorWithRole(entity.RoleManager), "p-1", dto.StockUpdateRequest{
		Quantity: -5,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(3), repo.products["p-1"].Quantity, "sin cambios")
	assert.Empty(t, repo.movements)
}

// Llegar exactamente a cero sí es válido.
func TestUpdateStock_HastaCeroExacto(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 3, 2)
	uc := newProductUC(repo)

	out, err := uc.UpdateStock(context.Background(), actorWithRole(entity.RoleManager), "p-1", dto.StockUpdateRequest{
		Quantity: -3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Quantity)
}

func TestUpdateStock_RequiereManageStock(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 10, 2)
	uc := newProductUC(repo)

	_, err := uc.UpdateStock(context.Background(), actorWithRole(entity.RoleCashier), "p-1", dto.StockUpdateRequest{
		Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStock_CantidadCero(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 10, 2)
	uc := newProductUC(repo)

	_, err := uc.UpdateStock(context.Background(), actorWithRole(entity.RoleManager), "p-1", dto.StockUpdateRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStock_ProductoInexistente(t *testing.T) {
	uc := newProductUC(newFakeProductRepo())

	_, err := uc.UpdateStock(context.Background(), actorWithRole(entity.RoleManager), "no-existe", dto.StockUpdateRequest{
		Quantity: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_VisibilidadDelProducto(t *testing.T) {
	repo := newFakeProductRepo()
	seedProduct(repo, "p-1", 10, 2)
	uc := newProductUC(repo)
	manager := actorWithRole(entity.RoleManager)

	_, err := uc.UpdateStock(context.Background(), manager, "p-1", dto.StockUpdateRequest{Quantity: 5})
	require.NoError(t, err)

	out, err := uc.ListMovements(manager, "p-1", 100, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, entity.MovementAddition, out[0].MovementType)

	// El cajero lee inventario, así que también ve el historial.
	out, err = uc.ListMovements(actorWithRole(entity.RoleCashier), "p-1", 100, 0)
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = uc.ListMovements(manager, "no-existe", 100, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
