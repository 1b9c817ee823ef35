package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
)

// AdjustInput entrada para mover la cantidad en stock de un producto.
// Delta con signo: IN > 0, OUT < 0, ADJUSTMENT y TRANSFER distinto de 0.
type AdjustInput struct {
	ProductID      string
	Type           entity.MovementType
	Delta          int64
	UnitCost       *decimal.Decimal
	FromLocationID string
	ToLocationID   string
	Reference      string
	Reason         string
	Actor          string
	// InTx se ejecuta dentro de la transacción del ajuste, después de insertar el movimiento.
	// Un error aborta el ajuste completo.
	InTx func(ctx context.Context, repos TxRepos, product *entity.Product, movement *entity.StockMovement) error
}

// AdjustResult producto actualizado, movimiento registrado y transición de estado.
type AdjustResult struct {
	Product        *entity.Product
	Movement       *entity.StockMovement
	PreviousStatus inventory.StockStatus
	Status         inventory.StockStatus
}

// movementArgs datos de un movimiento a aplicar sobre un producto ya bloqueado.
type movementArgs struct {
	Type           entity.MovementType
	Delta          int64
	UnitCost       *decimal.Decimal
	FromLocationID string
	ToLocationID   string
	Reference      string
	Reason         string
	Actor          string
	At             time.Time
}

// AdjustQuantity inicia una transacción, bloquea la fila del producto (SELECT FOR UPDATE),
// calcula la nueva cantidad, registra el movimiento y hace Commit o Rollback.
// Si la cantidad resultante fuese negativa no se escribe nada.
func (l *ProductLedger) AdjustQuantity(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	ve := inventory.ValidateMovement(in.Type, in.Delta, in.UnitCost, in.FromLocationID, in.ToLocationID)
	if in.ProductID == "" {
		ve.Add("product_id", domain.CodeRequired, "product_id es requerido")
	}
	if !ve.Empty() {
		return nil, ve
	}
	if err := l.checkLocations(ctx, in.FromLocationID, in.ToLocationID); err != nil {
		return nil, err
	}
	if err := l.checkUser(ctx, in.Actor); err != nil {
		return nil, err
	}

	res := &AdjustResult{}
	err := l.tx.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		product, err := repos.Products.GetByIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NewNotFound("producto", in.ProductID)
		}
		if !product.IsActive {
			return domain.NewValidationError("product_id", domain.CodeInactive, "el producto está inactivo")
		}
		res.PreviousStatus = inventory.StatusOf(product)

		mov, err := l.applyMovement(ctx, repos, product, movementArgs{
			Type:           in.Type,
			Delta:          in.Delta,
			UnitCost:       in.UnitCost,
			FromLocationID: in.FromLocationID,
			ToLocationID:   in.ToLocationID,
			Reference:      in.Reference,
			Reason:         in.Reason,
			Actor:          in.Actor,
			At:             l.now(),
		})
		if err != nil {
			return err
		}
		if in.InTx != nil {
			if err := in.InTx(ctx, repos, product, mov); err != nil {
				return err
			}
		}
		res.Product = product
		res.Movement = mov
		res.Status = inventory.StatusOf(product)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.invalidate(ctx)
	if res.Status == inventory.StatusReorderNeeded && res.PreviousStatus != inventory.StatusReorderNeeded {
		l.publishLowStock(ctx, res.Product, res.Movement)
	}
	return res, nil
}

// applyMovement núcleo del ledger: aplica delta sobre el producto bloqueado con compare-and-set
// e inserta el movimiento. Debe llamarse dentro de una transacción.
func (l *ProductLedger) applyMovement(ctx context.Context, repos TxRepos, product *entity.Product, args movementArgs) (*entity.StockMovement, error) {
	previous := product.QuantityInStock
	next := previous + args.Delta
	if args.Delta > 0 && next < previous {
		return nil, domain.NewValidationError("quantity_change", domain.CodeOutOfRange,
			fmt.Sprintf("la cantidad resultante excede el máximo representable (disponible %d, entrada %d)", previous, args.Delta))
	}
	if next < 0 {
		return nil, domain.NewValidationError("quantity_change", domain.CodeInsufficientStock,
			fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", previous, -args.Delta))
	}

	mov := entity.NewStockMovement(uuid.New().String(), product.ID, args.Type, previous, args.Delta, args.UnitCost, args.At)
	mov.FromLocationID = args.FromLocationID
	mov.ToLocationID = args.ToLocationID
	mov.Reference = args.Reference
	mov.Reason = args.Reason
	mov.CreatedBy = args.Actor
	if !mov.Reconciles() || mov.NewQuantity != next {
		return nil, &domain.ReconciliationError{
			ProductID: product.ID, Previous: previous, Delta: args.Delta, New: mov.NewQuantity,
			Reason: "el movimiento construido no cuadra",
		}
	}

	applied, err := repos.Products.ApplyQuantity(ctx, product.ID, previous, next, args.At)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, &domain.ReconciliationError{
			ProductID: product.ID, Previous: previous, Delta: args.Delta, New: next,
			Reason: "la cantidad almacenada cambió fuera del ledger",
		}
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	product.QuantityInStock = next
	product.UpdatedAt = args.At
	return mov, nil
}

func (l *ProductLedger) checkLocations(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := l.checkReferences(ctx, map[entity.ReferenceKind]string{entity.ReferenceLocation: id}); err != nil {
			return err
		}
	}
	return nil
}

// publishLowStock publica la alerta; un fallo solo se registra (el ajuste ya quedó confirmado).
func (l *ProductLedger) publishLowStock(ctx context.Context, p *entity.Product, mov *entity.StockMovement) {
	if l.alerts == nil {
		return
	}
	alert := LowStockAlert{
		ProductID:       p.ID,
		SKU:             p.SKU,
		Name:            p.Name,
		Quantity:        p.QuantityInStock,
		ReorderPoint:    p.ReorderPoint,
		ReorderQuantity: p.ReorderQuantity,
		Status:          string(inventory.StatusOf(p)),
		MovementID:      mov.ID,
	}
	if err := l.alerts.PublishLowStock(ctx, alert); err != nil {
		l.log.Warn().Err(err).Str("product_id", p.ID).Msg("no se pudo publicar la alerta de stock bajo")
	}
}
