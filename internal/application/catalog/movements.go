package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/ledger"
	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
)

// RecordMovement registra un movimiento vía el ledger. Para productos serializados las series
// se emiten (delta > 0) o se retiran (delta < 0) dentro de la misma transacción del ajuste.
func (s *Service) RecordMovement(ctx context.Context, actor string, in dto.RegisterMovementRequest) (*dto.MovementResult, error) {
	var serials []string
	res, err := s.ledger.AdjustQuantity(ctx, ledger.AdjustInput{
		ProductID:      in.ProductID,
		Type:           entity.MovementType(in.Type),
		Delta:          in.QuantityChange,
		UnitCost:       in.UnitCost,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Reference:      in.Reference,
		Reason:         in.Reason,
		Actor:          actor,
		InTx: func(ctx context.Context, repos ledger.TxRepos, p *entity.Product, mov *entity.StockMovement) error {
			if !p.IsSerialized {
				if len(in.Serials) > 0 {
					return domain.NewValidationError("serials", domain.CodeInvalid, "el producto no maneja números de serie")
				}
				return nil
			}
			if units := abs(mov.QuantityChange); units > s.defaults.MaxSerials {
				return domain.NewValidationError("quantity_change", domain.CodeOutOfRange,
					fmt.Sprintf("un producto serializado admite como máximo %d unidades por movimiento, se pidieron %d", s.defaults.MaxSerials, units))
			}
			var err error
			if mov.QuantityChange > 0 {
				serials, err = issueSerials(ctx, repos, p, mov, in.Serials)
				return err
			}
			serials, err = retireSerials(ctx, repos, p, mov, in.Serials)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	product, err := s.productResponse(ctx, res.Product)
	if err != nil {
		return nil, err
	}
	return &dto.MovementResult{
		Product:  *product,
		Movement: toMovementResponse(res.Movement),
		Serials:  serials,
	}, nil
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// issueSerials crea una serie IN_STOCK por unidad agregada. Las series dadas deben coincidir
// en cantidad con el delta; si no se dan se generan.
func issueSerials(ctx context.Context, repos ledger.TxRepos, p *entity.Product, mov *entity.StockMovement, given []string) ([]string, error) {
	count := int(mov.QuantityChange)
	if len(given) > 0 && len(given) != count {
		return nil, domain.NewValidationError("serials", domain.CodeOutOfRange,
			fmt.Sprintf("se esperaban %d números de serie, se recibieron %d", count, len(given)))
	}
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		if len(given) > 0 {
			code := strings.TrimSpace(given[i])
			if code == "" {
				return nil, domain.NewValidationError("serials", domain.CodeRequired, "número de serie vacío")
			}
			codes = append(codes, code)
			continue
		}
		codes = append(codes, p.SKU+"-"+strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:12]))
	}
	batch := make([]*entity.SerialNumber, 0, count)
	for _, code := range codes {
		batch = append(batch, &entity.SerialNumber{
			ID:         uuid.New().String(),
			ProductID:  p.ID,
			Serial:     code,
			Status:     entity.SerialInStock,
			MovementID: mov.ID,
			CreatedAt:  mov.CreatedAt,
			UpdatedAt:  mov.CreatedAt,
		})
	}
	if err := repos.Serials.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return codes, nil
}

// retireSerials marca como SOLD (OUT, TRANSFER) o DAMAGED (ADJUSTMENT) exactamente las series
// que salen; todas deben estar IN_STOCK y pertenecer al producto.
func retireSerials(ctx context.Context, repos ledger.TxRepos, p *entity.Product, mov *entity.StockMovement, given []string) ([]string, error) {
	count := int(-mov.QuantityChange)
	if len(given) != count {
		return nil, domain.NewValidationError("serials", domain.CodeOutOfRange,
			fmt.Sprintf("se requieren exactamente %d números de serie para la salida, se recibieron %d", count, len(given)))
	}
	status := entity.SerialSold
	if mov.Type == entity.MovementTypeADJUSTMENT {
		status = entity.SerialDamaged
	}
	ve := &domain.ValidationError{}
	seen := make(map[string]struct{}, count)
	codes := make([]string, 0, count)
	for _, raw := range given {
		code := strings.TrimSpace(raw)
		if _, dup := seen[code]; dup {
			ve.Add("serials", domain.CodeInvalid, fmt.Sprintf("serie %q repetida", code))
			continue
		}
		seen[code] = struct{}{}
		sn, err := repos.Serials.GetBySerial(ctx, code)
		if err != nil {
			return nil, err
		}
		switch {
		case sn == nil:
			return nil, domain.NewNotFound("número de serie", code)
		case sn.ProductID != p.ID:
			ve.Add("serials", domain.CodeInvalid, fmt.Sprintf("la serie %q pertenece a otro producto", code))
		case sn.Status != entity.SerialInStock:
			ve.Add("serials", domain.CodeInvalid, fmt.Sprintf("la serie %q no está en stock (%s)", code, sn.Status))
		}
		codes = append(codes, code)
	}
	if !ve.Empty() {
		return nil, ve
	}
	for _, code := range codes {
		if err := repos.Serials.UpdateStatus(ctx, code, status, mov.CreatedAt); err != nil {
			return nil, err
		}
	}
	return codes, nil
}

// UpdateSerialStatus cambia el estado de una serie. Las transiciones son libres entre los cuatro estados.
func (s *Service) UpdateSerialStatus(ctx context.Context, serial string, in dto.UpdateSerialStatusRequest) (*dto.SerialResponse, error) {
	status := entity.SerialStatus(in.Status)
	if !status.Valid() {
		return nil, domain.NewValidationError("status", domain.CodeInvalid, "estado inválido (IN_STOCK, SOLD, DAMAGED, RETURNED)")
	}
	sn, err := s.serials.GetBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if sn == nil {
		return nil, domain.NewNotFound("número de serie", serial)
	}
	now := time.Now()
	if err := s.serials.UpdateStatus(ctx, serial, status, now); err != nil {
		return nil, err
	}
	sn.Status = status
	sn.UpdatedAt = now
	out := toSerialResponse(sn)
	return &out, nil
}

// ListSerials series del producto, opcionalmente filtradas por estado.
func (s *Service) ListSerials(ctx context.Context, productID, status string) ([]dto.SerialResponse, error) {
	if status != "" && !entity.SerialStatus(status).Valid() {
		return nil, domain.NewValidationError("status", domain.CodeInvalid, "estado inválido (IN_STOCK, SOLD, DAMAGED, RETURNED)")
	}
	if _, err := s.ledger.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	list, err := s.serials.ListByProduct(ctx, productID, entity.SerialStatus(status))
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerialResponse, 0, len(list))
	for _, sn := range list {
		out = append(out, toSerialResponse(sn))
	}
	return out, nil
}
