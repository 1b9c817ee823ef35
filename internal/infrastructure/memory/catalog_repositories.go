package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/inventory-tracker/internal/domain"
	"github.com/jhoicas/inventory-tracker/internal/domain/entity"
	"github.com/jhoicas/inventory-tracker/internal/domain/inventory"
	"github.com/jhoicas/inventory-tracker/internal/domain/repository"
)

// SupplierRepository proveedores y vínculos producto-proveedor en memoria.
type SupplierRepository struct {
	v view
}

func (r *SupplierRepository) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(d *state) error {
		d.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepository) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	r.v.read(func(d *state) {
		if s, ok := d.suppliers[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SupplierRepository) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	out := make([]*entity.Supplier, 0)
	r.v.read(func(d *state) {
		for _, s := range d.suppliers {
			out = append(out, &s)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *SupplierRepository) Count(_ context.Context) (int, error) {
	n := 0
	r.v.read(func(d *state) { n = len(d.suppliers) })
	return n, nil
}

func (r *SupplierRepository) Link(_ context.Context, l *entity.ProductSupplier) error {
	return r.v.write(func(d *state) error {
		if _, ok := d.products[l.ProductID]; !ok {
			return domain.NewNotFound("producto", l.ProductID)
		}
		if _, ok := d.suppliers[l.SupplierID]; !ok {
			return domain.NewNotFound("proveedor", l.SupplierID)
		}
		for _, existing := range d.links {
			if existing.ProductID == l.ProductID && existing.SupplierID == l.SupplierID {
				return domain.NewConflict("producto-proveedor", "product_id,supplier_id", l.ProductID+"/"+l.SupplierID)
			}
		}
		d.links = append(d.links, *l)
		return nil
	})
}

func (r *SupplierRepository) GetLink(_ context.Context, productID, supplierID string) (*entity.ProductSupplier, error) {
	var out *entity.ProductSupplier
	r.v.read(func(d *state) {
		for _, l := range d.links {
			if l.ProductID == productID && l.SupplierID == supplierID {
				out = &l
				return
			}
		}
	})
	return out, nil
}

// ListLinks preferido primero, luego por fecha de alta.
func (r *SupplierRepository) ListLinks(_ context.Context, productID string) ([]*entity.ProductSupplier, error) {
	out := make([]*entity.ProductSupplier, 0)
	r.v.read(func(d *state) {
		for _, l := range d.links {
			if l.ProductID == productID {
				out = append(out, &l)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsPreferred && !out[j].IsPreferred })
	return out, nil
}

func (r *SupplierRepository) ClearPreferred(_ context.Context, productID string) error {
	return r.v.write(func(d *state) error {
		for i := range d.links {
			if d.links[i].ProductID == productID {
				d.links[i].IsPreferred = false
			}
		}
		return nil
	})
}

// ReferenceRepository categorías, marcas, ubicaciones y unidades en memoria.
type ReferenceRepository struct {
	v view
}

func (r *ReferenceRepository) Create(_ context.Context, ref *entity.Reference) error {
	return r.v.write(func(d *state) error {
		for _, existing := range d.refs {
			if existing.Kind == ref.Kind && strings.EqualFold(existing.Name, ref.Name) {
				return domain.NewConflict(string(ref.Kind), "name", ref.Name)
			}
		}
		d.refs = append(d.refs, *ref)
		return nil
	})
}

func (r *ReferenceRepository) GetByID(_ context.Context, kind entity.ReferenceKind, id string) (*entity.Reference, error) {
	var out *entity.Reference
	r.v.read(func(d *state) {
		for _, ref := range d.refs {
			if ref.Kind == kind && ref.ID == id {
				out = &ref
				return
			}
		}
	})
	return out, nil
}

// GetByName sin distinguir mayúsculas.
func (r *ReferenceRepository) GetByName(_ context.Context, kind entity.ReferenceKind, name string) (*entity.Reference, error) {
	var out *entity.Reference
	r.v.read(func(d *state) {
		for _, ref := range d.refs {
			if ref.Kind == kind && strings.EqualFold(ref.Name, name) {
				out = &ref
				return
			}
		}
	})
	return out, nil
}

func (r *ReferenceRepository) List(_ context.Context, kind entity.ReferenceKind) ([]*entity.Reference, error) {
	out := make([]*entity.Reference, 0)
	r.v.read(func(d *state) {
		for _, ref := range d.refs {
			if ref.Kind == kind {
				out = append(out, &ref)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UserRepository usuarios en memoria.
type UserRepository struct {
	v view
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(d *state) error {
		for _, existing := range d.users {
			if existing.Username == u.Username {
				return domain.NewConflict("usuario", "username", u.Username)
			}
			if existing.Email == u.Email {
				return domain.NewConflict("usuario", "email", u.Email)
			}
		}
		d.users = append(d.users, *u)
		return nil
	})
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.Username == username }), nil
}

func (r *UserRepository) find(match func(entity.User) bool) *entity.User {
	var out *entity.User
	r.v.read(func(d *state) {
		for _, u := range d.users {
			if match(u) {
				out = &u
				return
			}
		}
	})
	return out
}

// ReportRepository calcula los feeds sobre el estado en memoria con las reglas de dominio.
type ReportRepository struct {
	v view
}

func (r *ReportRepository) LowStock(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	r.v.read(func(d *state) {
		out = inventory.LowStock(allProducts(d))
	})
	return out, nil
}

func (r *ReportRepository) ValueSummary(_ context.Context, by inventory.GroupBy) ([]inventory.ValueGroup, error) {
	kind := entity.ReferenceCategory
	if by == inventory.GroupByBrand {
		kind = entity.ReferenceBrand
	}
	var out []inventory.ValueGroup
	r.v.read(func(d *state) {
		names := make(map[string]string)
		for _, ref := range d.refs {
			if ref.Kind == kind {
				names[ref.ID] = ref.Name
			}
		}
		out = inventory.SummarizeValue(allProducts(d), by, names)
	})
	return out, nil
}

func (r *ReportRepository) SummaryStats(_ context.Context) (inventory.SummaryStats, error) {
	var out inventory.SummaryStats
	r.v.read(func(d *state) {
		out = inventory.Stats(allProducts(d))
	})
	return out, nil
}

func allProducts(d *state) []*entity.Product {
	out := make([]*entity.Product, 0, len(d.products))
	for _, p := range d.products {
		out = append(out, &p)
	}
	return out
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

var (
	_ repository.SupplierRepository  = (*SupplierRepository)(nil)
	_ repository.ReferenceRepository = (*ReferenceRepository)(nil)
	_ repository.UserRepository      = (*UserRepository)(nil)
	_ repository.ReportRepository    = (*ReportRepository)(nil)
)
