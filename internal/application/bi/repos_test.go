package bi_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fechaPtr(s string) *time.Time {
	t := fecha(s)
	return &t
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fakeConfigRepo struct {
	config *entity.RequisitionConfig
	err    error
}

func (f *fakeConfigRepo) GetByID(id string) (*entity.RequisitionConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.config == nil || f.config.ID != id {
		return nil, nil
	}
	return f.config, nil
}

type fakeOrderRepo struct {
	orders []entity.Order
}

func (f *fakeOrderRepo) ListByConfig(configID string, confirmedOnly bool) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		if o.RequisitionConfigID != configID {
			continue
		}
		if confirmedOnly && !o.ConfirmGTC {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, nil
}

type fakeShipmentRepo struct {
	normal   []entity.Shipment
	forecast []entity.Shipment

	lastNormalBefore   time.Time
	lastForecastBefore time.Time
	forecastCalls      int
}

func (f *fakeShipmentRepo) ListNormalBefore(configID string, before time.Time) ([]entity.Shipment, error) {
	f.lastNormalBefore = before
	out := make([]entity.Shipment, 0, len(f.normal))
	for _, s := range f.normal {
		if s.RequisitionConfigID == configID && s.ValidFrom.Before(before) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeShipmentRepo) ListForecast(configID string, before, after time.Time) ([]entity.Shipment, error) {
	f.lastForecastBefore = before
	f.forecastCalls++
	out := make([]entity.Shipment, 0, len(f.forecast))
	for _, s := range f.forecast {
		if s.RequisitionConfigID != configID || !s.ValidFrom.Before(before) {
			continue
		}
		if s.ValidTo != nil && !s.ValidTo.After(after) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeCatalogRepo struct {
	categories []entity.ProductCategory
}

func (f *fakeCatalogRepo) ListByConfig(configID string) ([]entity.ProductCategory, error) {
	return f.categories, nil
}

type fakeDepotRepo struct {
	depots []entity.Depot
}

func (f *fakeDepotRepo) List() ([]entity.Depot, error) {
	return f.depots, nil
}
