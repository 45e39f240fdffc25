package sales

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/permission"
)

// SalesReport resume las ventas de un rango de fechas: total, cantidad de
// órdenes y ticket promedio, contando solo órdenes completadas (el filtro
// de estado se aplica en el storage, antes de paginar). El total se
// recalcula desde las líneas, no desde el campo cacheado TotalAmount.
// Requiere reports:view.
func (uc *OrderUseCase) SalesReport(actor *entity.User, in dto.DateRangeRequest, limit, offset int) (*dto.SalesSummary, error) {
	if !uc.perms.Has(actor, permission.ReportsView) {
		return nil, domain.ErrForbidden
	}
	if in.EndDate.Before(in.StartDate) {
		return nil, domain.ErrInvalidInput
	}

	orders, err := uc.orders.ListByDateRange(in.StartDate, in.EndDate, entity.OrderCompleted, limit, offset)
	if err != nil {
		return nil, err
	}

	totalSales := decimal.Zero
	count := 0
	for _, order := range orders {
		for i := range order.Items {
			totalSales = totalSales.Add(order.Items[i].Subtotal())
		}
		count++
	}
	avg := decimal.Zero
	if count > 0 {
		avg = totalSales.Div(decimal.NewFromInt(int64(count)))
	}
	return &dto.SalesSummary{
		TotalSales:        totalSales,
		OrderCount:        count,
		AverageOrderValue: avg,
		StartDate:         in.StartDate,
		EndDate:           in.EndDate,
	}, nil
}

// DailySales desglosa las ventas completadas de los últimos N días por día
// calendario (total y cantidad de órdenes por fecha, ascendente). Los días
// sin ventas no aparecen. Requiere reports:view.
func (uc *OrderUseCase) DailySales(actor *entity.User, days, limit, offset int) ([]dto.DailySalesEntry, error) {
	if !uc.perms.Has(actor, permission.ReportsView) {
		return nil, domain.ErrForbidden
	}
	if days <= 0 {
		days = 7
	}

	now := time.Now()
	from := now.AddDate(0, 0, -(days - 1))
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	orders, err := uc.orders.ListByDateRange(from, now, entity.OrderCompleted, limit, offset)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*dto.DailySalesEntry)
	for _, order := range orders {
		day := order.CreatedAt.Format("2006-01-02")
		entry, ok := byDay[day]
		if !ok {
			entry = &dto.DailySalesEntry{Date: day, TotalSales: decimal.Zero}
			byDay[day] = entry
		}
		for i := range order.Items {
			entry.TotalSales = entry.TotalSales.Add(order.Items[i].Subtotal())
		}
		entry.OrderCount++
	}

	out := make([]dto.DailySalesEntry, 0, len(byDay))
	for _, entry := range byDay {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}
