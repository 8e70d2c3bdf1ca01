package generator

import (
	"context"
	"log"

	"commerce-seeder/internal/config"
	"commerce-seeder/internal/model"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderStats counts what the order stage wrote
type OrderStats struct {
	Attempts int
	Orders   int
	Items    int
	ByStatus map[model.OrderStatus]int
}

// merchantPartition is the slice of one checkout attempt sold by one merchant
type merchantPartition struct {
	MerchantID uint
	Variants   []VariantSummary
}

// CreateOrders simulates checkout attempts for every customer. An attempt
// samples distinct variants and becomes one order per merchant whose items
// were sampled.
func (g *Generator) CreateOrders(ctx context.Context, customers []UserSummary, variants []VariantSummary, products []ProductSummary, attempts, items config.Range) (OrderStats, error) {
	log.Println("Creating orders...")
	stats := OrderStats{ByStatus: make(map[model.OrderStatus]int)}

	switch {
	case len(customers) == 0:
		log.Println("No customers to create orders for, skipping order creation")
		return stats, nil
	case len(variants) == 0:
		log.Println("No product variants available to create orders, skipping order creation")
		return stats, nil
	case len(products) == 0:
		log.Println("No product info available to map variants to merchants, skipping order creation")
		return stats, nil
	}

	owners := lo.SliceToMap(products, func(p ProductSummary) (uint, uint) {
		return p.ID, p.OwnerID
	})

	for _, customer := range customers {
		n := intBetween(g.rng, attempts)
		log.Printf("Simulating %d checkout attempts for customer %s (ID: %d)", n, customer.Username, customer.ID)

		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			stats.Attempts++

			k := min(intBetween(g.rng, items), len(variants))
			if k == 0 {
				continue
			}
			sampled := sampleVariants(g.rng, variants, k)

			for _, partition := range partitionByMerchant(sampled, owners) {
				order := g.buildOrder(customer.ID, partition.Variants)
				if err := g.orders.CreateOrder(ctx, order); err != nil {
					log.Printf("Error creating order for merchant %d, customer %d: %v", partition.MerchantID, customer.ID, err)
					continue
				}
				log.Printf("Created order ID: %d for merchant %d, user %d, status %s, total %s",
					order.ID, partition.MerchantID, customer.ID, order.Status, order.TotalAmount.StringFixed(2))

				stats.Orders++
				stats.Items += len(order.Items)
				stats.ByStatus[order.Status]++
			}
		}
	}

	log.Println("Orders creation complete")
	return stats, nil
}

// buildOrder prices the lines, derives the status timeline and copies the
// snapshot fields. Lines share the order's timestamps.
func (g *Generator) buildOrder(customerID uint, lines []VariantSummary) *model.Order {
	now := g.now()

	items := lo.Map(lines, func(v VariantSummary, _ int) model.OrderItem {
		return model.OrderItem{
			ProductID:            v.ProductID,
			ProductVariantID:     v.ID,
			Quantity:             1 + g.rng.IntN(2),
			PurchasedPrice:       v.Price,
			SnapshotProductName:  v.ProductName,
			SnapshotVariantColor: copyString(v.Color),
			SnapshotVariantSize:  copyString(v.Size),
			SnapshotVariantImage: copyString(v.Image),
		}
	})
	total := lo.Reduce(items, func(sum decimal.Decimal, item model.OrderItem, _ int) decimal.Decimal {
		return sum.Add(item.LineTotal())
	}, decimal.Zero)

	createdAt := DrawCreatedAt(now, g.rng)
	timeline := DeriveFinalStatus(g.statuses.Draw(g.rng), createdAt, now, g.rng)

	for i := range items {
		items[i].CreatedAt = createdAt
		items[i].UpdatedAt = timeline.UpdatedAt
	}

	return &model.Order{
		UserID:      customerID,
		Status:      timeline.Status,
		TotalAmount: total,
		CreatedAt:   createdAt,
		UpdatedAt:   timeline.UpdatedAt,
		ExpiresAt:   timeline.ExpiresAt,
		Items:       items,
	}
}

// sampleVariants picks k distinct variants (partial Fisher-Yates)
func sampleVariants(rng Rand, variants []VariantSummary, k int) []VariantSummary {
	idx := make([]int, len(variants))
	for i := range idx {
		idx[i] = i
	}
	sampled := make([]VariantSummary, 0, k)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		sampled = append(sampled, variants[idx[i]])
	}
	return sampled
}

// partitionByMerchant groups sampled variants by the owner of their product,
// in the order merchants are first seen. Variants whose product has no known
// owner are dropped.
func partitionByMerchant(sampled []VariantSummary, owners map[uint]uint) []merchantPartition {
	resolved := lo.Filter(sampled, func(v VariantSummary, _ int) bool {
		if _, ok := owners[v.ProductID]; !ok {
			log.Printf("Warning: could not find owner for product_id %d (variant_id %d), skipping this variant", v.ProductID, v.ID)
			return false
		}
		return true
	})

	ownerOf := func(v VariantSummary) uint { return owners[v.ProductID] }
	groups := lo.GroupBy(resolved, ownerOf)
	merchantIDs := lo.Uniq(lo.Map(resolved, func(v VariantSummary, _ int) uint { return ownerOf(v) }))

	return lo.Map(merchantIDs, func(id uint, _ int) merchantPartition {
		return merchantPartition{MerchantID: id, Variants: groups[id]}
	})
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	return lo.ToPtr(*s)
}
