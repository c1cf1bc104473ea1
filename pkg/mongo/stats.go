package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type OrderStatusBucket struct {
	Status  string  `json:"status" bson:"_id"`
	Count   int     `json:"count" bson:"count"`
	Revenue float64 `json:"revenue" bson:"revenue"`
}

type SalesStats struct {
	ByStatus     []OrderStatusBucket `json:"byStatus"`
	TotalOrders  int                 `json:"totalOrders"`
	TotalRevenue float64             `json:"totalRevenue"`
}

// SalesStats aggregates order counts and revenue per status for the admin
// dashboard. Cancelled orders are excluded from the revenue total.
func (s *OrderStore) SalesStats(ctx context.Context) (*SalesStats, error) {
	pipeline := bson.A{
		bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: "$status"},
				{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
				{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_amount"}}},
			}},
		},
		bson.D{
			{Key: "$project", Value: bson.D{
				{Key: "count", Value: 1},
				{Key: "revenue", Value: bson.D{{Key: "$round", Value: bson.A{"$revenue", 2}}}},
			}},
		},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var buckets []OrderStatusBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, err
	}

	stats := &SalesStats{ByStatus: buckets}
	for _, bucket := range buckets {
		stats.TotalOrders += bucket.Count
		if bucket.Status != "cancelled" {
			stats.TotalRevenue += bucket.Revenue
		}
	}

	return stats, nil
}
