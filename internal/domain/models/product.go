// internal/domain/models/product.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// StockBarCapacity is the stock level drawn as a full bar on the products screen.
const StockBarCapacity = 200

// Product is an egg product a farm lists for sale.
type Product struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Farm      string             `bson:"farm" yaml:"farm" json:"farm"`
	Name      string             `bson:"name" yaml:"name" json:"name"`
	Size      string             `bson:"size" yaml:"size" json:"size"`
	Price     float64            `bson:"price" yaml:"price" json:"price"`
	Stock     int                `bson:"stock" yaml:"stock" json:"stock"`
	Available bool               `bson:"available" yaml:"available" json:"available"`
}

// StockPercent returns the stock level relative to StockBarCapacity, capped at 100.
func (p Product) StockPercent() int {
	if p.Stock <= 0 {
		return 0
	}
	pct := p.Stock * 100 / StockBarCapacity
	if pct > 100 {
		return 100
	}
	return pct
}

// InventoryValue sums price times stock over the available products.
func InventoryValue(products []Product) float64 {
	var total float64
	for _, p := range products {
		if p.Available {
			total += p.Price * float64(p.Stock)
		}
	}
	return total
}
