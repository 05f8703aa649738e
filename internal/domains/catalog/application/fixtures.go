package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/domain"
	"github.com/Apurer/retail-inventory-api/internal/domains/catalog/ports"
)

const fixtureBatchSize = 500

var (
	fixtureCategories = []string{"ELEC", "CLTH", "HOME", "SPRT", "FOOD", "BOOK", "TOYS", "AUTO"}
	fixtureAdjectives = []string{"Ergonomic", "Rustic", "Sleek", "Handmade", "Durable", "Compact", "Refined", "Smart"}
	fixtureMaterials  = []string{"Steel", "Cotton", "Granite", "Bamboo", "Leather", "Plastic", "Wooden", "Rubber"}
	fixtureNouns      = []string{"Chair", "Lamp", "Keyboard", "Bottle", "Jacket", "Backpack", "Speaker", "Table"}
	fixtureFirstNames = []string{"Ava", "Liam", "Mia", "Noah", "Zoe", "Ethan", "Lena", "Omar", "Ines", "Kai"}
	fixtureLastNames  = []string{"Novak", "Silva", "Kowalski", "Brown", "Tanaka", "Moreau", "Rossi", "Jensen", "Okafor", "Weber"}
	fixtureDomains    = []string{"example.com", "example.org", "example.net"}
)

// FixtureSeeder writes random products and customers for local runs and load tests.
type FixtureSeeder struct {
	products  ports.ProductRepository
	customers ports.CustomerRepository
	rng       *rand.Rand
}

func NewFixtureSeeder(products ports.ProductRepository, customers ports.CustomerRepository, rng *rand.Rand) *FixtureSeeder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &FixtureSeeder{products: products, customers: customers, rng: rng}
}

// SeedProducts writes count random products in batches and returns how many were written.
func (f *FixtureSeeder) SeedProducts(ctx context.Context, count int) (int, error) {
	written := 0
	for written < count {
		take := min(fixtureBatchSize, count-written)
		batch := make([]*domain.Product, 0, take)
		for i := 0; i < take; i++ {
			id := uuid.New()
			sku := fmt.Sprintf("%s-%s", pick(f.rng, fixtureCategories), strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]))
			name := fmt.Sprintf("%s %s %s", pick(f.rng, fixtureAdjectives), pick(f.rng, fixtureMaterials), pick(f.rng, fixtureNouns))
			cents := 100 + f.rng.Int64N(49901)
			product, err := domain.NewProduct(id, name, sku, decimal.New(cents, -2), f.rng.IntN(501))
			if err != nil {
				return written, mapError(err)
			}
			batch = append(batch, product)
		}
		if err := f.products.Save(ctx, batch...); err != nil {
			return written, mapError(err)
		}
		written += take
	}
	return written, nil
}

// SeedCustomers writes count random customers in batches and returns how many were written.
func (f *FixtureSeeder) SeedCustomers(ctx context.Context, count int) (int, error) {
	written := 0
	for written < count {
		take := min(fixtureBatchSize, count-written)
		batch := make([]*domain.Customer, 0, take)
		for i := 0; i < take; i++ {
			id := uuid.New()
			first, last := pick(f.rng, fixtureFirstNames), pick(f.rng, fixtureLastNames)
			email := fmt.Sprintf("%s.%s.%s@%s", strings.ToLower(first), strings.ToLower(last), strings.ReplaceAll(id.String(), "-", ""), pick(f.rng, fixtureDomains))
			customer, err := domain.NewCustomer(id, first, last, email)
			if err != nil {
				return written, mapError(err)
			}
			batch = append(batch, customer)
		}
		if err := f.customers.Save(ctx, batch...); err != nil {
			return written, mapError(err)
		}
		written += take
	}
	return written, nil
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.IntN(len(values))]
}
