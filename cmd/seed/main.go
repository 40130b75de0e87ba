package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	"github.com/kitboxworks/kitbox-backend/internal/stock"
	"github.com/kitboxworks/kitbox-backend/pkg/config"
	"github.com/kitboxworks/kitbox-backend/pkg/db"
	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
)

var (
	standardHeights = []int{32, 42, 52}
	standardWidths  = []int{32, 42, 52, 62, 80, 100, 120}
	standardDepths  = []int{32, 42, 52, 62}

	cabinetSuffixes = map[string]string{"BL": "white", "NR": "black", "NA": "natural"}
	doorSuffixes    = map[string]string{"BL": "white", "BR": "brown", "VE": "glass"}
	finishSuffixes  = map[string]string{"BL": "white", "NR": "black", "GL": "galvanized"}
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	seed := flag.Int64("seed", 1, "random seed for prices and stock levels")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	rng := rand.New(rand.NewSource(*seed))
	parts := buildCatalog(rng)

	repo := catalog.NewRepository(dbClient.DB())
	if err := repo.UpsertParts(ctx, parts); err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}

	store := stock.NewGormStore(dbClient.DB())
	for _, part := range parts {
		item := models.StockItem{
			PartCode:          part.Code,
			CurrentStock:      part.StockQuantity,
			ReorderPoint:      part.MinimumStock,
			ReorderQuantity:   50,
			MinimumLevel:      part.MinimumStock,
			MaximumLevel:      part.StockQuantity * 2,
			Supplier:          fmt.Sprintf("supplier-%d", 1+rng.Intn(2)),
			WarehouseLocation: fmt.Sprintf("%c-%02d", 'A'+rng.Intn(4), 1+rng.Intn(20)),
		}
		if err := store.Upsert(ctx, item); err != nil {
			logg.Error(ctx, "failed to seed stock", err)
			os.Exit(1)
		}
	}

	ctx = logg.WithField(ctx, "parts", len(parts))
	logg.Info(ctx, "catalog seeded")
}

func buildCatalog(rng *rand.Rand) []models.Part {
	var parts []models.Part

	for _, h := range standardHeights {
		parts = append(parts, newPart(rng,
			fmt.Sprintf("BAT-%d", h),
			fmt.Sprintf("Vertical batten %d", h),
			fmt.Sprintf("H%d", h-4),
			enums.PartCategoryBatten, "", 3, 8))
	}

	for _, d := range standardDepths {
		parts = append(parts, newPart(rng,
			fmt.Sprintf("CRL-%d", d),
			fmt.Sprintf("Lateral crossbar %d", d),
			fmt.Sprintf("D%d", d),
			enums.PartCategoryCrossbar, "", 2, 6))
	}

	for _, w := range standardWidths {
		parts = append(parts, newPart(rng,
			fmt.Sprintf("CRF-%d", w),
			fmt.Sprintf("Front crossbar %d", w),
			fmt.Sprintf("W%d", w),
			enums.PartCategoryCrossbar, "", 2, 7))
	}

	for suffix, color := range cabinetSuffixes {
		for _, h := range standardHeights {
			for _, w := range standardWidths {
				parts = append(parts, newPart(rng,
					fmt.Sprintf("PNB-%dx%d-%s", h, w, suffix),
					fmt.Sprintf("Back panel %s", color),
					fmt.Sprintf("%dx%d", h, w),
					enums.PartCategoryPanel, color, 6, 18))
			}
			for _, d := range standardDepths {
				parts = append(parts, newPart(rng,
					fmt.Sprintf("PNS-%dx%d-%s", h, d, suffix),
					fmt.Sprintf("Side panel %s", color),
					fmt.Sprintf("%dx%d", h, d),
					enums.PartCategoryPanel, color, 5, 15))
			}
		}
		for _, w := range standardWidths {
			for _, d := range standardDepths {
				parts = append(parts, newPart(rng,
					fmt.Sprintf("PNH-%dx%d-%s", w, d, suffix),
					fmt.Sprintf("Horizontal panel %s", color),
					fmt.Sprintf("%dx%d", w, d),
					enums.PartCategoryPanel, color, 5, 16))
			}
		}
	}

	for suffix, color := range doorSuffixes {
		for _, h := range standardHeights {
			for _, w := range standardWidths {
				parts = append(parts, newPart(rng,
					fmt.Sprintf("DRP-%dx%d-%s", h, w, suffix),
					fmt.Sprintf("Door panel %s", color),
					fmt.Sprintf("%dx%d", h, w/2),
					enums.PartCategoryDoor, color, 9, 30))
			}
		}
	}

	for suffix, finish := range finishSuffixes {
		parts = append(parts, newPart(rng,
			"AGI-S-"+suffix,
			fmt.Sprintf("Corner iron short %s", finish),
			"H36",
			enums.PartCategoryAngleIron, finish, 4, 9))
		parts = append(parts, newPart(rng,
			"AGI-L-"+suffix,
			fmt.Sprintf("Corner iron long %s", finish),
			"H160",
			enums.PartCategoryAngleIron, finish, 6, 14))
	}

	parts = append(parts,
		newPart(rng, "HDL-CUP", "Cup handle", "", enums.PartCategoryHardware, "", 1, 4),
		newPart(rng, "FOOT-STD", "Adjustable foot", "", enums.PartCategoryFoot, "", 1, 3),
	)

	return parts
}

// newPart rolls supplier quotes in the [low, high] euro range. Roughly one
// part in six has no second supplier, which exercises the arbitration paths.
func newPart(rng *rand.Rand, code, reference, dimensions string, category enums.PartCategory, color string, low, high int) models.Part {
	part := models.Part{
		Code:               code,
		Reference:          reference,
		Dimensions:         dimensions,
		Category:           category,
		Color:              color,
		Supplier1Price:     rollPrice(rng, low, high),
		Supplier1DelayDays: 3 + rng.Intn(20),
		StockQuantity:      rng.Intn(120),
		MinimumStock:       5 + rng.Intn(10),
	}
	if rng.Intn(6) > 0 {
		part.Supplier2Price = rollPrice(rng, low, high)
		part.Supplier2DelayDays = 3 + rng.Intn(20)
	}
	return part
}

func rollPrice(rng *rand.Rand, low, high int) decimal.Decimal {
	euros := low + rng.Intn(high-low+1)
	cents := rng.Intn(100)
	return decimal.New(int64(euros*100+cents), -2)
}
