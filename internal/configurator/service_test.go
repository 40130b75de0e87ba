package configurator

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kitboxworks/kitbox-backend/pkg/db/models"
	"github.com/kitboxworks/kitbox-backend/pkg/enums"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
)

func testService(t *testing.T) Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.CabinetConfiguration{}, &models.Compartment{}); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func validConfiguration() models.CabinetConfiguration {
	return models.CabinetConfiguration{
		Name:            "hallway cabinet",
		WidthCM:         52,
		DepthCM:         42,
		Color:           enums.CabinetColorWhite,
		AngleIronFinish: enums.AngleIronFinishWhite,
		Compartments: []models.Compartment{
			{Position: 1, HeightCM: 42, WidthCM: 52, DepthCM: 42},
			{Position: 2, HeightCM: 32, WidthCM: 52, DepthCM: 42, HasDoor: true, DoorColor: enums.DoorColorBrown},
		},
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.CabinetConfiguration)
		wantErr bool
	}{
		{"valid", func(*models.CabinetConfiguration) {}, false},
		{"noCompartments", func(c *models.CabinetConfiguration) {
			c.Compartments = nil
		}, true},
		{"tooManyCompartments", func(c *models.CabinetConfiguration) {
			for i := 0; i < 8; i++ {
				c.Compartments = append(c.Compartments, models.Compartment{Position: i + 3, HeightCM: 32, WidthCM: 52, DepthCM: 42})
			}
		}, true},
		{"unknownColor", func(c *models.CabinetConfiguration) {
			c.Color = enums.CabinetColor("plaid")
		}, true},
		{"unknownFinish", func(c *models.CabinetConfiguration) {
			c.AngleIronFinish = enums.AngleIronFinish("chrome")
		}, true},
		{"unknownDoorColor", func(c *models.CabinetConfiguration) {
			c.Compartments[1].DoorColor = enums.DoorColor("tartan")
		}, true},
		{"zeroHeight", func(c *models.CabinetConfiguration) {
			c.Compartments[0].HeightCM = 0
		}, true},
		{"negativeDepth", func(c *models.CabinetConfiguration) {
			c.Compartments[0].DepthCM = -1
		}, true},
		{"nonStandardSizesAllowed", func(c *models.CabinetConfiguration) {
			c.Compartments[0].HeightCM = 45
			c.Compartments[0].WidthCM = 57
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfiguration()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr {
				if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
					t.Fatalf("expected validation code, got %v", err)
				}
			}
		})
	}
}

func TestCreate_RoundTripPreservesConfiguration(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validConfiguration())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}

	loaded, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}

	if loaded.Name != "hallway cabinet" || loaded.WidthCM != 52 || loaded.DepthCM != 42 {
		t.Fatalf("configuration fields did not round-trip: %+v", loaded)
	}
	if loaded.Color != enums.CabinetColorWhite || loaded.AngleIronFinish != enums.AngleIronFinishWhite {
		t.Fatalf("enum fields did not round-trip: %+v", loaded)
	}
	if len(loaded.Compartments) != 2 {
		t.Fatalf("expected 2 compartments, got %d", len(loaded.Compartments))
	}
	for i, comp := range loaded.Compartments {
		if comp.Position != i+1 {
			t.Fatalf("compartments out of order: position %d at index %d", comp.Position, i)
		}
		if comp.ConfigurationID != created.ID {
			t.Fatalf("compartment %d not linked to configuration", comp.Position)
		}
	}
	second := loaded.Compartments[1]
	if !second.HasDoor || second.DoorColor != enums.DoorColorBrown {
		t.Fatalf("door fields did not round-trip: %+v", second)
	}
}

func TestCreate_NormalizesCompartmentOrder(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	cfg := validConfiguration()
	// positions arrive sparse and out of order
	cfg.Compartments[0].Position = 9
	cfg.Compartments[1].Position = 4

	created, err := svc.Create(ctx, cfg)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	loaded, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if loaded.Compartments[0].Position != 1 || loaded.Compartments[1].Position != 2 {
		t.Fatalf("expected positions reindexed 1..n, got %d and %d",
			loaded.Compartments[0].Position, loaded.Compartments[1].Position)
	}
	// position 4 sorted first, so the doored compartment now leads
	if !loaded.Compartments[0].HasDoor {
		t.Fatal("expected sort by incoming position before reindexing")
	}
}

func TestUpdate_ReplacesCompartments(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validConfiguration())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated := *created
	updated.Name = "hallway cabinet v2"
	updated.Compartments = []models.Compartment{
		{Position: 1, HeightCM: 52, WidthCM: 52, DepthCM: 42},
	}

	if _, err := svc.Update(ctx, updated); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	loaded, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if loaded.Name != "hallway cabinet v2" {
		t.Fatalf("expected updated name, got %q", loaded.Name)
	}
	if len(loaded.Compartments) != 1 {
		t.Fatalf("expected old compartments replaced, got %d", len(loaded.Compartments))
	}
	if loaded.Compartments[0].HeightCM != 52 {
		t.Fatalf("expected new compartment height 52, got %d", loaded.Compartments[0].HeightCM)
	}
}

func TestUpdate_RequiresExistingConfiguration(t *testing.T) {
	svc := testService(t)

	missing := validConfiguration()
	missing.ID = uuid.New()

	_, err := svc.Update(context.Background(), missing)
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := testService(t)

	_, err := svc.GetByID(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestOverallHeight(t *testing.T) {
	cfg := validConfiguration()
	if got := cfg.CompartmentHeightSum(); got != 74 {
		t.Fatalf("expected height sum 74, got %d", got)
	}
	if got := cfg.OverallHeightCM(); got != 78 {
		t.Fatalf("expected overall height 78, got %d", got)
	}
	if got := cfg.DoorCount(); got != 1 {
		t.Fatalf("expected 1 door, got %d", got)
	}
}
