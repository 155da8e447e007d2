// seed crea un proveedor de demostración con su usuario admin, tipos de equipo y un cliente.
//
// Uso: go run ./cmd/seed [email-admin] [password]
// Por defecto: admin@demo.local / admin12345
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/FireSafety-api/internal/application/auth"
	"github.com/jhoicas/FireSafety-api/internal/domain/entity"
	"github.com/jhoicas/FireSafety-api/internal/infrastructure/postgres"
	"github.com/jhoicas/FireSafety-api/pkg/config"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

var seedTypes = []entity.EquipmentType{
	{Name: "Extintor PQS 10 lb", Code: "PQS-10", Manufacturer: "Kidde", Model: "PRO 10", DefaultLifespanYears: 12,
		Specifications: json.RawMessage(`{"agente":"polvo químico seco","capacidad_lb":10,"clase":"ABC"}`)},
	{Name: "Extintor CO2 15 lb", Code: "CO2-15", Manufacturer: "Amerex", Model: "332", DefaultLifespanYears: 20,
		Specifications: json.RawMessage(`{"agente":"CO2","capacidad_lb":15,"clase":"BC"}`)},
	{Name: "Gabinete contra incendio", Code: "GCI-01", Manufacturer: "Badger", DefaultLifespanYears: 15},
	{Name: "Detector de humo fotoeléctrico", Code: "DET-FOTO", Manufacturer: "System Sensor", Model: "2151", DefaultLifespanYears: 10},
}

func main() {
	email, password := "admin@demo.local", "admin12345"
	if len(os.Args) > 2 {
		email, password = os.Args[1], os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("iniciar transacción")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now().UTC()
	vendor := &entity.Vendor{
		ID: uuid.New().String(), Name: "Proveedor Demo", TaxID: "900000000-1",
		Email: email, Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	if err := postgres.NewVendorRepository(tx).Create(ctx, vendor); err != nil {
		log.Fatal().Err(err).Msg("crear proveedor")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal().Err(err).Msg("hash de contraseña")
	}
	admin := &entity.User{
		ID: uuid.New().String(), VendorID: vendor.ID, Email: email, PasswordHash: hash,
		Name: "Administrador", Role: entity.RoleAdmin, Status: "active", CreatedAt: now, UpdatedAt: now,
	}
	if err := postgres.NewUserRepository(tx).Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}

	types := postgres.NewEquipmentTypeRepository(tx)
	for _, t := range seedTypes {
		t.ID = uuid.New().String()
		t.VendorID = vendor.ID
		t.CreatedAt, t.UpdatedAt = now, now
		if err := types.Create(ctx, &t); err != nil {
			log.Fatal().Err(err).Str("code", t.Code).Msg("crear tipo de equipo")
		}
	}

	client := &entity.Client{
		ID: uuid.New().String(), CreatedByVendorID: vendor.ID, Name: "Edificio Central",
		ContactName: "Administración", Status: entity.ClientStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	if err := postgres.NewClientRepository(tx).Create(ctx, client); err != nil {
		log.Fatal().Err(err).Msg("crear cliente")
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatal().Err(err).Msg("confirmar seed")
	}
	log.Info().
		Str("vendor_id", vendor.ID).
		Str("admin", email).
		Int("equipment_types", len(seedTypes)).
		Msg("seed completado")
}
