package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clubops/teesheet/internal/database"
	"github.com/clubops/teesheet/internal/pricing"
	"github.com/clubops/teesheet/internal/rates"
	"github.com/clubops/teesheet/internal/resources"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "teesheet.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	// Optional remote database
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	defer db.Close()

	rateStore := rates.New(db)
	catalog := resources.New(db)

	identityTypes := []pricing.IdentityType{
		{Code: "MEMBER", Name: "Member", Category: pricing.CategoryMember, Status: pricing.IdentityActive, SortOrder: 1, Color: "#2e7d32"},
		{Code: "SPOUSE", Name: "Member spouse", Category: pricing.CategoryMember, Status: pricing.IdentityActive, SortOrder: 2, Color: "#558b2f"},
		{Code: "GUEST", Name: "Guest of member", Category: pricing.CategoryStandard, Status: pricing.IdentityActive, SortOrder: 3, Color: "#1565c0"},
		{Code: "VISITOR", Name: "Visitor", Category: pricing.CategoryStandard, Status: pricing.IdentityActive, SortOrder: 4, Color: "#6a1b9a"},
		{Code: "JUNIOR", Name: "Junior", Category: pricing.CategorySpecial, Status: pricing.IdentityActive, SortOrder: 5, Color: "#ef6c00"},
	}
	for _, it := range identityTypes {
		if err := rateStore.UpsertIdentityType(it); err != nil {
			log.Fatalf("Failed to seed identity type %s: %s", it.Code, err)
		}
	}
	log.Info("Seeded identity types.", "count", len(identityTypes))

	validFrom := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	validTo := validFrom.AddDate(1, 0, 0)

	prices := func(member, guest, visitor, junior int64) map[pricing.IdentityCode]decimal.Decimal {
		return map[pricing.IdentityCode]decimal.Decimal{
			"MEMBER":  decimal.NewFromInt(member),
			"SPOUSE":  decimal.NewFromInt(member),
			"GUEST":   decimal.NewFromInt(guest),
			"VISITOR": decimal.NewFromInt(visitor),
			"JUNIOR":  decimal.NewFromInt(junior),
		}
	}

	type sheet struct {
		dayType pricing.DayType
		slot    pricing.TimeSlot
		prices  map[pricing.IdentityCode]decimal.Decimal
	}
	cells := []sheet{
		{pricing.DayTypeWeekday, pricing.SlotMorning, prices(500, 800, 1200, 300)},
		{pricing.DayTypeWeekday, pricing.SlotAfternoon, prices(450, 700, 1000, 250)},
		{pricing.DayTypeWeekday, pricing.SlotTwilight, prices(300, 500, 700, 200)},
		{pricing.DayTypeWeekend, pricing.SlotMorning, prices(700, 1100, 1600, 400)},
		{pricing.DayTypeWeekend, pricing.SlotAfternoon, prices(650, 1000, 1400, 350)},
		{pricing.DayTypeWeekend, pricing.SlotTwilight, prices(450, 700, 900, 250)},
		{pricing.DayTypeHoliday, pricing.SlotMorning, prices(750, 1200, 1700, 450)},
		{pricing.DayTypeHoliday, pricing.SlotAfternoon, prices(700, 1100, 1500, 400)},
		{pricing.DayTypeHoliday, pricing.SlotTwilight, prices(500, 750, 950, 300)},
	}
	for i, c := range cells {
		cell := pricing.RateCell{
			ID:       fmt.Sprintf("seed-%s-%s", c.dayType, c.slot),
			DayType:  c.dayType,
			TimeSlot: c.slot,
			Prices:   c.prices,
			ReducedPlayPolicy: pricing.ReducedPlayPolicy{
				Type: pricing.ReducedProportional,
				Rate: decimal.NewFromFloat(0.6),
			},
			CaddyFee:     decimal.NewFromInt(300),
			CartFee:      decimal.NewFromInt(200),
			InsuranceFee: decimal.NewFromInt(50),
			ValidFrom:    validFrom,
			ValidTo:      validTo,
			Priority:     1,
			Status:       pricing.CellActive,
		}
		if err := rateStore.UpsertRateCell(cell); err != nil {
			log.Fatalf("Failed to seed rate cell %d: %s", i, err)
		}
	}
	log.Info("Seeded rate sheet.", "cells", len(cells))

	policy := pricing.TeamPricingPolicy{
		Tiers: []pricing.Tier{
			{MinPlayers: 2, MaxPlayers: 4, DiscountRate: decimal.NewFromFloat(0.95), Label: "small group"},
		},
		FloorPriceRate: decimal.NewFromFloat(0.6),
	}
	if err := rateStore.SetTeamPricingPolicy(policy); err != nil {
		log.Fatalf("Failed to seed team pricing policy: %s", err)
	}
	log.Info("Seeded team pricing policy.")

	holidays := map[string]string{
		"2026-01-01": "New Year's Day",
		"2026-05-04": "Greenery Day",
		"2026-12-23": "Club Foundation Day",
	}
	for dateStr, name := range holidays {
		date, _ := time.Parse("2006-01-02", dateStr)
		if err := rateStore.AddHoliday(date, name); err != nil {
			log.Fatalf("Failed to seed holiday %s: %s", dateStr, err)
		}
	}
	log.Info("Seeded holiday calendar.", "count", len(holidays))

	seedResources := func(kind resources.Kind, prefix string, count int) {
		for i := 1; i <= count; i++ {
			r := resources.Resource{
				ID:   fmt.Sprintf("%s-%d", prefix, i),
				Kind: kind,
				Name: fmt.Sprintf("%s %d", prefix, i),
			}
			if err := catalog.Add(r); err != nil {
				log.Fatalf("Failed to seed resource %s: %s", r.ID, err)
			}
		}
	}
	seedResources(resources.KindCaddy, "caddy", 8)
	seedResources(resources.KindCart, "cart", 20)
	seedResources(resources.KindLocker, "locker", 60)
	seedResources(resources.KindRoom, "room", 10)
	seedResources(resources.KindBagStorage, "bag", 40)
	seedResources(resources.KindParking, "parking", 30)
	seedResources(resources.KindTempCard, "card", 50)
	log.Info("Seeded resource catalog.")

	log.Info("Seeder finished.")
}
