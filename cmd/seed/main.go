package main

import (
	"log"
	"os"
	"time"

	"machinepark/internal/database"
	"machinepark/internal/domain"
)

// Seeds a local database with machine services, blocked dates and one
// historical reservation ready for usage reconciliation.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "machinepark.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.MachineService{},
		&domain.BlockedDate{},
		&domain.Reservation{},
		&domain.ReservationDay{},
		&domain.UsageSlot{},
		&domain.DowntimeEntry{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM downtime_entries")
	db.Exec("DELETE FROM usage_slots")
	db.Exec("DELETE FROM reservation_days")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM blocked_dates")
	db.Exec("DELETE FROM machine_services")

	services := []domain.MachineService{
		{Name: "CNC mill", Capacity: 3, RatePerMinute: 5},
		{Name: "Laser cutter", Capacity: 2, RatePerMinute: 8},
		{Name: "3D printer", Capacity: 6, RatePerMinute: 1.5},
	}
	for i := range services {
		if err := db.Create(&services[i]).Error; err != nil {
			log.Fatal("seed services failed:", err)
		}
	}

	nextMonth := time.Now().UTC().AddDate(0, 1, 0)
	blocked := domain.BlockedDate{
		Date:   time.Date(nextMonth.Year(), nextMonth.Month(), 15, 0, 0, 0, 0, time.UTC),
		Reason: "maintenance window",
	}
	if err := db.Create(&blocked).Error; err != nil {
		log.Fatal("seed blocked dates failed:", err)
	}

	// A past reservation with recorded usage and downtime, so the usage
	// endpoints have something to reconcile out of the box.
	day := time.Now().UTC().AddDate(0, 0, -7)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start, end := 9*60, 11*60

	res := domain.Reservation{
		ServiceID:   services[0].ID,
		RequesterID: 1,
		Status:      domain.ReservationActive,
		Days: []domain.ReservationDay{
			{Date: day, StartMinute: &start, EndMinute: &end, Quantity: 2},
		},
	}
	if err := db.Create(&res).Error; err != nil {
		log.Fatal("seed reservation failed:", err)
	}

	slotStart := day.Add(9 * time.Hour)
	slotEnd := day.Add(11 * time.Hour)
	slot := domain.UsageSlot{
		ReservationID: res.ID,
		DayNum:        1,
		StartTime:     &slotStart,
		EndTime:       &slotEnd,
		Status:        domain.SlotOngoing,
	}
	if err := db.Create(&slot).Error; err != nil {
		log.Fatal("seed usage slot failed:", err)
	}

	downtime := domain.DowntimeEntry{
		ReservationID:   res.ID,
		DurationMinutes: 30,
		Cause:           "spindle jam",
	}
	if err := db.Create(&downtime).Error; err != nil {
		log.Fatal("seed downtime failed:", err)
	}

	log.Printf("seeded %d services, 1 blocked date, reservation #%d", len(services), res.ID)
}
