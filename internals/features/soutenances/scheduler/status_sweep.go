package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/gorm"

	"soutenance_backend/internals/features/soutenances/soutenances/service"
)

// StartStatusSweepScheduler periodically marks past planned soutenances
// as done, so listings stay truthful even when nobody hits the API.
func StartStatusSweepScheduler(db *gorm.DB) {
	go func() {
		intervalHours := 6
		if val := os.Getenv("STATUS_SWEEP_INTERVAL_HOURS"); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
				intervalHours = parsed
			}
		}

		svc := service.NewSoutenanceService(db)
		for {
			log.Println("[SWEEP] Running soutenance status sweep...")

			n, err := svc.SweepStatuses()
			if err != nil {
				log.Printf("[SWEEP ERROR] Status sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("[SWEEP] %d soutenances marked done", n)
			} else {
				log.Println("[SWEEP] Nothing to update")
			}

			time.Sleep(time.Duration(intervalHours) * time.Hour)
		}
	}()
}
