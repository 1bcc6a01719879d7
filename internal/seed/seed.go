// Package seed fills an empty store with synthetic bookings for demo and
// exploratory-testing setups.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	"roombooker/internal/database"
	"roombooker/internal/models"
)

const bookingCount = 10

// Names is the pool of guest data the seeder draws from.
type Names struct {
	First []string `yaml:"first"`
	Last  []string `yaml:"last"`
	Needs []string `yaml:"needs"`
}

// DefaultNames backs the seeder when no names file is configured.
func DefaultNames() Names {
	return Names{
		First: []string{"Sally", "Jim", "Susan", "Mark", "Mary", "Eric"},
		Last:  []string{"Brown", "Smith", "Jackson", "Wilson", "Ericsson", "Jones"},
		Needs: []string{"Breakfast", "Late checkout", "Extra pillows", ""},
	}
}

// LoadNames reads a guest-name pool from a YAML file.
func LoadNames(path string) (Names, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Names{}, err
	}

	var names Names
	if err := yaml.Unmarshal(data, &names); err != nil {
		return Names{}, fmt.Errorf("parse seed names: %w", err)
	}
	if len(names.First) == 0 || len(names.Last) == 0 {
		return Names{}, fmt.Errorf("seed names file %s has no first/last names", path)
	}
	return names, nil
}

// Run creates ten random bookings.
func Run(ctx context.Context, store *database.Store, names Names, logger *zerolog.Logger) error {
	for i := 0; i < bookingCount; i++ {
		booking := randomBooking(names)
		if err := store.Create(ctx, &booking); err != nil {
			return fmt.Errorf("seed booking %d: %w", i+1, err)
		}
	}
	logger.Info().Int("count", bookingCount).Msg("seeded bookings")
	return nil
}

func randomBooking(names Names) models.Booking {
	checkIn := time.Now().AddDate(0, 0, rand.Intn(30))
	checkOut := checkIn.AddDate(0, 0, 1+rand.Intn(14))

	booking := models.Booking{
		FirstName:   names.First[rand.Intn(len(names.First))],
		LastName:    names.Last[rand.Intn(len(names.Last))],
		TotalPrice:  100 + rand.Intn(900),
		DepositPaid: rand.Intn(2) == 0,
		BookingDates: models.BookingDates{
			CheckIn:  checkIn.Format("2006-01-02"),
			CheckOut: checkOut.Format("2006-01-02"),
		},
	}
	if len(names.Needs) > 0 {
		if needs := names.Needs[rand.Intn(len(names.Needs))]; needs != "" {
			booking.AdditionalNeeds = &needs
		}
	}
	return booking
}
