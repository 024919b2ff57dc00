package dao

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not construct docker pool: %v", err)
	}

	if err = pool.Client.Ping(); err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	// Kill the container after 3 minutes even if a test run hangs.
	_ = resource.Expire(180)

	dsn := fmt.Sprintf("postgres://test:secret@%v/test?sslmode=disable", resource.GetHostPort("5432/tcp"))

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err = sqlDB.Ping(); err != nil {
			return err
		}

		testDB = db

		return nil
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func truncateTables(t *testing.T) {
	t.Helper()

	err := testDB.Exec(
		"TRUNCATE bookings, audit_records, events, organizers, customers, users RESTART IDENTITY CASCADE",
	).Error
	if err != nil {
		t.Fatalf("could not truncate tables: %v", err)
	}
}

func seedCustomer(t *testing.T, email string) Customer {
	t.Helper()

	customer := Customer{
		User: User{
			Email:    email,
			Password: "irrelevant",
			Role:     "customer",
			Name:     "Test Customer",
		},
	}
	if err := testDB.Create(&customer).Error; err != nil {
		t.Fatalf("could not seed customer: %v", err)
	}

	return customer
}

func seedOrganizer(t *testing.T, email string) Organizer {
	t.Helper()

	organizer := Organizer{
		User: User{
			Email:    email,
			Password: "irrelevant",
			Role:     "organizer",
			Name:     "Test Organizer",
		},
		OrganizationName: "Test Org",
	}
	if err := testDB.Create(&organizer).Error; err != nil {
		t.Fatalf("could not seed organizer: %v", err)
	}

	return organizer
}

func seedEvent(t *testing.T, creatorID uint, capacity int, start, end time.Time) Event {
	t.Helper()

	event := Event{
		Title:     "Test Event",
		StartTime: start,
		EndTime:   end,
		Capacity:  capacity,
		CreatorID: creatorID,
	}
	if err := testDB.Create(&event).Error; err != nil {
		t.Fatalf("could not seed event: %v", err)
	}

	return event
}
