package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"lottodesk/internal/config"
	"lottodesk/internal/logger"
	"lottodesk/internal/models"
	"lottodesk/internal/store"

	_ "github.com/joho/godotenv/autoload"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

/*
The demo table must exist beforehand, e.g. on MySQL:

	CREATE TABLE `demo` (
	  `id` int NOT NULL,
	  `name` varchar(45) DEFAULT NULL,
	  `money` decimal(12,2) DEFAULT NULL,
	  `birthday` datetime DEFAULT NULL,
	  PRIMARY KEY (`id`)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

Use clientFoundRows=true in the MySQL DSN so updates report matched rows, and
loc=Local so birthdays are stored with the wall-clock time given below.
*/

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l, err := logger.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Sync()

	s := store.New(store.Options{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseURL})
	ctx := context.Background()

	must := func(err error, msg string) {
		if err != nil {
			l.Fatal(msg, zap.Error(err))
		}
	}

	// clear ids 2 and 3 so the inserts below cannot collide
	_, err = s.Delete(ctx, 2)
	must(err, "failed to delete demo 2")
	_, err = s.Delete(ctx, 3)
	must(err, "failed to delete demo 3")

	must(s.Create(ctx, models.Demo{
		ID:       2,
		Name:     ptr("Alice"),
		Money:    decimal.NewNullDecimal(decimal.RequireFromString("100.5")),
		Birthday: ptr(time.Date(1995, 5, 1, 8, 30, 0, 0, time.Local)),
	}), "failed to create demo 2")
	must(s.Create(ctx, models.Demo{
		ID:       3,
		Name:     ptr("Bob"),
		Money:    decimal.NewNullDecimal(decimal.RequireFromString("250")),
		Birthday: ptr(time.Date(1990, 10, 20, 12, 0, 0, 0, time.Local)),
	}), "failed to create demo 3")
	printAll(ctx, s, l, "after inserting two rows")

	one, err := s.GetByID(ctx, 1)
	must(err, "failed to get demo 1")
	fmt.Printf("\ndemo with id=1: %s\n", format(one))

	money := decimal.RequireFromString("199.99")
	affected, err := s.Update(ctx, 1, store.DemoUpdate{Money: &money})
	must(err, "failed to update demo 1")
	fmt.Printf("\nupdated money of id=1, rows affected: %d\n", affected)
	printAll(ctx, s, l, "after update")

	deleted, err := s.Delete(ctx, 2)
	must(err, "failed to delete demo 2")
	fmt.Printf("\ndeleted id=2, rows affected: %d\n", deleted)
	printAll(ctx, s, l, "after delete")
}

func printAll(ctx context.Context, s *store.DemoStore, l *zap.Logger, title string) {
	demos, err := s.GetAll(ctx)
	if err != nil {
		l.Fatal("failed to list demos", zap.Error(err))
	}

	fmt.Printf("\n=== %s ===\n", title)
	for i := range demos {
		fmt.Println(format(&demos[i]))
	}
}

func format(d *models.Demo) string {
	if d == nil {
		return "<none>"
	}

	name, money, birthday := "NULL", "NULL", "NULL"
	if d.Name != nil {
		name = *d.Name
	}
	if d.Money.Valid {
		money = d.Money.Decimal.String()
	}
	if d.Birthday != nil {
		birthday = d.Birthday.Format(time.DateTime)
	}
	return fmt.Sprintf("{id: %d, name: %s, money: %s, birthday: %s}", d.ID, name, money, birthday)
}

func ptr[T any](v T) *T { return &v }
