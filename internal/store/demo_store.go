package store

import (
	"context"
	"errors"
	"time"

	"lottodesk/internal/db"
	"lottodesk/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Options struct {
	Driver string
	DSN    string
}

// DemoStore runs CRUD statements against the demo table. It keeps no
// connection: every call opens one, runs a single statement and closes it.
type DemoStore struct {
	opts Options
}

// DemoUpdate lists the columns to change. Nil fields are left untouched.
type DemoUpdate struct {
	Name     *string
	Money    *decimal.Decimal
	Birthday *time.Time
}

func (u DemoUpdate) columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Money != nil {
		cols["money"] = *u.Money
	}
	if u.Birthday != nil {
		cols["birthday"] = *u.Birthday
	}
	return cols
}

func New(opts Options) *DemoStore {
	return &DemoStore{opts: opts}
}

func (s *DemoStore) withConn(fn func(conn *gorm.DB) error) (err error) {
	conn, err := db.InitDB(s.opts.Driver, s.opts.DSN)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(conn); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(conn)
}

// Create inserts demo as given. A duplicate id is rejected by the database.
func (s *DemoStore) Create(ctx context.Context, demo models.Demo) error {
	return s.withConn(func(conn *gorm.DB) error {
		return gorm.G[models.Demo](conn).Create(ctx, &demo)
	})
}

// GetByID returns nil without an error when no row has the id.
func (s *DemoStore) GetByID(ctx context.Context, id int64) (*models.Demo, error) {
	var found *models.Demo
	err := s.withConn(func(conn *gorm.DB) error {
		demo, err := gorm.G[models.Demo](conn).Where("id = ?", id).First(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		found = &demo
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *DemoStore) GetAll(ctx context.Context) ([]models.Demo, error) {
	demos := []models.Demo{}
	err := s.withConn(func(conn *gorm.DB) error {
		rows, err := gorm.G[models.Demo](conn).Order("id").Find(ctx)
		if err != nil {
			return err
		}
		demos = append(demos, rows...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return demos, nil
}

// Update changes only the supplied columns and returns the number of matched
// rows. With nothing supplied it does not touch the database.
func (s *DemoStore) Update(ctx context.Context, id int64, update DemoUpdate) (int64, error) {
	cols := update.columns()
	if len(cols) == 0 {
		return 0, nil
	}

	var affected int64
	err := s.withConn(func(conn *gorm.DB) error {
		result := conn.WithContext(ctx).Model(&models.Demo{}).Where("id = ?", id).Updates(cols)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}

func (s *DemoStore) Delete(ctx context.Context, id int64) (int64, error) {
	var affected int64
	err := s.withConn(func(conn *gorm.DB) error {
		n, err := gorm.G[models.Demo](conn).Where("id = ?", id).Delete(ctx)
		if err != nil {
			return err
		}
		affected = int64(n)
		return nil
	})
	return affected, err
}
