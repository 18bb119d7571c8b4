package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Demo is a row of the demo table. The id is supplied by the caller.
type Demo struct {
	ID       int64               `json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	Name     *string             `json:"name" gorm:"column:name;type:varchar(45)"`
	Money    decimal.NullDecimal `json:"money" gorm:"column:money;type:decimal(12,2)"`
	Birthday *time.Time          `json:"birthday" gorm:"column:birthday"`
}

func (Demo) TableName() string { return "demo" }
