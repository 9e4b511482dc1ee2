package store

import (
	"context"
	"database/sql"
	errs "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// saveRow maps the saves table created by the migrations.
type saveRow struct {
	Slot         string `gorm:"primaryKey"`
	ID           uuid.UUID
	Day          *int
	TotalDays    *int
	Name         *string
	Hunger       *int
	Thirst       *int
	Energy       *int
	DaysSurvived *int
	UpdatedAt    time.Time
}

func (saveRow) TableName() string { return "saves" }

// PostgresStore keeps the save as one row in Postgres. Run the migrations first.
type PostgresStore struct {
	gorm *gorm.DB
	sql  *sql.DB
	slot string
}

// OpenPostgres connects with gorm and checks the connection.
func OpenPostgres(ctx context.Context, dsn, slot string) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("missing DSN")
	}
	if slot == "" {
		slot = DefaultSlot
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(2)
	sdb.SetMaxIdleConns(1)
	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &PostgresStore{gorm: gdb, sql: sdb, slot: slot}, nil
}

func (p *PostgresStore) Save(ctx context.Context, rec SaveRecord) error {
	row := saveRow{
		Slot:         p.slot,
		ID:           uuid.New(),
		Day:          &rec.Day,
		TotalDays:    &rec.TotalDays,
		Name:         &rec.Player.Name,
		Hunger:       &rec.Player.Hunger,
		Thirst:       &rec.Player.Thirst,
		Energy:       &rec.Player.Energy,
		DaysSurvived: &rec.Player.DaysSurvived,
		UpdatedAt:    time.Now().UTC(),
	}
	err := p.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	return errors.Wrap(err, "save game")
}

func (p *PostgresStore) Load(ctx context.Context) (SaveRecord, error) {
	var row saveRow
	err := p.gorm.WithContext(ctx).Where("slot = ?", p.slot).Take(&row).Error
	if err != nil {
		if errs.Is(err, gorm.ErrRecordNotFound) {
			return SaveRecord{}, ErrNoSave
		}
		return SaveRecord{}, fmt.Errorf("%w: %v", ErrNoSave, err)
	}
	rec := freshRecord()
	rec.Day = deref(row.Day, rec.Day)
	rec.TotalDays = deref(row.TotalDays, rec.TotalDays)
	if row.Name != nil && *row.Name != "" {
		rec.Player.Name = *row.Name
	}
	rec.Player.Hunger = deref(row.Hunger, rec.Player.Hunger)
	rec.Player.Thirst = deref(row.Thirst, rec.Player.Thirst)
	rec.Player.Energy = deref(row.Energy, rec.Player.Energy)
	rec.Player.DaysSurvived = deref(row.DaysSurvived, rec.Player.DaysSurvived)
	return rec, nil
}

func (p *PostgresStore) Delete(ctx context.Context) error {
	err := p.gorm.WithContext(ctx).Where("slot = ?", p.slot).Delete(&saveRow{}).Error
	return errors.Wrap(err, "delete save")
}

func (p *PostgresStore) Close() error { return p.sql.Close() }

func deref(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
