package almanac

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aetherialcal/aethercal/internal/calendar"
	"github.com/aetherialcal/aethercal/internal/platform/database/schema"
	"github.com/aetherialcal/aethercal/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) CreateHoliday(context context.Context, holiday *Holiday) error {
	h := schema.Holidays
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5, $6) RETURNING %s, %s`,
		h.Table, h.SessionID, h.Name, h.Month, h.Day, h.Kind, h.Description,
		h.ID, h.CreatedAt)

	err := repository.db.QueryRow(context, query,
		holiday.SessionID, holiday.Name, holiday.Month, holiday.Day, string(holiday.Kind), holiday.Description,
	).Scan(&holiday.ID, &holiday.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_holiday")
	}
	return nil
}

func (repository *PostgresRepository) ListHolidays(context context.Context, sessionID string) ([]*Holiday, error) {
	h := schema.Holidays
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		h.ID, h.SessionID, h.Name, h.Month, h.Day, h.Kind, h.Description, h.CreatedAt,
		h.Table, h.SessionID, h.Month, h.Day)

	rows, err := repository.db.Query(context, query, sessionID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_holidays")
	}
	defer rows.Close()

	holidays := make([]*Holiday, 0)
	for rows.Next() {
		holiday := &Holiday{}
		if err := rows.Scan(&holiday.ID, &holiday.SessionID, &holiday.Name, &holiday.Month,
			&holiday.Day, &holiday.Kind, &holiday.Description, &holiday.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_holiday")
		}
		holidays = append(holidays, holiday)
	}
	return holidays, rows.Err()
}

func (repository *PostgresRepository) DeleteHoliday(context context.Context, sessionID string, id int64) error {
	h := schema.Holidays
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`, h.Table, h.ID, h.SessionID)

	tag, err := repository.db.Exec(context, query, id, sessionID)
	if err != nil {
		return dberr.Wrap(err, "delete_holiday")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete_holiday")
	}
	return nil
}

func (repository *PostgresRepository) SetWeather(context context.Context, weather *Weather) error {
	w := schema.Weather
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (%s, %s, %s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s`,
		w.Table, w.SessionID, w.Year, w.Month, w.Day, w.Condition,
		w.SessionID, w.Year, w.Month, w.Day, w.Condition, w.Condition,
		w.ID, w.CreatedAt)

	err := repository.db.QueryRow(context, query,
		weather.SessionID, weather.Year, weather.Month, weather.Day, weather.Condition,
	).Scan(&weather.ID, &weather.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "set_weather")
	}
	return nil
}

func (repository *PostgresRepository) ListWeatherForMonth(context context.Context, sessionID string, year, month int) ([]*Weather, error) {
	w := schema.Weather
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 ORDER BY %s ASC`,
		w.ID, w.SessionID, w.Year, w.Month, w.Day, w.Condition, w.CreatedAt,
		w.Table, w.SessionID, w.Year, w.Month, w.Day)

	rows, err := repository.db.Query(context, query, sessionID, year, month)
	if err != nil {
		return nil, dberr.Wrap(err, "list_weather")
	}
	defer rows.Close()

	entries := make([]*Weather, 0)
	for rows.Next() {
		weather := &Weather{}
		if err := rows.Scan(&weather.ID, &weather.SessionID, &weather.Year, &weather.Month,
			&weather.Day, &weather.Condition, &weather.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_weather")
		}
		entries = append(entries, weather)
	}
	return entries, rows.Err()
}

func (repository *PostgresRepository) ClearWeather(context context.Context, sessionID string, date calendar.Date) error {
	w := schema.Weather
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3 AND %s = $4`,
		w.Table, w.SessionID, w.Year, w.Month, w.Day)

	if _, err := repository.db.Exec(context, query, sessionID, date.Year, date.Month, date.Day); err != nil {
		return dberr.Wrap(err, "clear_weather")
	}
	return nil
}
