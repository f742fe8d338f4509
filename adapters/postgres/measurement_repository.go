package postgres

import (
	"context"
	"fmt"

	"hormoiq/domain/core"
	"hormoiq/domain/hormone"
	"hormoiq/models"
	"hormoiq/ports"

	"github.com/jmoiron/sqlx"
)

const hormoneTestColumns = `id, user_id, test_date, time_of_day, cortisol, testosterone, progesterone,
	supplements_taken, exercise_today, created_at`

// MeasurementRepositoryImpl implements MeasurementRepository for PostgreSQL
type MeasurementRepositoryImpl struct {
	db *sqlx.DB
}

// NewMeasurementRepository creates a new PostgreSQL measurement repository
func NewMeasurementRepository(db *sqlx.DB) ports.MeasurementRepository {
	return &MeasurementRepositoryImpl{db: db}
}

// Create stores a measurement
func (r *MeasurementRepositoryImpl) Create(ctx context.Context, m hormone.Measurement) (hormone.Measurement, error) {
	row, err := models.NewHormoneTest(m)
	if err != nil {
		return hormone.Measurement{}, err
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO hormone_tests (id, user_id, test_date, time_of_day, cortisol, testosterone,
			progesterone, supplements_taken, exercise_today, created_at)
		VALUES (:id, :user_id, :test_date, :time_of_day, :cortisol, :testosterone,
			:progesterone, :supplements_taken, :exercise_today, NOW())
	`, row)
	if err != nil {
		return hormone.Measurement{}, translate(err, "insert hormone test", nil)
	}

	return row.Measurement(), nil
}

// Get retrieves a single measurement
func (r *MeasurementRepositoryImpl) Get(ctx context.Context, id core.MeasurementID) (hormone.Measurement, error) {
	var row models.HormoneTest
	err := r.db.GetContext(ctx, &row, `SELECT `+hormoneTestColumns+` FROM hormone_tests WHERE id = $1`, id.String())
	if err != nil {
		return hormone.Measurement{}, translate(err, "get hormone test",
			fmt.Errorf("%w: %s", core.ErrMeasurementNotFound, id))
	}
	return row.Measurement(), nil
}

// ListByUser returns every measurement of a user, newest first
func (r *MeasurementRepositoryImpl) ListByUser(ctx context.Context, userID core.UserID) ([]hormone.Measurement, error) {
	var rows []models.HormoneTest
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+hormoneTestColumns+`
		FROM hormone_tests
		WHERE user_id = $1
		ORDER BY test_date DESC, id DESC
	`, userID.String())
	if err != nil {
		return nil, translate(err, "list hormone tests", nil)
	}

	out := make([]hormone.Measurement, len(rows))
	for i := range rows {
		out[i] = rows[i].Measurement()
	}
	return out, nil
}

// Delete removes a measurement owned by the user
func (r *MeasurementRepositoryImpl) Delete(ctx context.Context, userID core.UserID, id core.MeasurementID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM hormone_tests WHERE id = $1 AND user_id = $2`, id.String(), userID.String())
	if err != nil {
		return translate(err, "delete hormone test", nil)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translate(err, "delete hormone test", nil)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", core.ErrMeasurementNotFound, id)
	}
	return nil
}

// CountByUser returns how many measurements a user has logged
func (r *MeasurementRepositoryImpl) CountByUser(ctx context.Context, userID core.UserID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM hormone_tests WHERE user_id = $1`, userID.String())
	if err != nil {
		return 0, translate(err, "count hormone tests", nil)
	}
	return count, nil
}
