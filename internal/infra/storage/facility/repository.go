package facility

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FacilityService/internal/domain"
	"github.com/m04kA/SMC-FacilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FacilityService/pkg/psqlbuilder"
)

// facilityColumns полный список колонок таблицы facilities
var facilityColumns = []string{
	"id",
	"name",
	"description",
	"category",
	"location",
	"city",
	"state",
	"capacity_min",
	"capacity_max",
	"price_hourly",
	"price_half_day",
	"price_full_day",
	"open_time",
	"close_time",
	"amenities",
	"status",
	"rating",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с каталогом площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую площадку
func (r *Repository) Create(ctx context.Context, f *domain.Facility) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("facilities").
		Columns(
			"name",
			"description",
			"category",
			"location",
			"city",
			"state",
			"capacity_min",
			"capacity_max",
			"price_hourly",
			"price_half_day",
			"price_full_day",
			"open_time",
			"close_time",
			"amenities",
			"status",
			"rating",
		).
		Values(
			f.Name,
			f.Description,
			f.Category,
			f.Location,
			f.City,
			f.State,
			f.Capacity.Min,
			f.Capacity.Max,
			f.Pricing.Hourly,
			f.Pricing.HalfDay,
			f.Pricing.FullDay,
			f.OperatingHours.Start,
			f.OperatingHours.End,
			pq.Array(f.Amenities),
			f.Status,
			f.Rating,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return f, nil
}

// GetByID получает площадку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(facilityColumns...).
		From("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacilityRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// List получает список площадок с композитным AND-фильтром
// Все поля фильтра опциональны:
// - Category, Status - точное совпадение
// - MinCapacity - площадки, вмещающие не менее указанного числа участников
// - MaxPrice - почасовая цена не выше указанной
// - Amenities - площадка должна иметь ВСЕ перечисленные удобства
// - Search - регистронезависимый поиск по name/description/location/city/state
func (r *Repository) List(ctx context.Context, filter domain.FacilityFilter, sortBy domain.FacilitySort) ([]*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(facilityColumns...).
		From("facilities")

	if filter.Category != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"category": *filter.Category})
	}

	if filter.MinCapacity != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"capacity_max": *filter.MinCapacity})
	}

	if filter.MaxPrice != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"price_hourly": *filter.MaxPrice})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Площадка должна содержать все перечисленные удобства (оператор @>)
	if len(filter.Amenities) > 0 {
		selectBuilder = selectBuilder.Where("amenities @> ?", pq.Array(filter.Amenities))
	}

	// Регистронезависимый поиск по текстовым полям (OR)
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
			squirrel.ILike{"location": pattern},
			squirrel.ILike{"city": pattern},
			squirrel.ILike{"state": pattern},
		})
	}

	selectBuilder = applySort(selectBuilder, sortBy)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanFacilities(rows)
}

// Update обновляет площадку; nil-поля patch не изменяются
func (r *Repository) Update(ctx context.Context, id int64, patch domain.FacilityPatch) (*domain.Facility, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("facilities").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		updateBuilder = updateBuilder.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		updateBuilder = updateBuilder.Set("description", *patch.Description)
	}
	if patch.Category != nil {
		updateBuilder = updateBuilder.Set("category", *patch.Category)
	}
	if patch.Location != nil {
		updateBuilder = updateBuilder.Set("location", *patch.Location)
	}
	if patch.City != nil {
		updateBuilder = updateBuilder.Set("city", *patch.City)
	}
	if patch.State != nil {
		updateBuilder = updateBuilder.Set("state", *patch.State)
	}
	if patch.Capacity != nil {
		updateBuilder = updateBuilder.
			Set("capacity_min", patch.Capacity.Min).
			Set("capacity_max", patch.Capacity.Max)
	}
	if patch.Pricing != nil {
		updateBuilder = updateBuilder.
			Set("price_hourly", patch.Pricing.Hourly).
			Set("price_half_day", patch.Pricing.HalfDay).
			Set("price_full_day", patch.Pricing.FullDay)
	}
	if patch.OperatingHours != nil {
		updateBuilder = updateBuilder.
			Set("open_time", patch.OperatingHours.Start).
			Set("close_time", patch.OperatingHours.End)
	}
	if patch.Amenities != nil {
		updateBuilder = updateBuilder.Set("amenities", pq.Array(patch.Amenities))
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}
	if patch.Rating != nil {
		updateBuilder = updateBuilder.Set("rating", *patch.Rating)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + joinColumns(facilityColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	f, err := scanFacilityRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrFacilityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan facility: %v", ErrScanRow, err)
	}

	return f, nil
}

// Delete удаляет площадку из каталога
// Бронирования НЕ удаляются каскадно: они хранят денормализованное имя площадки
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("facilities").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrFacilityNotFound
	}

	return nil
}

// CountByCityAndState возвращает число площадок, ссылающихся на указанный город
// Используется сервисом таксономии для предупреждений о рассинхронизации
func (r *Repository) CountByCityAndState(ctx context.Context, city, state string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("facilities").
		Where(squirrel.Eq{"city": city, "state": state}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByCityAndState - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByCityAndState - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// applySort применяет сортировку к запросу; id добавляется для стабильности порядка
func applySort(builder squirrel.SelectBuilder, sortBy domain.FacilitySort) squirrel.SelectBuilder {
	switch sortBy {
	case domain.SortNameDesc:
		return builder.OrderBy("name DESC, id ASC")
	case domain.SortPriceAsc:
		return builder.OrderBy("price_hourly ASC, id ASC")
	case domain.SortPriceDesc:
		return builder.OrderBy("price_hourly DESC, id ASC")
	case domain.SortRatingDesc:
		return builder.OrderBy("rating DESC, id ASC")
	case domain.SortCapacityDesc:
		return builder.OrderBy("capacity_max DESC, id ASC")
	case domain.SortNameAsc:
		fallthrough
	default:
		return builder.OrderBy("name ASC, id ASC")
	}
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanFacilityRow сканирует одну строку в модель площадки
func scanFacilityRow(row rowScanner) (*domain.Facility, error) {
	var f domain.Facility
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Category,
		&f.Location,
		&f.City,
		&f.State,
		&f.Capacity.Min,
		&f.Capacity.Max,
		&f.Pricing.Hourly,
		&f.Pricing.HalfDay,
		&f.Pricing.FullDay,
		&f.OperatingHours.Start,
		&f.OperatingHours.End,
		pq.Array(&f.Amenities),
		&f.Status,
		&f.Rating,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	f.CreatedAt = createdAt.Time
	f.UpdatedAt = updatedAt.Time

	return &f, nil
}

// scanFacilities сканирует результаты запроса в слайс площадок
func scanFacilities(rows *sql.Rows) ([]*domain.Facility, error) {
	facilities := make([]*domain.Facility, 0)

	for rows.Next() {
		f, err := scanFacilityRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanFacilities - scan row: %v", ErrScanRow, err)
		}
		facilities = append(facilities, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanFacilities - rows error: %v", ErrScanRow, err)
	}

	return facilities, nil
}

// joinColumns объединяет список колонок для RETURNING
func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
