package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/teranga-bank/banka_api/dto"
	"github.com/teranga-bank/banka_api/model"
	"github.com/teranga-bank/banka_api/shared"
)

type SqlService struct {
	context.DefaultService
	db *gorm.DB

	driver   string
	database string
}

const SQL_SVC = "sql_svc"

func (ds SqlService) Id() string {
	return SQL_SVC
}

// Db Access to raw gorm db
func (ds SqlService) Db() *gorm.DB {
	return ds.db
}

func (ds *SqlService) Configure(ctx *context.Context) error {
	ds.driver = os.Getenv("DB_DRIVER")
	if ds.driver == "" {
		ds.driver = "postgres"
	}

	if ds.driver == "sqlite" {
		ds.database = os.Getenv("DB_NAME")
		if ds.database == "" {
			ds.database = "banka.db"
		}
		return ds.DefaultService.Configure(ctx)
	}

	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		// Fallback to individual environment variables
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "banka_api"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *SqlService) Start() (err error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	if ds.driver == "sqlite" {
		ds.db, err = gorm.Open(sqlite.Open(ds.database), gormConfig)
		if err != nil {
			return err
		}
		return ds.migrate()
	}

	// Retry connection with exponential backoff
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), gormConfig)

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	return ds.migrate()
}

func (ds *SqlService) migrate() error {
	models := []interface{}{
		&model.User{},
		&model.Client{},
		&model.Compte{},
		&model.Transaction{},
		&model.ApiRateLimit{},
	}

	if err := ds.db.AutoMigrate(models...); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqlService) Shutdown() {
	sqlDB, err := ds.db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// HandleError maps driver errors to status-coded kinds. Record-not-found is
// passed through untouched so callers can name the missing resource.
func (ds *SqlService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	default:
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else if strings.Contains(err.Error(), "connection refused") {
			statusCode = http.StatusServiceUnavailable
			errorType = "DATABASE_CONNECTION_ERROR"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	if statusCode == http.StatusConflict {
		return shared.NewConflictError("")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== COMPTES ====================

// soldeSubquery derives an account balance from its transactions: deposits
// minus withdrawals, completed movements only.
const soldeSubquery = "SELECT COALESCE(SUM(CASE WHEN t.type = 'depot' THEN t.montant ELSE -t.montant END), 0) " +
	"FROM transactions t WHERE t.compte_id = comptes.id AND t.statut = 'complete'"

// compteBaseQuery is the one place the soft-delete predicate lives: every
// compte read goes through it, so deleted rows never leak into results.
func (ds *SqlService) compteBaseQuery() *gorm.DB {
	return ds.db.Model(&model.Compte{}).Where("comptes.deleted_at IS NULL")
}

func (ds *SqlService) GetCompteByNumero(numero string) (*model.Compte, error) {
	var compte model.Compte
	err := ds.compteBaseQuery().
		Where("comptes.numero_compte = ?", numero).
		Preload("Client.User").
		First(&compte).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &compte, nil
}

func (ds *SqlService) GetComptesByTelephone(telephone string) ([]model.Compte, error) {
	var comptes []model.Compte
	err := ds.compteBaseQuery().
		Joins("JOIN clients ON clients.id = comptes.client_id").
		Where("clients.telephone = ?", telephone).
		Preload("Client.User").
		Order("comptes.date_creation DESC").
		Find(&comptes).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return comptes, nil
}

// SearchComptes runs the filter/search/sort/paginate plan and returns the
// requested page plus the total match count. A page past the end yields an
// empty slice with the true total.
func (ds *SqlService) SearchComptes(params dto.CompteSearchParams) ([]model.Compte, int64, error) {
	q := ds.compteBaseQuery()

	if params.Type != "" {
		q = q.Where("comptes.type = ?", params.Type)
	}
	if params.Statut != "" {
		q = q.Where("comptes.statut = ?", params.Statut)
	}

	// Searching and sorting by holder both need the owner's name as a
	// queryable column, which the eager-load alone does not expose.
	if params.Search != "" || params.Sort == "titulaire" {
		q = q.Joins("JOIN clients ON clients.id = comptes.client_id").
			Joins("JOIN users ON users.id = clients.user_id")
	}

	if params.Search != "" {
		s := "%" + strings.ToLower(params.Search) + "%"
		q = q.Where("(LOWER(comptes.numero_compte) LIKE ? OR LOWER(users.name) LIKE ?)", s, s)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, ds.HandleError(err)
	}

	dir := "ASC"
	if params.Order == "desc" {
		dir = "DESC"
	}

	switch params.Sort {
	case "solde":
		q = q.Order(fmt.Sprintf("(%s) %s", soldeSubquery, dir))
	case "titulaire":
		q = q.Order("LOWER(users.name) " + dir)
	default:
		q = q.Order("comptes.date_creation " + dir)
	}
	// Tie-break for a deterministic page order.
	q = q.Order("comptes.numero_compte ASC")

	var comptes []model.Compte
	err := q.Select("comptes.*").
		Preload("Client.User").
		Limit(params.Limit).
		Offset((params.Page - 1) * params.Limit).
		Find(&comptes).Error
	if err != nil {
		return nil, 0, ds.HandleError(err)
	}

	return comptes, total, nil
}

type compteSolde struct {
	CompteID string
	Solde    float64
}

// SoldesForComptes aggregates derived balances for a set of accounts in a
// single grouped query. Accounts with no transactions are absent from the
// map and read as zero.
func (ds *SqlService) SoldesForComptes(compteIDs []string) (map[string]float64, error) {
	soldes := make(map[string]float64, len(compteIDs))
	if len(compteIDs) == 0 {
		return soldes, nil
	}

	var rows []compteSolde
	err := ds.db.Model(&model.Transaction{}).
		Select("compte_id, COALESCE(SUM(CASE WHEN type = 'depot' THEN montant ELSE -montant END), 0) AS solde").
		Where("compte_id IN ? AND statut = ?", compteIDs, model.TransactionStatutComplete).
		Group("compte_id").
		Scan(&rows).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}

	for _, row := range rows {
		soldes[row.CompteID] = row.Solde
	}
	return soldes, nil
}

// ==================== CLIENTS ====================

func (ds *SqlService) GetClientByID(clientID string) (*model.Client, error) {
	var client model.Client
	err := ds.db.Where("id = ?", clientID).Preload("User").First(&client).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &client, nil
}

// FindClientByTelephoneOrEmail resolves an existing client by phone number
// or by the owning user's email. Returns nil without error when no client
// matches.
func (ds *SqlService) FindClientByTelephoneOrEmail(telephone, email string) (*model.Client, error) {
	var client model.Client
	err := ds.db.Model(&model.Client{}).
		Joins("JOIN users ON users.id = clients.user_id").
		Where("clients.telephone = ? OR users.email = ?", telephone, email).
		Preload("User").
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ds.HandleError(err)
	}
	return &client, nil
}

func (ds *SqlService) IsEmailTaken(email string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *SqlService) IsTelephoneTaken(telephone string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.Client{}).Where("telephone = ?", telephone).Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

func (ds *SqlService) IsNciTaken(nci string) (bool, error) {
	var count int64
	if err := ds.db.Model(&model.Client{}).Where("nci = ?", nci).Count(&count).Error; err != nil {
		return false, ds.HandleError(err)
	}
	return count > 0, nil
}

// ==================== RATE LIMITS ====================

// GetActiveBlock returns any record carrying a live block for the IP,
// regardless of endpoint. Nil when the caller is not blocked.
func (ds *SqlService) GetActiveBlock(ip string, now time.Time) (*model.ApiRateLimit, error) {
	var rec model.ApiRateLimit
	err := ds.db.Where("ip_address = ? AND blocked = ? AND blocked_until > ?", ip, true, now).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ds.HandleError(err)
	}
	return &rec, nil
}

// IncrementRateLimit is the atomic find-or-increment for one admission: a
// single upsert on the (ip, endpoint, method, window_start) unique key, so
// concurrent requests never lose counts. The qualified column reference in
// the DO UPDATE expression is valid on both postgres and sqlite.
func (ds *SqlService) IncrementRateLimit(rec *model.ApiRateLimit) (*model.ApiRateLimit, error) {
	err := ds.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "ip_address"}, {Name: "endpoint"}, {Name: "method"}, {Name: "window_start"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":   gorm.Expr("api_rate_limits.request_count + 1"),
			"last_request_at": rec.LastRequestAt,
			"updated_at":      time.Now(),
		}),
	}).Create(rec).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}

	var current model.ApiRateLimit
	err = ds.db.Where("ip_address = ? AND endpoint = ? AND method = ? AND window_start = ?",
		rec.IpAddress, rec.Endpoint, rec.Method, rec.WindowStart).
		First(&current).Error
	if err != nil {
		return nil, ds.HandleError(err)
	}
	return &current, nil
}

func (ds *SqlService) BlockRateLimit(rec *model.ApiRateLimit, until time.Time) error {
	err := ds.db.Model(&model.ApiRateLimit{}).
		Where("id = ?", rec.ID).
		Updates(map[string]interface{}{
			"blocked":       true,
			"blocked_until": until,
		}).Error
	return ds.HandleError(err)
}

// UnblockIP lifts every block held against the IP.
func (ds *SqlService) UnblockIP(ip string) (int64, error) {
	res := ds.db.Model(&model.ApiRateLimit{}).
		Where("ip_address = ? AND blocked = ?", ip, true).
		Updates(map[string]interface{}{
			"blocked":       false,
			"blocked_until": nil,
		})
	if res.Error != nil {
		return 0, ds.HandleError(res.Error)
	}
	return res.RowsAffected, nil
}

// DeleteExpiredRateLimits removes counters whose window ended before the
// cutoff, keeping rows that still carry a live block.
func (ds *SqlService) DeleteExpiredRateLimits(cutoff, now time.Time) (int64, error) {
	res := ds.db.Where("window_end < ? AND (blocked_until IS NULL OR blocked_until < ?)", cutoff, now).
		Delete(&model.ApiRateLimit{})
	if res.Error != nil {
		return 0, ds.HandleError(res.Error)
	}
	return res.RowsAffected, nil
}

func (ds *SqlService) CountRateLimits(now time.Time) (total, blocked int64, err error) {
	if err = ds.db.Model(&model.ApiRateLimit{}).Count(&total).Error; err != nil {
		return 0, 0, ds.HandleError(err)
	}
	if err = ds.db.Model(&model.ApiRateLimit{}).
		Where("blocked_until > ?", now).
		Count(&blocked).Error; err != nil {
		return 0, 0, ds.HandleError(err)
	}
	return total, blocked, nil
}
