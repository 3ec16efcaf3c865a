package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"doctor-roster/internal/domain/entity"
	domainRepo "doctor-roster/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *gorm.DB) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return sqlDB, mock, db
}

func testClaim() entity.ReplacementClaim {
	return entity.ReplacementClaim{
		LeaveID:    uuid.New(),
		DoctorID:   uuid.New(),
		DoctorName: "พญ.สมหญิง รักดี",
		LineID:     "U1234",
		AcceptedAt: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestClaimReplacement_Success(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leave_requests" SET .*WHERE .*status = .*accepted_by_doctor_id IS NULL.*EXISTS \(SELECT 1 FROM "leave_replacement_candidates"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "leave_replacement_candidates" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.ClaimReplacement(context.Background(), testClaim())

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimReplacement_LostRaceWritesNothing(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leave_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	affected, err := repo.ClaimReplacement(context.Background(), testClaim())

	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimReplacement_CandidateAlreadyResolvedRollsBack(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leave_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "leave_replacement_candidates" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	affected, err := repo.ClaimReplacement(context.Background(), testClaim())

	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimReplacement_SecondWinnerViolationIsLostRace(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leave_requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "leave_replacement_candidates" SET`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "ux_leave_candidate_winner"})
	mock.ExpectRollback()

	affected, err := repo.ClaimReplacement(context.Background(), testClaim())

	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimReplacement_DatabaseError(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "leave_requests" SET`).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.ClaimReplacement(context.Background(), testClaim())

	assert.ErrorIs(t, err, sql.ErrConnDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveFindByID_NotFound(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "leave_requests" WHERE id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	leave, err := repo.FindByID(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Nil(t, leave)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLeaveDelete_RemovesCandidatesFirst(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewLeaveRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "leave_replacement_candidates"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "leave_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.Delete(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBindLineID_ReleasesPreviousOwner(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDoctorRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "doctors" SET "line_id"=\$1.*WHERE line_id = \$\d+ AND id <> \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "doctors" SET "line_id"=\$1.*WHERE id = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	affected, err := repo.BindLineID(context.Background(), uuid.New(), "U1234")

	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorFindByCareProviderCode(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDoctorRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "care_provider_code", "thai_full_name", "line_id", "status"}).
		AddRow(id.String(), "D001", "นพ.สมชาย ใจดี", nil, "active")
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE care_provider_code = \$1`).
		WillReturnRows(rows)

	doctor, err := repo.FindByCareProviderCode(context.Background(), "D001")

	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.Equal(t, id, doctor.ID)
	assert.Equal(t, "นพ.สมชาย ใจดี", doctor.ThaiFullName)
	assert.False(t, doctor.IsRegistered())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorCreate_DuplicateCareProviderCode(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDoctorRepository(db)

	mock.ExpectQuery(`INSERT INTO "doctors"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_doctors_care_provider_code"})

	err := repo.Create(context.Background(), &entity.Doctor{CareProviderCode: "D001"})

	assert.ErrorIs(t, err, domainRepo.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "idx_doctors_care_provider_code")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppendShift_MissingSubDepartment(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewDepartmentRepository(db)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "department", "sub_departments"}).
		AddRow(id.String(), "อายุรกรรม", `[{"name":"OPD","shifts":[]}]`)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "departments" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(rows)
	mock.ExpectCommit()

	affected, err := repo.AppendShift(context.Background(), id, "ER", entity.ShiftDefinition{Name: "เวรเช้า"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindForTable_ExcludesRejected(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewShiftRequestRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "shift_requests" WHERE .*ipus = \$1.*status <> \$5 ORDER BY date ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(uuid.New().String(), "approved"))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	shifts, err := repo.FindForTable(context.Background(), entity.ShiftTableFilter{
		Ipus:       "IPD1",
		Department: "อายุรกรรม",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 4),
	})

	require.NoError(t, err)
	assert.Len(t, shifts, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestChatSessionUpsert(t *testing.T) {
	sqlDB, mock, db := setupMockDB(t)
	defer sqlDB.Close()
	repo := NewChatSessionRepository(db)

	mock.ExpectExec(`INSERT INTO "chat_sessions" .*ON CONFLICT \("line_user_id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), entity.NewIdleSession("U1234"))

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
