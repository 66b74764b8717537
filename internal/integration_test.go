package internal

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"lagerstyring-client/config"
	"lagerstyring-client/internal/api"
	"lagerstyring-client/internal/borrow"
	"lagerstyring-client/internal/loan"
	"lagerstyring-client/internal/model"
	"lagerstyring-client/internal/nav"
	"lagerstyring-client/internal/search"
	"lagerstyring-client/internal/session"
	"lagerstyring-client/internal/store"
	"lagerstyring-client/internal/stub"
)

// TestBorrowLifecycle walks the whole flow against the fixture backend:
// sign in, search for a device, start a borrow attempt, mis-scan, scan the
// right code, confirm, and verify the loan landed with a weekend-adjusted
// due date.
func TestBorrowLifecycle(t *testing.T) {
	// Local store on in-memory SQLite, as on a device.
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, testDB.AutoMigrate(&store.Entry{}))
	localStore := store.NewGormStore(testDB)

	// Fixture backend.
	fixtures := stub.DefaultFixtures()
	server := httptest.NewServer(stub.NewRouter(fixtures))
	defer server.Close()

	cfg := config.Default()
	cfg.API.BaseURL = server.URL

	log := zap.NewNop()
	inv := api.NewInventory(api.NewClient(&cfg.API, log))
	recorder := &nav.Recorder{}
	sess := session.NewManager(localStore, inv, recorder, log)
	searchSvc := search.NewService(inv, &cfg.Cache, log)
	workflow := borrow.NewWorkflow(localStore, sess,
		loan.NewScheduler(cfg.Loan.PeriodDays),
		loan.NewSubmitter(inv, localStore, log),
		recorder, log)

	ctx := context.Background()

	// Unauthenticated entry is bounced to login.
	results, err := searchSvc.Search(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, results, 1)
	err = workflow.Start(ctx, results[0])
	require.ErrorIs(t, err, borrow.ErrAuthRequired)
	assert.Equal(t, nav.ScreenLogin, recorder.Last())

	// Sign in; the stored redirect target points back at the borrow flow.
	redirect, err := sess.SignIn(ctx, "student@example.edu", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, borrow.BorrowPath, redirect)

	// The pending item survived the detour.
	require.NoError(t, workflow.Activate(ctx))
	item := workflow.Gate().Item()
	assert.Equal(t, "Cordless drill", item.Device.Description)
	assert.Equal(t, "Available", item.StatusLabel())
	assert.Equal(t, "Cupboard C - Lab 2.14", item.LocationDetails)

	// A wrong code re-arms; the right one matches.
	_, err = workflow.Scan("QR-CAM-0002")
	require.ErrorIs(t, err, borrow.ErrScanMismatch)
	state, err := workflow.Scan("QR-DRILL-0001")
	require.NoError(t, err)
	require.Equal(t, borrow.StateMatched, state)

	ack, err := workflow.Confirm(ctx)
	require.NoError(t, err)
	assert.NotZero(t, ack.ID, "the server assigned a record ID")

	expectedEnd := ack.StartDate.AddDate(0, 0, 7)
	switch expectedEnd.Weekday() {
	case time.Saturday:
		expectedEnd = expectedEnd.AddDate(0, 0, 2)
	case time.Sunday:
		expectedEnd = expectedEnd.AddDate(0, 0, 1)
	}
	assert.True(t, expectedEnd.Equal(ack.EndDate), "due date follows the weekend rule")
	assert.NotContains(t, []time.Weekday{time.Saturday, time.Sunday}, ack.EndDate.Weekday())

	// The pending item is gone and the loan is listed.
	_, found, err := localStore.Get(ctx, store.KeyBorrowItem)
	require.NoError(t, err)
	assert.False(t, found)

	userID, err := sess.UserID(ctx)
	require.NoError(t, err)
	loans, err := loan.NewHistory(inv).List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, model.ActivityTypeBorrow, loans[0].ActivityType)
	assert.Contains(t, loans[0].Notes, "Bosch GSR 12V")
}
