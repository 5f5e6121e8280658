package services

import (
	"context"
	"net/http"
	"testing"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	"quote-system/pkg/config"
	"quote-system/pkg/constants"
	"quote-system/pkg/contextkeys"
	apperrors "quote-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckTransition(t *testing.T) {
	t.Run("разрешенный переход проходит", func(t *testing.T) {
		assert.NoError(t, checkTransition(constants.RoleManager, constants.StatusCalculated, constants.StatusApproved))
		assert.NoError(t, checkTransition(constants.RoleWarehouse, constants.StatusWarehouseCheck, constants.StatusRework))
	})

	t.Run("несуществующий переход дает 409", func(t *testing.T) {
		err := checkTransition(constants.RoleAdmin, constants.StatusDraft, constants.StatusConfirmed)
		require.Error(t, err)
		httpErr, ok := err.(*apperrors.HttpError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	})

	t.Run("чужая роль дает 403", func(t *testing.T) {
		err := checkTransition(constants.RoleManager, constants.StatusWarehouseCheck, constants.StatusConfirmed)
		require.Error(t, err)
		httpErr, ok := err.(*apperrors.HttpError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("из терминального статуса выхода нет", func(t *testing.T) {
		for _, to := range []string{constants.StatusDraft, constants.StatusRework, constants.StatusApproved} {
			err := checkTransition(constants.RoleAdmin, constants.StatusConfirmed, to)
			require.Error(t, err, to)
			httpErr, ok := err.(*apperrors.HttpError)
			require.True(t, ok)
			assert.Equal(t, http.StatusConflict, httpErr.Code)
		}
	})
}

func TestQuoteEditableOrConflict(t *testing.T) {
	assert.NoError(t, quoteEditableOrConflict(&entities.Quote{Status: constants.StatusDraft}))
	assert.NoError(t, quoteEditableOrConflict(&entities.Quote{Status: constants.StatusRework}))

	for _, s := range []string{constants.StatusCalculated, constants.StatusApproved, constants.StatusWarehouseCheck, constants.StatusConfirmed} {
		err := quoteEditableOrConflict(&entities.Quote{Status: s})
		require.Error(t, err, s)
		httpErr, ok := err.(*apperrors.HttpError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, httpErr.Code)
	}
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeQuoteRepo struct {
	repositories.QuoteRepositoryInterface
	quote        *entities.Quote
	statusWrites []string
}

func (f *fakeQuoteRepo) FindQuoteForUpdateInTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Quote, error) {
	if f.quote == nil {
		return nil, apperrors.ErrNotFound
	}
	return f.quote, nil
}

func (f *fakeQuoteRepo) UpdateStatusInTx(ctx context.Context, tx pgx.Tx, id uint64, status string, comment *string) error {
	f.statusWrites = append(f.statusWrites, status)
	f.quote.Status = status
	return nil
}

type fakeLineRepo struct {
	repositories.ResultLineRepositoryInterface
	known        map[int]struct{}
	availability map[int]string
}

func (f *fakeLineRepo) SetAvailabilityInTx(ctx context.Context, tx pgx.Tx, quoteID, lineID uint64, status string, comment *string) error {
	if _, ok := f.known[int(lineID)]; !ok {
		return apperrors.ErrNotFound
	}
	if f.availability == nil {
		f.availability = map[int]string{}
	}
	f.availability[int(lineID)] = status
	return nil
}

func authedCtx(userID int, role string) context.Context {
	ctx := context.WithValue(context.Background(), contextkeys.UserIDKey, userID)
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

func newQuoteServiceForTest(quoteRepo *fakeQuoteRepo, lineRepo *fakeLineRepo) QuoteServiceInterface {
	return NewQuoteService(fakeTxManager{}, quoteRepo, lineRepo, zap.NewNop(), &config.QuoteConfig{MaxItems: 100})
}

func TestChangeStatus_AutoAdvancesApprovedToWarehouseCheck(t *testing.T) {
	quoteRepo := &fakeQuoteRepo{quote: &entities.Quote{ID: 7, Status: constants.StatusCalculated}}
	svc := newQuoteServiceForTest(quoteRepo, &fakeLineRepo{})

	out, err := svc.ChangeStatus(authedCtx(1, constants.RoleManager), 7, dto.ChangeStatusDTO{Status: constants.StatusApproved})
	require.NoError(t, err)

	// Статус approved не задерживается: КП сразу уходит на проверку склада.
	assert.Equal(t, constants.StatusWarehouseCheck, out.Status)
	assert.Equal(t, []string{constants.StatusWarehouseCheck}, quoteRepo.statusWrites)
}

func TestChangeStatus_DeniedRoleWritesNothing(t *testing.T) {
	quoteRepo := &fakeQuoteRepo{quote: &entities.Quote{ID: 7, Status: constants.StatusCalculated}}
	svc := newQuoteServiceForTest(quoteRepo, &fakeLineRepo{})

	_, err := svc.ChangeStatus(authedCtx(1, constants.RoleWarehouse), 7, dto.ChangeStatusDTO{Status: constants.StatusApproved})
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
	assert.Empty(t, quoteRepo.statusWrites)
	assert.Equal(t, constants.StatusCalculated, quoteRepo.quote.Status)
}

func TestWarehouseConfirm_WritesAvailabilityAndStatusTogether(t *testing.T) {
	quoteRepo := &fakeQuoteRepo{quote: &entities.Quote{ID: 7, Status: constants.StatusWarehouseCheck}}
	lineRepo := &fakeLineRepo{known: map[int]struct{}{1: {}, 2: {}}}
	svc := newQuoteServiceForTest(quoteRepo, lineRepo)

	out, err := svc.WarehouseConfirm(authedCtx(2, constants.RoleWarehouse), 7, dto.WarehouseConfirmDTO{
		Decision: "confirmed",
		Lines: []dto.LineAvailabilityDTO{
			{LineID: 1, AvailabilityStatus: constants.AvailabilityInStock},
			{LineID: 2, AvailabilityStatus: constants.AvailabilityToOrder},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusConfirmed, out.Status)
	assert.Equal(t, constants.AvailabilityInStock, lineRepo.availability[1])
	assert.Equal(t, constants.AvailabilityToOrder, lineRepo.availability[2])
	assert.Equal(t, []string{constants.StatusConfirmed}, quoteRepo.statusWrites)
}

func TestWarehouseConfirm_ReworkByAdmin(t *testing.T) {
	quoteRepo := &fakeQuoteRepo{quote: &entities.Quote{ID: 7, Status: constants.StatusWarehouseCheck}}
	lineRepo := &fakeLineRepo{known: map[int]struct{}{1: {}}}
	svc := newQuoteServiceForTest(quoteRepo, lineRepo)

	out, err := svc.WarehouseConfirm(authedCtx(3, constants.RoleAdmin), 7, dto.WarehouseConfirmDTO{
		Decision: "rework",
		Lines: []dto.LineAvailabilityDTO{
			{LineID: 1, AvailabilityStatus: constants.AvailabilityAbsent},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusRework, out.Status)
	assert.Equal(t, constants.AvailabilityAbsent, lineRepo.availability[1])
	assert.Equal(t, []string{constants.StatusRework}, quoteRepo.statusWrites)
}

func TestWarehouseConfirm_UnknownLineAbortsBeforeStatusWrite(t *testing.T) {
	quoteRepo := &fakeQuoteRepo{quote: &entities.Quote{ID: 7, Status: constants.StatusWarehouseCheck}}
	lineRepo := &fakeLineRepo{known: map[int]struct{}{1: {}}}
	svc := newQuoteServiceForTest(quoteRepo, lineRepo)

	_, err := svc.WarehouseConfirm(authedCtx(2, constants.RoleWarehouse), 7, dto.WarehouseConfirmDTO{
		Decision: "confirmed",
		Lines: []dto.LineAvailabilityDTO{
			{LineID: 1, AvailabilityStatus: constants.AvailabilityInStock},
			{LineID: 99, AvailabilityStatus: constants.AvailabilityInStock},
		},
	})
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)

	// Ошибка по строке откатывает транзакцию: статус не записывается.
	assert.Empty(t, quoteRepo.statusWrites)
	assert.Equal(t, constants.StatusWarehouseCheck, quoteRepo.quote.Status)
}

func TestWarehouseConfirm_WrongStatusConflicts(t *testing.T) {
	quoteRepo := &fakeQuoteRepo{quote: &entities.Quote{ID: 7, Status: constants.StatusDraft}}
	svc := newQuoteServiceForTest(quoteRepo, &fakeLineRepo{})

	_, err := svc.WarehouseConfirm(authedCtx(2, constants.RoleWarehouse), 7, dto.WarehouseConfirmDTO{Decision: "confirmed"})
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Empty(t, quoteRepo.statusWrites)
}
