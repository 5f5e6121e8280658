package services

import (
	"context"
	"fmt"
	"net/http"

	"quote-system/internal/dto"
	"quote-system/internal/entities"
	"quote-system/internal/repositories"
	"quote-system/pkg/config"
	"quote-system/pkg/constants"
	apperrors "quote-system/pkg/errors"
	"quote-system/pkg/types"
	"quote-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type QuoteServiceInterface interface {
	GetQuotes(ctx context.Context, filter types.Filter) ([]dto.QuoteListItemDTO, uint64, error)
	FindQuote(ctx context.Context, id uint64) (*dto.QuoteDTO, error)
	CreateQuote(ctx context.Context, data dto.CreateQuoteDTO) (int, error)
	UpdateQuote(ctx context.Context, id uint64, data dto.UpdateQuoteDTO) error
	ChangeStatus(ctx context.Context, id uint64, data dto.ChangeStatusDTO) (*dto.StatusOutDTO, error)
	WarehouseConfirm(ctx context.Context, id uint64, data dto.WarehouseConfirmDTO) (*dto.StatusOutDTO, error)
	GetResultLines(ctx context.Context, id uint64) ([]dto.ResultLineDTO, error)
	PatchResultLine(ctx context.Context, quoteID, lineID uint64, data dto.PatchResultLineDTO) (*dto.ResultLineDTO, error)
}

// QuoteService — единственная точка, где проверяются и применяются переходы
// статусов КП. Фронтенд дублирует таблицу переходов только для отображения
// кнопок, решение всегда принимается здесь по сохраненному статусу.
type QuoteService struct {
	txManager repositories.TxManagerInterface
	quoteRepo repositories.QuoteRepositoryInterface
	lineRepo  repositories.ResultLineRepositoryInterface
	logger    *zap.Logger
	cfg       *config.QuoteConfig
}

func NewQuoteService(
	txManager repositories.TxManagerInterface,
	quoteRepo repositories.QuoteRepositoryInterface,
	lineRepo repositories.ResultLineRepositoryInterface,
	logger *zap.Logger,
	cfg *config.QuoteConfig,
) QuoteServiceInterface {
	return &QuoteService{
		txManager: txManager,
		quoteRepo: quoteRepo,
		lineRepo:  lineRepo,
		logger:    logger,
		cfg:       cfg,
	}
}

func (s *QuoteService) GetQuotes(ctx context.Context, filter types.Filter) ([]dto.QuoteListItemDTO, uint64, error) {
	return s.quoteRepo.GetQuotes(ctx, filter)
}

func (s *QuoteService) FindQuote(ctx context.Context, id uint64) (*dto.QuoteDTO, error) {
	return s.quoteRepo.FindQuote(ctx, id)
}

func (s *QuoteService) CreateQuote(ctx context.Context, data dto.CreateQuoteDTO) (int, error) {
	creatorUserID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return 0, apperrors.ErrInvalidUserID
	}

	if len(data.Items) == 0 {
		return 0, apperrors.NewInvalidInputError("КП должно содержать хотя бы одну позицию техники")
	}
	if len(data.Items) > s.cfg.MaxItems {
		return 0, apperrors.NewInvalidInputError("Не более %d позиций техники в одном КП", s.cfg.MaxItems)
	}

	newQuoteID, err := s.quoteRepo.CreateQuote(ctx, creatorUserID, data)
	if err != nil {
		s.logger.Error("Ошибка в quoteRepo.CreateQuote", zap.Error(err))
		return 0, err
	}

	s.logger.Info("КП создано", zap.Int("quoteId", newQuoteID), zap.Int("userId", creatorUserID))
	return newQuoteID, nil
}

// UpdateQuote редактирует КП. Разрешено только автору или администратору
// и только в статусах draft и rework.
func (s *QuoteService) UpdateQuote(ctx context.Context, id uint64, data dto.UpdateQuoteDTO) error {
	userID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return apperrors.ErrInvalidUserID
	}
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return err
	}

	if data.Items != nil && len(data.Items) > s.cfg.MaxItems {
		return apperrors.NewInvalidInputError("Не более %d позиций техники в одном КП", s.cfg.MaxItems)
	}

	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		quote, err := s.quoteRepo.FindQuoteForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if quote.CreatedBy != userID && role != constants.RoleAdmin {
			return apperrors.NewHttpError(http.StatusForbidden,
				"Редактировать КП может только его автор или администратор", nil, nil)
		}

		if !constants.IsEditableStatus(quote.Status) {
			return apperrors.NewHttpError(http.StatusConflict,
				fmt.Sprintf("КП в статусе '%s' нельзя редактировать", quote.Status), nil, nil)
		}

		return s.quoteRepo.UpdateQuoteInTx(ctx, tx, id, data)
	})
}

// ChangeStatus применяет переход из таблицы переходов.
// Статус перечитывается под блокировкой строки, поэтому гонка двух
// одновременных переходов разрешается детерминированно: второй увидит
// уже измененный статус и получит 409.
func (s *QuoteService) ChangeStatus(ctx context.Context, id uint64, data dto.ChangeStatusDTO) (*dto.StatusOutDTO, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var out dto.StatusOutDTO
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		quote, err := s.quoteRepo.FindQuoteForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := checkTransition(role, quote.Status, data.Status); err != nil {
			return err
		}

		target := data.Status
		// ТЗ: «На_проверке_склада — автоматически после Согласовано_с_заказчиком».
		if target == constants.StatusApproved {
			target = constants.StatusWarehouseCheck
		}

		if err := s.quoteRepo.UpdateStatusInTx(ctx, tx, id, target, data.Comment); err != nil {
			return err
		}

		s.logger.Info("Статус КП изменен",
			zap.Uint64("quoteId", id),
			zap.String("from", quote.Status),
			zap.String("to", target),
			zap.String("role", role),
		)

		out = dto.StatusOutDTO{ID: quote.ID, Status: target}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// WarehouseConfirm — составная операция проверки склада: запись наличия
// по строкам спецификации и переход warehouse_check -> confirmed|rework
// выполняются одной транзакцией. Частичная запись наружу не видна.
func (s *QuoteService) WarehouseConfirm(ctx context.Context, id uint64, data dto.WarehouseConfirmDTO) (*dto.StatusOutDTO, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	target := constants.StatusConfirmed
	if data.Decision == "rework" {
		target = constants.StatusRework
	}

	var out dto.StatusOutDTO
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		quote, err := s.quoteRepo.FindQuoteForUpdateInTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := checkTransition(role, quote.Status, target); err != nil {
			return err
		}

		for _, la := range data.Lines {
			if err := s.lineRepo.SetAvailabilityInTx(ctx, tx, id, uint64(la.LineID), la.AvailabilityStatus, la.AvailabilityComment); err != nil {
				if err == apperrors.ErrNotFound {
					return apperrors.NewHttpError(http.StatusNotFound,
						fmt.Sprintf("Строка спецификации %d не найдена", la.LineID), nil, nil)
				}
				return err
			}
		}

		if err := s.quoteRepo.UpdateStatusInTx(ctx, tx, id, target, data.Comment); err != nil {
			return err
		}

		s.logger.Info("Проверка склада завершена",
			zap.Uint64("quoteId", id),
			zap.String("decision", data.Decision),
			zap.Int("lines", len(data.Lines)),
		)

		out = dto.StatusOutDTO{ID: quote.ID, Status: target}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *QuoteService) GetResultLines(ctx context.Context, id uint64) ([]dto.ResultLineDTO, error) {
	if _, err := s.quoteRepo.FindQuote(ctx, id); err != nil {
		return nil, err
	}
	return s.lineRepo.GetLines(ctx, id)
}

// PatchResultLine — точечная правка строки спецификации.
// Количество меняет только администратор; подтвержденное КП заморожено.
func (s *QuoteService) PatchResultLine(ctx context.Context, quoteID, lineID uint64, data dto.PatchResultLineDTO) (*dto.ResultLineDTO, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	var patched dto.ResultLineDTO
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		quote, err := s.quoteRepo.FindQuoteForUpdateInTx(ctx, tx, quoteID)
		if err != nil {
			return err
		}

		if quote.Status == constants.StatusConfirmed {
			return apperrors.NewHttpError(http.StatusConflict,
				"Нельзя править спецификацию подтвержденного КП", nil, nil)
		}

		line, err := s.lineRepo.FindLineInTx(ctx, tx, quoteID, lineID)
		if err != nil {
			return err
		}

		if data.Qty != nil {
			if role != constants.RoleAdmin {
				return apperrors.NewHttpError(http.StatusForbidden,
					"Менять количество может только администратор", nil, nil)
			}
			if *data.Qty < 1 {
				return apperrors.NewInvalidInputError("Количество должно быть не меньше 1")
			}
		}

		if err := s.lineRepo.UpdateLineInTx(ctx, tx, uint64(line.ID), data.Qty, data.Note); err != nil {
			return err
		}

		lines, err := s.lineRepo.GetLinesInTx(ctx, tx, quoteID)
		if err != nil {
			return err
		}
		for _, ln := range lines {
			if ln.ID == line.ID {
				patched = ln
				return nil
			}
		}
		return apperrors.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &patched, nil
}

// checkTransition отличает отсутствующий переход (409) от запрещенного
// для роли (403). Никакие переходы не повторяются автоматически.
func checkTransition(role, from, to string) error {
	if !constants.TransitionExists(from, to) {
		return apperrors.NewHttpError(http.StatusConflict,
			fmt.Sprintf("Переход '%s' -> '%s' недоступен", from, to), nil, nil)
	}
	if !constants.CanTransition(role, from, to) {
		return apperrors.NewHttpError(http.StatusForbidden,
			fmt.Sprintf("Роль '%s' не может выполнить переход '%s' -> '%s'", role, from, to), nil, nil)
	}
	return nil
}

// quoteEditableOrConflict используется расчетом: он разделяет с редактированием
// один и тот же набор статусов.
func quoteEditableOrConflict(quote *entities.Quote) error {
	if !constants.IsCalculableStatus(quote.Status) {
		return apperrors.NewHttpError(http.StatusConflict,
			fmt.Sprintf("КП в статусе '%s' нельзя рассчитать", quote.Status), nil, nil)
	}
	return nil
}
