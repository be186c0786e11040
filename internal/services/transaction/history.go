package transaction

import (
	"context"
	"strings"
	"time"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
)

// ViewHistory pages through the ledger newest first. Administrators see every
// entry, optionally narrowed to one user; everyone else sees only entries
// where they are sender or receiver.
func (s *service) ViewHistory(ctx context.Context, actor Actor, filter HistoryFilter) (*HistoryPage, error) {
	user, err := s.loadActor(ctx, s.store, actor)
	if err != nil {
		return nil, s.fail(opHistory, actor, err)
	}

	q := repositories.LedgerQuery{}
	if user.Role.IsAdmin() {
		q.ParticipantID = filter.UserID
	} else {
		q.ParticipantID = &user.ID
	}
	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, s.fail(opHistory, actor,
				apperrors.Newf(apperrors.CodeInvalidInput, "unknown transaction type %q", filter.Type))
		}
		q.Type = filter.Type
	}

	return s.page(ctx, opHistory, actor, q, filter)
}

// GetCommissionHistory pages through the COMMISSION entries paid to an agent.
func (s *service) GetCommissionHistory(ctx context.Context, actor Actor, filter HistoryFilter) (*HistoryPage, error) {
	user, err := s.loadActor(ctx, s.store, actor)
	if err != nil {
		return nil, s.fail(opCommission, actor, err)
	}
	if user.Role != models.RoleAgent {
		return nil, s.fail(opCommission, actor, errAgentOnly)
	}

	q := repositories.LedgerQuery{
		ReceiverID: &user.ID,
		Type:       models.TransactionTypeCommission,
	}
	return s.page(ctx, opCommission, actor, q, filter)
}

func (s *service) page(ctx context.Context, op string, actor Actor, q repositories.LedgerQuery, filter HistoryFilter) (*HistoryPage, error) {
	page, limit := normalizePaging(filter.Page, filter.Limit)
	q.Limit = limit
	q.Offset = (page - 1) * limit
	q.From, q.To = parseRange(filter.StartDate, filter.EndDate)

	items, total, err := s.store.Transactions().List(ctx, q)
	if err != nil {
		return nil, s.fail(op, actor, err)
	}
	if items == nil {
		items = []models.Transaction{}
	}

	totalPages := total / int64(limit)
	if total%int64(limit) > 0 {
		totalPages++
	}
	return &HistoryPage{
		Items:      items,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// parseRange returns an inclusive creation-time range. It is applied only
// when both ends parse; a date-only end covers that whole day.
func parseRange(start, end string) (*time.Time, *time.Time) {
	from, _, okFrom := parseDate(start)
	to, dateOnly, okTo := parseDate(end)
	if !okFrom || !okTo {
		return nil, nil
	}
	if dateOnly {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	return &from, &to
}

func parseDate(raw string) (t time.Time, dateOnly bool, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), false, true
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t.UTC(), true, true
	}
	return time.Time{}, false, false
}
